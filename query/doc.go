// Package query wires catalog loading, index construction and nearest
// neighbor search into a single pipeline driven by an explicit Config.
//
// Typical use:
//
//	cfg := query.DefaultConfig()
//	cfg.File = "stars.csv"
//	cfg.RA, cfg.Dec = 150.0, 2.0
//	res, err := query.Run(ctx, cfg, query.NewTextLogger(os.Stderr, slog.LevelInfo))
package query
