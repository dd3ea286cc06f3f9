package query

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/viant/starindex/catalog"
	"github.com/viant/starindex/engine"
	"github.com/viant/starindex/index"
	"github.com/viant/starindex/index/bruteforce"
	"github.com/viant/starindex/index/rtree"
	"github.com/viant/starindex/store"
)

// Result is the outcome of Run.
type Result struct {
	// Loaded is the number of stars read from the source.
	Loaded int
	// Neighbors are ordered by non-decreasing distance from the query point.
	Neighbors []index.Neighbor
}

// Stage names a step of Run reported through WithProgress.
type Stage int

const (
	// StageLoaded follows a successful load; Result.Loaded is set.
	StageLoaded Stage = iota
	// StageBuilding precedes index construction.
	StageBuilding
	// StageBuilt follows index construction.
	StageBuilt
	// StageSearching precedes the nearest-neighbor search.
	StageSearching
)

type runOptions struct {
	progress func(Stage, *Result)
}

// RunOption configures Run.
type RunOption func(*runOptions)

// WithProgress calls fn as Run passes each Stage. Stages after StageLoaded
// are skipped for an empty catalog.
func WithProgress(fn func(Stage, *Result)) RunOption {
	return func(o *runOptions) { o.progress = fn }
}

func (o *runOptions) report(stage Stage, r *Result) {
	if o.progress != nil {
		o.progress(stage, r)
	}
}

// LoadStars reads the configured catalog. Catalog errors are returned
// untouched so callers can match them with errors.Is.
func LoadStars(ctx context.Context, cfg *Config) ([]catalog.Star, error) {
	if cfg.DB == "" {
		return catalog.Load(cfg.File, catalog.WithSchema(cfg.CatalogSchema()))
	}
	// Report a missing file as fs.ErrNotExist rather than a driver error.
	if _, err := os.Stat(cfg.DB); err != nil {
		return nil, fmt.Errorf("%w: %w", catalog.ErrIO, err)
	}
	db, err := engine.OpenReadOnly(cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", catalog.ErrIO, err)
	}
	defer db.Close()
	s, err := store.OpenSQLiteStore(ctx, db)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", catalog.ErrIO, err)
	}
	stars, err := s.Stars(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", catalog.ErrIO, err)
	}
	return stars, nil
}

// BuildIndex builds the index kind named by cfg.Index over stars.
func BuildIndex(stars []catalog.Star, cfg *Config) (index.Index, error) {
	kind, err := index.ParseKind(cfg.Index)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	switch kind {
	case index.KindBrute:
		return bruteforce.Build(stars)
	default:
		return rtree.Build(stars,
			rtree.WithNodeSize(cfg.NodeSize),
			rtree.WithBuildParallelism(cfg.Parallelism))
	}
}

// Run loads the catalog, builds the index and returns up to cfg.K
// neighbors of (cfg.RA, cfg.Dec). An empty catalog is not an error; the
// Result then has Loaded == 0 and no neighbors.
func Run(ctx context.Context, cfg *Config, logger *slog.Logger, opts ...RunOption) (*Result, error) {
	var o runOptions
	for _, opt := range opts {
		opt(&o)
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if logger == nil {
		logger = NoopLogger()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger.DebugContext(ctx, "loading catalog", "path", cfg.Source())
	stars, err := LoadStars(ctx, cfg)
	if err != nil {
		logger.ErrorContext(ctx, "catalog load failed", "path", cfg.Source(), "error", err)
		return nil, err
	}
	logger.InfoContext(ctx, "catalog loaded", "path", cfg.Source(), "count", len(stars))
	result := &Result{Loaded: len(stars)}
	o.report(StageLoaded, result)
	if len(stars) == 0 {
		return result, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	o.report(StageBuilding, result)
	idx, err := BuildIndex(stars, cfg)
	if err != nil {
		return nil, err
	}
	o.report(StageBuilt, result)
	attrs := []any{"index", cfg.Index, "count", idx.Len()}
	if tree, ok := idx.(*rtree.Tree); ok {
		attrs = append(attrs, "height", tree.Height(), "node_size", tree.NodeSize())
	}
	logger.DebugContext(ctx, "index built", attrs...)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	o.report(StageSearching, result)
	result.Neighbors = index.Within(idx.Nearest(cfg.RA, cfg.Dec), cfg.K, cfg.Radius)
	logger.DebugContext(ctx, "search completed", "k", cfg.K, "results", len(result.Neighbors))
	return result, nil
}
