package cli

import (
	"github.com/spf13/cobra"

	"github.com/viant/starindex/index"
	"github.com/viant/starindex/query"
)

type queryFlags struct {
	config      string
	file        string
	db          string
	ra          float64
	dec         float64
	k           int
	radius      float64
	index       string
	nodeSize    int
	parallelism int
}

func newQueryCommand(a *app) *cobra.Command {
	f := &queryFlags{}
	cmd := &cobra.Command{
		Use:   "query",
		Short: "Find the stars nearest to a query point",
		Example: `  starindex query -f stars.csv -r 150.0 -d 2.0 -n 3
  starindex query --db stars.sqlite --ra 150.0 --dec 2.0 --radius 0.5`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runQuery(cmd, a, f)
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&f.config, "config", "", "YAML query config; flags override its values")
	flags.StringVarP(&f.file, "file", "f", "", "Catalog CSV file")
	flags.StringVar(&f.db, "db", "", "SQLite catalog created by 'starindex import'")
	flags.Float64VarP(&f.ra, "ra", "r", 0, "Query right ascension")
	flags.Float64VarP(&f.dec, "dec", "d", 0, "Query declination")
	flags.IntVarP(&f.k, "neighbors", "n", query.DefaultK, "Number of neighbors to return")
	flags.Float64Var(&f.radius, "radius", 0, "Maximum distance from the query point (0 = unbounded)")
	flags.StringVar(&f.index, "index", "rtree", "Index kind: rtree or brute")
	flags.IntVar(&f.nodeSize, "node-size", 0, "R-tree node fan-out (0 = default)")
	flags.IntVar(&f.parallelism, "parallel", 0, "Goroutines used while building the R-tree")
	return cmd
}

// resolveConfig layers explicitly set flags over the config file or defaults.
func resolveConfig(cmd *cobra.Command, f *queryFlags) (*query.Config, error) {
	cfg := query.DefaultConfig()
	if f.config != "" {
		var err error
		if cfg, err = query.LoadConfig(f.config); err != nil {
			return nil, err
		}
	}
	flags := cmd.Flags()
	if flags.Changed("file") {
		cfg.File = f.file
	}
	if flags.Changed("db") {
		cfg.DB = f.db
	}
	if flags.Changed("ra") {
		cfg.RA = f.ra
	}
	if flags.Changed("dec") {
		cfg.Dec = f.dec
	}
	if flags.Changed("neighbors") {
		cfg.K = f.k
	}
	if flags.Changed("radius") {
		cfg.Radius = f.radius
	}
	if flags.Changed("index") {
		cfg.Index = f.index
	}
	if flags.Changed("node-size") {
		cfg.NodeSize = f.nodeSize
	}
	if flags.Changed("parallel") {
		cfg.Parallelism = f.parallelism
	}
	return cfg, cfg.Validate()
}

func runQuery(cmd *cobra.Command, a *app, f *queryFlags) error {
	cfg, err := resolveConfig(cmd, f)
	if err != nil {
		return err
	}

	printLine(cmd, "Loading stars from: %s", cfg.Source())
	res, err := query.Run(cmd.Context(), cfg, a.logger, query.WithProgress(func(stage query.Stage, r *query.Result) {
		switch stage {
		case query.StageLoaded:
			printLine(cmd, "Loaded %d stars.", r.Loaded)
		case query.StageBuilding:
			printLine(cmd, "Building %s index...", indexName(cfg.Index))
		case query.StageBuilt:
			printLine(cmd, "%s index built.", indexName(cfg.Index))
		case query.StageSearching:
			printLine(cmd, "Searching for %d nearest neighbors to RA: %v, Dec: %v...", cfg.K, cfg.RA, cfg.Dec)
		}
	}))
	if err != nil {
		return err
	}

	if res.Loaded == 0 {
		printWarn(cmd, "no stars loaded from %s; ensure the file is not empty and the format is correct", cfg.Source())
		printLine(cmd, "No stars to index. Exiting.")
		return nil
	}
	if len(res.Neighbors) == 0 {
		printLine(cmd, "No neighbors found within the dataset for the given coordinates.")
		return nil
	}
	for i, n := range res.Neighbors {
		printNeighbor(cmd, i+1, n)
	}
	return nil
}

func indexName(kind string) string {
	if k, _ := index.ParseKind(kind); k == index.KindBrute {
		return "Brute-force"
	}
	return "R-tree"
}
