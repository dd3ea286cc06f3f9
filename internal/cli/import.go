package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/viant/starindex/catalog"
	"github.com/viant/starindex/engine"
	"github.com/viant/starindex/query"
	"github.com/viant/starindex/store"
)

func newImportCommand(a *app) *cobra.Command {
	var config, file, db string
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Parse a catalog CSV into a SQLite database",
		Example: `  starindex import -f stars.csv --db stars.sqlite
  starindex import --config query.yaml --db stars.sqlite`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := query.DefaultConfig()
			if config != "" {
				var err error
				if cfg, err = query.LoadConfig(config); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("file") {
				cfg.File = file
			}
			if cmd.Flags().Changed("db") {
				cfg.DB = db
			}
			if cfg.File == "" || cfg.DB == "" {
				return errors.New("both --file and --db are required")
			}
			return runImport(cmd, a, cfg)
		},
	}
	cmd.Flags().StringVar(&config, "config", "", "YAML config supplying file, db and schema; flags override it")
	cmd.Flags().StringVarP(&file, "file", "f", "", "Catalog CSV file")
	cmd.Flags().StringVar(&db, "db", "", "SQLite database to create or update")
	return cmd
}

func runImport(cmd *cobra.Command, a *app, cfg *query.Config) error {
	ctx := cmd.Context()
	file, dsn := cfg.File, cfg.DB
	printLine(cmd, "Loading stars from: %s", file)
	stars, err := catalog.Load(file, catalog.WithSchema(cfg.CatalogSchema()))
	if err != nil {
		return err
	}
	printLine(cmd, "Loaded %d stars.", len(stars))
	if len(stars) == 0 {
		printWarn(cmd, "catalog %s contains no stars", file)
		printLine(cmd, "No stars to import. Exiting.")
		return nil
	}

	if err := engine.RegisterStarFunctions(); err != nil {
		return err
	}
	db, err := engine.Open(dsn)
	if err != nil {
		return err
	}
	defer db.Close()
	s, err := store.NewSQLiteStore(db)
	if err != nil {
		return err
	}
	n, err := s.AddStars(ctx, stars)
	if err != nil {
		return err
	}
	total, err := s.Count(ctx)
	if err != nil {
		return err
	}
	a.logger.InfoContext(ctx, "catalog imported", "path", dsn, "count", n, "total", total)
	printLine(cmd, "Imported %d stars into %s (%d total).", n, dsn, total)
	return nil
}
