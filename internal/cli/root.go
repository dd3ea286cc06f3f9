package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/viant/starindex/query"
)

type app struct {
	logLevel string
	logger   *slog.Logger
}

// NewRootCommand builds the starindex command tree.
func NewRootCommand() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "starindex",
		Short:         "Nearest-neighbor search over star catalogs",
		SilenceUsage:  true,
		SilenceErrors: true,
		Long: `starindex loads a star catalog from CSV or SQLite, bulk-loads an R-tree
over (ra, dec) and reports the stars closest to a query point.`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			level, err := query.ParseLevel(a.logLevel)
			if err != nil {
				return err
			}
			a.logger = query.NewTextLogger(cmd.ErrOrStderr(), level)
			return nil
		},
	}
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "warn", "Log level: debug, info, warn or error")

	root.AddCommand(newQueryCommand(a), newImportCommand(a), newVersionCommand())
	return root
}

// Execute is called by main.go.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := NewRootCommand().ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
