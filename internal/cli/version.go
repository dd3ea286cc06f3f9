package cli

import (
	"runtime"

	"github.com/spf13/cobra"
)

// Set at build time with -ldflags "-X github.com/viant/starindex/internal/cli.version=...".
var (
	version   = "dev"
	commit    = ""
	buildDate = ""
)

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show starindex version and build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			printLine(cmd, "Version:    %s", version)
			printLine(cmd, "Commit:     %s", emptyAsNA(commit))
			printLine(cmd, "Build Date: %s", emptyAsNA(buildDate))
			printLine(cmd, "Go Version: %s", runtime.Version())
			printLine(cmd, "OS/Arch:    %s/%s", runtime.GOOS, runtime.GOARCH)
			return nil
		},
	}
}

func emptyAsNA(s string) string {
	if s == "" {
		return "n/a"
	}
	return s
}
