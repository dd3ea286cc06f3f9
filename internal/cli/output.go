package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/viant/starindex/index"
)

// printLine writes a formatted line to the command's stdout.
func printLine(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintf(cmd.OutOrStdout(), format+"\n", args...)
}

// printWarn writes a warning line to stderr.
func printWarn(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintf(cmd.ErrOrStderr(), "Warning: "+format+"\n", args...)
}

// printNeighbor writes one ranked result; rank is 1-based.
func printNeighbor(cmd *cobra.Command, rank int, n index.Neighbor) {
	printLine(cmd, "Neighbor %d: obj_id: %d, RA: %.5f, Dec: %.5f, Distance_sq: %.5f",
		rank, n.Star.ObjID, n.Star.RA, n.Star.Dec, n.DistanceSq)
}
