package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/colbertdb/internal/version"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		// Skip config loading.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "colbertdb %s (commit %s, built %s)\n",
				version.Version, version.Commit, version.Date)
		},
	}
}
