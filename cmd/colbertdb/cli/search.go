package cli

import (
	"github.com/spf13/cobra"

	colbertdb "github.com/kailas-cloud/colbertdb/pkg/sdk"
)

func newSearchCmd(a *app) *cobra.Command {
	var k int
	cmd := &cobra.Command{
		Use:   "search COLLECTION QUERY",
		Short: "Search a collection",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.connect(cmd)
			if err != nil {
				return err
			}
			var opts []colbertdb.SearchOption
			if k > 0 {
				opts = append(opts, colbertdb.WithK(k))
			}
			res, err := client.Collection(args[0]).Search(cmd.Context(), args[1], opts...)
			if err != nil {
				return err //nolint:wrapcheck // SDK errors already carry context
			}
			return printJSON(cmd.OutOrStdout(), res.Documents)
		},
	}
	cmd.Flags().IntVarP(&k, "k", "k", 0, "maximum number of results (server default when 0)")
	return cmd
}
