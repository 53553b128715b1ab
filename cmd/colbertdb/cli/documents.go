package cli

import (
	"github.com/spf13/cobra"
)

func newDocumentsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "documents",
		Aliases: []string{"docs"},
		Short:   "Add or delete documents in a collection",
	}
	cmd.AddCommand(newDocumentsAddCmd(a), newDocumentsDeleteCmd(a))
	return cmd
}

func newDocumentsAddCmd(a *app) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "add COLLECTION --file documents.json",
		Short: "Add documents from a JSON array",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			docs, err := readDocuments(cmd, file)
			if err != nil {
				return err
			}
			client, err := a.connect(cmd)
			if err != nil {
				return err
			}
			resp, err := client.AddToCollection(cmd.Context(), args[0], docs)
			if err != nil {
				return err //nolint:wrapcheck // SDK errors already carry context
			}
			return printJSON(cmd.OutOrStdout(), resp)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "path to a JSON documents file, or - for stdin")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func newDocumentsDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete COLLECTION ID...",
		Short: "Delete documents by ID",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.connect(cmd)
			if err != nil {
				return err
			}
			resp, err := client.DeleteDocuments(cmd.Context(), args[0], args[1:])
			if err != nil {
				return err //nolint:wrapcheck // SDK errors already carry context
			}
			return printJSON(cmd.OutOrStdout(), resp)
		},
	}
}
