package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	colbertdb "github.com/kailas-cloud/colbertdb/pkg/sdk"
)

func newCollectionsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "collections",
		Aliases: []string{"collection", "col"},
		Short:   "Manage collections",
	}
	cmd.AddCommand(
		newCollectionsListCmd(a),
		newCollectionsCreateCmd(a),
		newCollectionsLoadCmd(a),
		newCollectionsDeleteCmd(a),
	)
	return cmd
}

func newCollectionsListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List collection names",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := a.connect(cmd)
			if err != nil {
				return err
			}
			names, err := client.ListCollections(cmd.Context())
			if err != nil {
				return err //nolint:wrapcheck // SDK errors already carry context
			}
			for _, n := range names {
				fmt.Fprintln(cmd.OutOrStdout(), n)
			}
			return nil
		},
	}
}

func newCollectionsCreateCmd(a *app) *cobra.Command {
	var (
		file    string
		options []string
	)
	cmd := &cobra.Command{
		Use:   "create NAME --file documents.json",
		Short: "Create a collection from a JSON array of documents",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			docs, err := readDocuments(cmd, file)
			if err != nil {
				return err
			}
			opts, err := parseCollectionOptions(options)
			if err != nil {
				return err
			}
			client, err := a.connect(cmd)
			if err != nil {
				return err
			}
			col, err := client.CreateCollection(cmd.Context(), args[0], docs,
				colbertdb.WithCollectionOptions(opts))
			if err != nil {
				return err //nolint:wrapcheck // SDK errors already carry context
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created collection %q with %d documents\n", col.Name(), len(docs))
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "path to a JSON documents file, or - for stdin")
	cmd.Flags().StringArrayVarP(&options, "option", "o", nil, "collection option as key=value (value parsed as JSON when possible)")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func newCollectionsLoadCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "load NAME",
		Short: "Check that a collection exists",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.connect(cmd)
			if err != nil {
				return err
			}
			col, err := client.LoadCollection(cmd.Context(), args[0])
			if err != nil {
				return err //nolint:wrapcheck // SDK errors already carry context
			}
			fmt.Fprintf(cmd.OutOrStdout(), "collection %q exists\n", col.Name())
			return nil
		},
	}
}

func newCollectionsDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete NAME",
		Short: "Delete a collection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.connect(cmd)
			if err != nil {
				return err
			}
			resp, err := client.Collection(args[0]).Delete(cmd.Context())
			if err != nil {
				return err //nolint:wrapcheck // SDK errors already carry context
			}
			return printJSON(cmd.OutOrStdout(), resp)
		},
	}
}

// readDocuments loads documents from a file path or "-" for stdin.
func readDocuments(cmd *cobra.Command, path string) ([]colbertdb.Document, error) {
	var r io.Reader
	if path == "-" {
		r = cmd.InOrStdin()
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open documents: %w", err)
		}
		defer func() { _ = f.Close() }()
		r = f
	}
	docs, err := colbertdb.LoadDocuments(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return docs, nil
}

// parseCollectionOptions turns key=value pairs into an options map.
func parseCollectionOptions(pairs []string) (map[string]any, error) {
	out := make(map[string]any, len(pairs))
	for _, p := range pairs {
		key, raw, ok := strings.Cut(p, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid option %q: want key=value", p)
		}
		var v any
		if err := json.Unmarshal([]byte(raw), &v); err != nil {
			v = raw
		}
		out[key] = v
	}
	return out, nil
}
