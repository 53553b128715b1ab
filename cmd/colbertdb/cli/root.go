// Package cli implements the colbertdb command tree.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/colbertdb/internal/config"
	logpkg "github.com/kailas-cloud/colbertdb/internal/logger"
	colbertdb "github.com/kailas-cloud/colbertdb/pkg/sdk"
)

// app carries flag values and the resolved configuration between commands.
type app struct {
	env      string
	url      string
	apiKey   string
	store    string
	logLevel string
	tracing  bool

	cfg    config.Config
	logger *zap.Logger
}

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	return 0
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "colbertdb",
		Short:         "Client for a ColBERT document-search store",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.env, "env", config.GetEnv(), "environment: selects config/<env>.yaml and log format")
	pf.StringVar(&a.url, "url", "", "store server URL (overrides client.url)")
	pf.StringVar(&a.apiKey, "api-key", "", "API key (overrides client.api_key)")
	pf.StringVar(&a.store, "store", "", "store name (overrides client.store_name)")
	pf.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error")
	pf.BoolVar(&a.tracing, "tracing", false, "enable OpenTelemetry HTTP tracing")

	root.AddCommand(
		newCollectionsCmd(a),
		newSearchCmd(a),
		newDocumentsCmd(a),
		newDevServerCmd(a),
		newVersionCmd(),
	)
	return root
}

// init loads the config file and applies flag overrides.
func (a *app) init(cmd *cobra.Command) error {
	cfg, err := config.Load(a.env)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("url") {
		cfg.Client.URL = a.url
	}
	if flags.Changed("api-key") {
		cfg.Client.APIKey = a.apiKey
	}
	if flags.Changed("store") {
		cfg.Client.StoreName = a.store
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level = a.logLevel
	}
	if flags.Changed("tracing") {
		cfg.Client.Tracing = a.tracing
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger, err := logpkg.NewLogger(a.env, cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}

	a.cfg = cfg
	a.logger = logger
	return nil
}

// connect opens a session with the configured store.
func (a *app) connect(cmd *cobra.Command) (*colbertdb.Client, error) {
	if a.cfg.Client.URL == "" {
		return nil, fmt.Errorf("store URL is required (set client.url or --url)")
	}

	opts := []colbertdb.Option{
		colbertdb.WithAPIKey(a.cfg.Client.APIKey),
		colbertdb.WithStoreName(a.cfg.Client.StoreName),
	}
	if a.cfg.Client.Tracing {
		opts = append(opts, colbertdb.WithTracing())
	}
	if a.cfg.Logging.Level == "debug" {
		opts = append(opts, colbertdb.WithLogger(slog.New(
			slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelDebug}),
		)))
	}

	a.logger.Debug("Connecting to store",
		zap.String("url", a.cfg.Client.URL),
		zap.String("store", a.cfg.Client.StoreName),
	)
	client, err := colbertdb.New(cmd.Context(), a.cfg.Client.URL, opts...)
	if err != nil {
		return nil, err //nolint:wrapcheck // SDK errors already carry context
	}
	return client, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}
