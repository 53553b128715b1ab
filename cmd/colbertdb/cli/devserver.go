package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/colbertdb/internal/devstore"
	"github.com/kailas-cloud/colbertdb/internal/version"
)

func newDevServerCmd(a *app) *cobra.Command {
	var port int
	cmd := &cobra.Command{
		Use:   "dev-server",
		Short: "Run an in-memory store implementing the ColBERT store API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("port") {
				a.cfg.DevServer.Port = port
			}
			return a.runDevServer(cmd.Context())
		},
	}
	cmd.Flags().IntVarP(&port, "port", "p", 0, "listen port (overrides dev_server.port)")
	return cmd
}

func (a *app) runDevServer(ctx context.Context) error {
	cfg := a.cfg.DevServer

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	server, err := devstore.NewServer(devstore.Config{
		APIKeys:  cfg.APIKeys,
		DefaultK: cfg.DefaultK,
		Logger:   a.logger,
		Registry: reg,
	})
	if err != nil {
		return err //nolint:wrapcheck // already prefixed by devstore
	}

	addr := net.JoinHostPort("", strconv.Itoa(cfg.Port))
	srv := &http.Server{
		Addr:         addr,
		Handler:      server.Handler(),
		ReadTimeout:  time.Duration(cfg.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeoutSec) * time.Second,
	}

	a.logger.Info("Starting colbertdb dev store",
		zap.String("version", version.Version),
		zap.String("addr", addr),
		zap.Int("api_keys", len(cfg.APIKeys)),
		zap.Int("default_k", cfg.DefaultK),
	)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("dev store: %w", err)
		}
		return nil
	case <-ctx.Done():
		a.logger.Info("Received shutdown signal")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("Error during shutdown", zap.Error(err))
		return fmt.Errorf("shutdown: %w", err)
	}
	a.logger.Info("Dev store stopped gracefully")
	return nil
}
