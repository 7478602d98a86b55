package cmd

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nameclaim/nameclaim/internal/observability"
	"github.com/nameclaim/nameclaim/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start the HTTP server exposing the availability checks.

SIGINT or SIGTERM triggers a graceful shutdown that drains in-flight
requests before exiting.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("host", "", "bind address (overrides config)")
	serveCmd.Flags().Int("port", 0, "listen port (overrides config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	store, cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if host, _ := cmd.Flags().GetString("host"); host != "" {
		cfg.Server.Host = host
	}
	if port, _ := cmd.Flags().GetInt("port"); port != 0 {
		cfg.Server.Port = port
	}

	logger, err := observability.NewServerLogger(effectiveLogLevel(cfg))
	if err != nil {
		return err
	}
	defer logger.Sync() // nolint:errcheck // stderr sync is best-effort

	srv := server.New(cfg.Server, newProbeSet(cfg), newDomainChecker(cfg), store, versionInfo.Version, logger)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", zap.Error(err))
		return err
	}
	return nil
}
