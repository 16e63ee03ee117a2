package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ppiankov/claimroute/internal/logging"
	"github.com/ppiankov/claimroute/internal/server"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	serveFlags      pipelineFlags
	serveHost       string
	servePort       int
	shutdownTimeout time.Duration
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the routing pipeline over HTTP",
	Long: `Serve starts an HTTP API around the routing pipeline.

Endpoints:
  POST /api/v1/claims/route   route a document (JSON envelope, text/plain or text/html)
  GET  /api/v1/rules          active rule table, checklist and lexicon
  GET  /health                liveness
  GET  /metrics               Prometheus metrics

Example:
  claimroute serve
  claimroute serve --host 0.0.0.0 --port 9090
  curl -s --data-binary @fnol.txt -H 'Content-Type: text/plain' localhost:8080/api/v1/claims/route`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveFlags.register(serveCmd)
	serveCmd.Flags().StringVar(&serveHost, "host", "localhost", "listen host")
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "listen port")
	serveCmd.Flags().DurationVar(&shutdownTimeout, "shutdown-timeout", 10*time.Second, "grace period for in-flight requests")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, p, err := buildPipeline(cmd, &serveFlags)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("host") {
		cfg.Server.Host = serveHost
	}
	if cmd.Flags().Changed("port") {
		cfg.Server.Port = servePort
	}

	logger, err := logging.New(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	srv, err := server.NewServer(p, logger, &cfg.Server)
	if err != nil {
		return fmt.Errorf("create server: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
