package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/goldcross/internal/api"
	"github.com/wonny/goldcross/internal/api/handlers"
)

var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Start the HTTP API server",
	Long: `Serves screening and ranking over HTTP.

Endpoints:
  GET  /health                     - Health check
  POST /api/screen/run             - Trigger a screen run
  GET  /api/screen/latest          - Persisted crossover events
  GET  /api/strategies             - List strategies
  POST /api/strategies/{name}/run  - Run a strategy
  GET  /api/rankings/{name}        - Persisted ranking

Example:
  go run ./cmd/goldcross api
  go run ./cmd/goldcross api --port 8080`,
	RunE: runAPIServer,
}

var apiPort string

func init() {
	rootCmd.AddCommand(apiCmd)

	apiCmd.Flags().StringVar(&apiPort, "port", "", "listen port (default from PORT)")
}

func runAPIServer(_ *cobra.Command, _ []string) error {
	a, err := newApp(true)
	if err != nil {
		return err
	}
	defer a.Close()

	if apiPort != "" {
		a.cfg.Port = apiPort
	}

	screenHandler := handlers.NewScreenHandler(a.screener, a.repo, a.log)
	rankingHandler := handlers.NewRankingHandler(a.screener, a.registry, a.repo, a.log)
	router := api.NewRouter(screenHandler, rankingHandler, a.log)

	server := api.New(a.cfg, a.log, router)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		a.log.WithField("signal", sig.String()).Info("Shutdown signal received")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
