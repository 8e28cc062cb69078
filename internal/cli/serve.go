package cli

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/eshaffer321/orderparser/internal/api"
	"github.com/eshaffer321/orderparser/internal/api/handlers"
	"github.com/eshaffer321/orderparser/internal/application/service"
	"github.com/eshaffer321/orderparser/internal/infrastructure/config"
)

// ServeFlags holds the CLI flags for the serve command.
type ServeFlags struct {
	Port int
}

func newServeCommand(global *GlobalFlags) *cobra.Command {
	flags := &ServeFlags{}
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunServe(global, flags)
		},
	}
	cmd.Flags().IntVarP(&flags.Port, "port", "p", 0, "Port to listen on (default from config, 3001)")
	return cmd
}

// RunServe runs the API server until SIGINT or SIGTERM.
func RunServe(global *GlobalFlags, flags *ServeFlags) error {
	cfg, logger := global.load("api")

	ext, err := NewExtractor(cfg, logger.With("system", "extractor"))
	if err != nil {
		return err
	}

	store, err := NewServerStore(cfg, logger.With("system", "storage"))
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	svc := service.NewOrderService(ext, store, logger)

	apiCfg := serverConfig(cfg, flags)
	server := api.NewServer(apiCfg, svc, logger)

	// Handle graceful shutdown
	done := make(chan bool, 1)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if _, ok := <-quit; !ok {
			return
		}
		logger.Info("received shutdown signal")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			logger.Error("server shutdown error", slog.Any("error", err))
		}
		close(done)
	}()

	// Start server (blocks until shutdown)
	if err := server.Start(); err != nil {
		signal.Stop(quit)
		close(quit)
		return err
	}

	<-done
	logger.Info("server stopped")
	return nil
}

// serverConfig overlays the loaded configuration and flags on the API defaults.
func serverConfig(cfg *config.Config, flags *ServeFlags) api.Config {
	apiCfg := api.DefaultConfig()
	if cfg.Server.Port > 0 {
		apiCfg.Port = cfg.Server.Port
	}
	if len(cfg.Server.AllowedOrigins) > 0 {
		apiCfg.AllowedOrigins = cfg.Server.AllowedOrigins
	}
	if flags != nil && flags.Port > 0 {
		apiCfg.Port = flags.Port
	}
	apiCfg.Diagnostics = handlers.DiagnosticsConfig{
		Provider:    cfg.Extraction.Provider,
		Model:       cfg.Extraction.Model,
		HistoryPath: cfg.Storage.HistoryPath,
	}
	return apiCfg
}
