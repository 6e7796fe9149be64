package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/schemacraft/schemacraft/internal/api"
	httpapi "github.com/schemacraft/schemacraft/internal/api/http"
	"github.com/schemacraft/schemacraft/internal/auth"
	"github.com/schemacraft/schemacraft/internal/config"
	"github.com/schemacraft/schemacraft/internal/logger"
	"github.com/schemacraft/schemacraft/internal/metrics"
	"github.com/schemacraft/schemacraft/internal/storage"
	"github.com/schemacraft/schemacraft/internal/storage/documents"
	"github.com/schemacraft/schemacraft/internal/storage/registry"
	"github.com/schemacraft/schemacraft/internal/version"
	"github.com/schemacraft/schemacraft/schema"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "schemacraft: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if err := logger.Init(&logger.Config{
		Level:      cfg.Logging.Level,
		Format:     cfg.Logging.Format,
		Output:     cfg.Logging.Output,
		Rotation:   cfg.Logging.Rotation,
		MaxSize:    cfg.Logging.MaxSize,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAge:     cfg.Logging.MaxAge,
	}); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	log := logger.WithComponent("main")
	log.Info().Str("version", version.Get().Version).Msg("Starting SchemaCraft")

	paths, err := storage.InitDirectories(cfg.Storage.DataDir)
	if err != nil {
		return err
	}

	users, err := auth.NewStore(paths.MetadataDir, cfg.Auth.DefaultMonthlyQuota)
	if err != nil {
		return fmt.Errorf("failed to open user store: %w", err)
	}

	tokens, err := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	if err != nil {
		return err
	}

	reg, err := registry.NewStore(paths.MetadataDir)
	if err != nil {
		return fmt.Errorf("failed to open schema registry: %w", err)
	}

	docs := documents.NewStore(paths.DocumentsDir)

	collector := metrics.NewCollector()
	apiMetrics := metrics.NewAPIMetrics(collector)
	_, active := reg.Counts()
	apiMetrics.SetActiveSchemas(active)

	apiServer := api.NewServer(api.Config{HTTPAddr: cfg.Server.HTTPAddr}, httpapi.Deps{
		Registry:  reg,
		Documents: docs,
		Users:     users,
		Tokens:    tokens,
		Validator: schema.NewValidator(),
		Metrics:   apiMetrics,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	if err := apiServer.Start(ctx); err != nil {
		return fmt.Errorf("failed to start api server: %w", err)
	}

	var metricsServer *metrics.Server
	if cfg.Metrics.Enabled {
		metricsServer = metrics.NewServer(cfg.Metrics.Addr, collector.GetRegistry())
		if err := metricsServer.Start(ctx); err != nil {
			apiServer.Stop(ctx)
			return fmt.Errorf("failed to start metrics server: %w", err)
		}
	}

	g.Go(func() error {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		log.Info().Msg("Shutting down")

		if metricsServer != nil {
			if err := metricsServer.Stop(shutdownCtx); err != nil {
				log.Warn().Err(err).Msg("Error stopping metrics server")
			}
		}

		return apiServer.Stop(shutdownCtx)
	})

	log.Info().Str("addr", cfg.Server.HTTPAddr).Msg("SchemaCraft is ready")

	if err := g.Wait(); err != nil {
		return err
	}

	log.Info().Msg("Shutdown complete")
	return nil
}
