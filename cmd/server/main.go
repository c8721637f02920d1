package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"

	"github.com/hidramais/vtex-alerts/internal/api"
	"github.com/hidramais/vtex-alerts/internal/blip"
	"github.com/hidramais/vtex-alerts/internal/config"
	"github.com/hidramais/vtex-alerts/internal/metrics"
	"github.com/hidramais/vtex-alerts/internal/repository"
	"github.com/hidramais/vtex-alerts/internal/repository/postgres"
	"github.com/hidramais/vtex-alerts/internal/service"
	"github.com/hidramais/vtex-alerts/internal/vtex"
)

const shutdownTimeout = 30 * time.Second

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, err := newLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("Server exited with error", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Database is optional; without it there is no audit log and no dedup
	var repos *repository.Repositories
	if cfg.Database.Enabled() {
		db, err := postgres.NewConnection(cfg.Database)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer db.Close()

		if err := postgres.EnsureSchema(ctx, db); err != nil {
			return fmt.Errorf("failed to ensure schema: %w", err)
		}
		repos = postgres.NewRepositories(db, logger)
		logger.Info("Database connected")
	} else {
		logger.Warn("DATABASE_URL not set, webhook logs and dedup are disabled")
	}

	if !cfg.VTEX.Enabled() {
		logger.Warn("VTEX credentials not set, order enrichment is disabled")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(registry)

	vtexClient := vtex.NewClient(cfg.VTEX, logger)
	blipClient := blip.NewClient(cfg.Blip, logger)
	notifications := service.NewNotificationService(
		vtexClient,
		blipClient,
		blip.NewPayloadBuilder(cfg.Blip),
		repos,
		m,
		logger,
	)

	router := api.NewRouter(cfg, api.Services{
		Notifications: notifications,
		Orders:        vtexClient,
		Metrics:       m,
		Gatherer:      registry,
	}, logger)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Starting HTTP server",
			zap.String("port", cfg.Port),
			zap.String("environment", cfg.Environment),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("Server shutdown complete")
	return nil
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL %q: %w", cfg.LogLevel, err)
	}

	zcfg := zap.NewDevelopmentConfig()
	if cfg.Environment == "production" {
		zcfg = zap.NewProductionConfig()
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)
	return zcfg.Build()
}
