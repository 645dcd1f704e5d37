package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/matchboard/backend/config"
	httpDelivery "github.com/matchboard/backend/internal/delivery/http"
	"github.com/matchboard/backend/internal/infrastructure/jsonstore"
	"github.com/matchboard/backend/internal/infrastructure/ratelimit"
	"github.com/matchboard/backend/internal/logging"
	"github.com/matchboard/backend/internal/usecase"
)

const version = "1.0.0"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := logging.New(cfg.Log, cfg.Server.Environment)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server stopped with error", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	logger.Info("starting matchboard",
		zap.String("version", version),
		zap.String("environment", cfg.Server.Environment),
		zap.String("port", cfg.Server.Port))

	// Initialize infrastructure dependencies
	repo, err := jsonstore.NewRepository(cfg.Storage.Dir, cfg.Storage.SettingsPath, logger.Named("store"))
	if err != nil {
		return err
	}
	logger.Info("storage ready",
		zap.String("dir", cfg.Storage.Dir),
		zap.String("settings", cfg.Storage.SettingsPath))

	limiter := ratelimit.NewRegistry(cfg.RateLimit.PerIP, cfg.RateLimit.Burst, 10*time.Minute)
	defer limiter.Close()
	if limiter.Enabled() {
		logger.Info("rate limiting enabled",
			zap.Int("per_minute", cfg.RateLimit.PerIP),
			zap.Int("burst", cfg.RateLimit.Burst))
	}

	// Initialize usecase layer
	matcher := usecase.NewSearchLinkMatcher(usecase.MatchConfig{
		Confidence:         usecase.DefaultConfidence,
		EnableDebugLogging: cfg.Server.Environment == "development",
	}, logger.Named("matcher"))
	catalog := usecase.NewCatalogService(repo, matcher, logger.Named("catalog"))

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(catalog, logger.Named("http"))

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler, limiter)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down", zap.Duration("timeout", cfg.Server.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	logger.Info("server stopped")
	return nil
}
