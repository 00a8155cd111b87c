package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/pscheid92/reviewpulse/internal/app"
	"github.com/pscheid92/reviewpulse/internal/cache"
	"github.com/pscheid92/reviewpulse/internal/config"
	"github.com/pscheid92/reviewpulse/internal/dataset"
	"github.com/pscheid92/reviewpulse/internal/forecast"
	"github.com/pscheid92/reviewpulse/internal/logging"
	"github.com/pscheid92/reviewpulse/internal/sentiment"
	"github.com/pscheid92/reviewpulse/internal/server"
)

const warmupTimeout = 30 * time.Second

func setupConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		// Use log before slog is initialized
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

func runGracefulShutdown(srv *server.Server, appSvc *app.Service) <-chan struct{} {
	done := make(chan struct{})
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("Shutdown signal received, cleaning up...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}

		appSvc.Stop()
		close(done)
	}()

	return done
}

func main() {
	clock := clockwork.NewRealClock()

	cfg := setupConfig()

	// Initialize structured logging
	logging.InitLogger(cfg.LogLevel, cfg.LogFormat)
	slog.Info("Application starting", "env", cfg.AppEnv, "port", cfg.Port, "dataset", cfg.DatasetPath)

	source := dataset.NewCSVSource(cfg.DatasetPath)

	engine, err := forecast.New(cfg.ForecastEngine)
	if err != nil {
		slog.Error("Failed to create forecast engine", "error", err)
		os.Exit(1)
	}
	slog.Info("Forecast engine ready", "engine", engine.Name(), "horizon", cfg.ForecastHorizon)

	productCache := cache.NewProductCache(clock)
	appSvc := app.NewService(source, sentiment.NewScorer(), engine, productCache,
		cfg.ForecastHorizon, cfg.ForecastTimeout, cfg.RefreshInterval, clock)

	// Learn the product catalogue up front so names resolve before any
	// product is initialized. No forecasts are computed here.
	warmCtx, cancel := context.WithTimeout(context.Background(), warmupTimeout)
	appSvc.WarmKnownProducts(warmCtx)
	cancel()

	srv := server.NewServer(cfg, appSvc, source)

	done := runGracefulShutdown(srv, appSvc)

	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server error", "error", err)
		os.Exit(1)
	}

	<-done
}
