/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the forecast engine server. Handles
  configuration, dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Load .env and configuration (YAML file + env overrides)
  2. Initialize SQLite store and load the reference-data snapshot
  3. Build the calculators and aggregator
  4. Configure HTTP router
  5. Start server with graceful shutdown

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Close database connection
  4. Exit

EXAMPLES:
  # Run with file database
  FORECAST_DB_PATH=./data/forecast.db ./server

  # Run with a config file
  FORECAST_CONFIG_PATH=./forecast.yaml ./server

SEE ALSO:
  - config/config.go: Configuration loading
  - api/server.go: Router configuration
  - store/sqlite/sqlite.go: Database implementation
*/
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/warp/forecast-engine/api"
	"github.com/warp/forecast-engine/company"
	"github.com/warp/forecast-engine/config"
	"github.com/warp/forecast-engine/employee"
	"github.com/warp/forecast-engine/forecast"
	"github.com/warp/forecast-engine/freelance"
	"github.com/warp/forecast-engine/store/sqlite"
)

func main() {
	// A missing .env is fine; env vars may come from the environment.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger(cfg.Log.Level)
	slog.SetDefault(logger)

	store, err := sqlite.New(cfg.DB.Path)
	if err != nil {
		logger.Error("failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	reference := cfg.Reference()
	input, err := store.LoadSnapshotInput(context.Background(), reference.Year)
	if err != nil {
		logger.Error("failed to load reference data", "error", err)
		os.Exit(1)
	}
	snap, err := forecast.NewSnapshot(input, logger)
	if err != nil {
		logger.Error("failed to build snapshot", "error", err)
		os.Exit(1)
	}

	calendar := forecast.NewCalendarResolver(snap, logger)
	projects := forecast.NewProjectResolver(snap, logger)
	employees := employee.New(snap, calendar, projects, employee.Config{
		Reference:      reference,
		Inflator:       cfg.InflatorValue(),
		YearlyWorkdays: cfg.Forecast.YearlyWorkdays,
	}, logger)
	freelancers := freelance.New(snap, projects, cfg.Forecast.YearlyWorkdays, logger)
	aggregator := company.New(snap, employees, freelancers, reference, cfg.IgnoreList(), logger)

	handler := api.NewHandler(snap, aggregator, employees, reference, logger)
	router := api.NewRouter(handler, logger)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server starting",
			"addr", server.Addr,
			"reference", reference.String(),
			"workers", len(snap.Workers))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
}
