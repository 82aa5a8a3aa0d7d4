/*
main.go - Demo data seeding tool

PURPOSE:
  Resets the configured database and loads the demo consultancy dataset,
  so the server has something to forecast out of the box.

EXAMPLES:
  # Seed the default database for the current year
  ./seed

  # Seed a specific file for a specific reference year
  FORECAST_DB_PATH=./data/forecast.db FORECAST_REFERENCE_YEAR=2026 ./seed

NOTE:
  Seeding wipes all existing data in the target database.

SEE ALSO:
  - seed/seed.go: the dataset being loaded
  - cmd/server/main.go: the server consuming it
*/
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/warp/forecast-engine/config"
	"github.com/warp/forecast-engine/seed"
	"github.com/warp/forecast-engine/store/sqlite"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	store, err := sqlite.New(cfg.DB.Path)
	if err != nil {
		logger.Error("failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	if err := seed.LoadDemoCompany(context.Background(), store, cfg.Forecast.ReferenceYear, logger); err != nil {
		logger.Error("seeding failed", "error", err)
		os.Exit(1)
	}

	logger.Info("database seeded", "path", cfg.DB.Path, "year", cfg.Forecast.ReferenceYear)
}
