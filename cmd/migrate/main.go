package main

// Apply the feedback table migrations:
//   go run ./cmd/migrate

import (
	"context"
	"os"

	"career-recommender/internal/shared/config"
	"career-recommender/internal/shared/storage/db"
	"career-recommender/internal/shared/telemetry"
)

func main() {
	cfg := config.Load()
	telemetry.Init(telemetry.ParseLevel(cfg.LogLevel))
	ctx := context.Background()

	if cfg.DatabaseURL == "" {
		telemetry.Error("migrate.config", map[string]any{"error": "DATABASE_URL is required"})
		os.Exit(1)
	}

	opts := db.OptionsFromEnv(db.DefaultMigrateOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		telemetry.Error("migrate.connect", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
	defer sqlDB.Close()

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		telemetry.Error("migrate.up", map[string]any{"error": err.Error()})
		os.Exit(1)
	}

	version, err := db.SchemaVersion(ctx, sqlDB)
	if err != nil {
		telemetry.Error("migrate.version", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
	telemetry.Info("migrate.done", map[string]any{"version": version})
}
