package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/library-api/internal/config"
	"github.com/phrazzld/library-api/internal/platform/postgres"
)

// handleMigrations runs a goose migration command against the configured database.
// It's called from run() when the -migrate flag is set.
func handleMigrations(ctx context.Context, cfg *config.Config, command string, logger *slog.Logger) error {
	if cfg.Database.Backend != config.BackendPostgres {
		return fmt.Errorf("migrations require the %s backend, got %s",
			config.BackendPostgres, cfg.Database.Backend)
	}

	logger.Info("Executing migrations", "command", command)

	db, err := openDatabase(ctx, cfg.Database.URL)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			logger.Error("Failed to close database connection", "error", closeErr)
		}
	}()

	return postgres.Migrate(ctx, db, command, logger)
}
