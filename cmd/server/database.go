package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver
	"github.com/phrazzld/library-api/internal/config"
	"github.com/phrazzld/library-api/internal/redact"
)

// setupAppDatabase establishes a connection to the database and configures connection pools.
// It returns a nil *sql.DB without error when the memory backend is configured.
func setupAppDatabase(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*sql.DB, error) {
	if cfg.Database.Backend == config.BackendMemory {
		logger.Info("Using in-memory document store; data is lost on exit")
		return nil, nil
	}

	db, err := openDatabase(ctx, cfg.Database.URL)
	if err != nil {
		logger.Error("Database connection failed", "error", redact.Error(err))
		return nil, err
	}

	logger.Info("Database connection established")
	return db, nil
}

// openDatabase opens a pgx-backed *sql.DB with pool limits and verifies it with a ping.
func openDatabase(ctx context.Context, url string) (*sql.DB, error) {
	db, err := sql.Open("pgx", url)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}
