// Package main implements the entry point for the library API server,
// which manages library members, the book catalog and borrow records.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/phrazzld/library-api/internal/config"
	"github.com/phrazzld/library-api/internal/platform/logger"
)

// main is the entry point for the library-api server.
// It loads configuration, sets up logging, opens the document store,
// injects dependencies and starts the HTTP server.
func main() {
	migrateCmd := flag.String("migrate", "",
		"Run database migrations and exit: up, down, reset, status, version")
	verbose := flag.Bool("verbose", false, "Enable debug logging")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, *migrateCmd, *verbose); err != nil {
		stop()
		log.Printf("library-api: %v", err)
		os.Exit(1)
	}
}

// run is main without the process concerns, so it can return errors.
func run(ctx context.Context, migrateCmd string, verbose bool) error {
	cfg, err := loadAppConfig(verbose)
	if err != nil {
		return err
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	if migrateCmd != "" {
		return handleMigrations(ctx, cfg, migrateCmd, appLogger)
	}

	db, err := setupAppDatabase(ctx, cfg, appLogger)
	if err != nil {
		return err
	}

	app, err := newApplication(cfg, appLogger, db)
	if err != nil {
		if db != nil {
			_ = db.Close()
		}
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.Run(ctx)
}

// loadAppConfig loads the application configuration from environment variables or config file.
// The verbose flag forces debug logging.
func loadAppConfig(verbose bool) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if verbose {
		cfg.Server.LogLevel = "debug"
	}

	slog.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"backend", cfg.Database.Backend)

	if cfg.Database.URL != "" {
		slog.Debug("Database configuration", "url_present", true)
	}
	if cfg.Auth.Enabled() {
		slog.Debug("Auth configuration", "jwt_secret_present", true)
	}

	return cfg, nil
}
