package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/library-api/internal/api/middleware"
	"github.com/phrazzld/library-api/internal/config"
	"github.com/phrazzld/library-api/internal/platform/memory"
	"github.com/phrazzld/library-api/internal/platform/postgres"
	"github.com/phrazzld/library-api/internal/service"
	"github.com/phrazzld/library-api/internal/service/auth"
	"github.com/phrazzld/library-api/internal/store"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger

	// db is nil when the memory backend is in use.
	db   *sql.DB
	docs store.DocumentStore

	userService   service.UserService
	bookService   service.BookService
	borrowService service.BorrowService

	// Optional request guards, nil when disabled in config.
	jwtService  auth.JWTService
	rateLimiter *middleware.RateLimiter
}

// newApplication creates a new application instance with all dependencies initialized.
// A nil db selects the in-memory document store.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	if db != nil {
		app.docs = postgres.NewDocumentStore(db, logger)
	} else {
		app.docs = memory.NewDocumentStore(logger)
	}

	var err error
	if app.userService, err = service.NewUserService(app.docs, logger); err != nil {
		return nil, fmt.Errorf("failed to create user service: %w", err)
	}
	if app.bookService, err = service.NewBookService(app.docs, logger); err != nil {
		return nil, fmt.Errorf("failed to create book service: %w", err)
	}
	if app.borrowService, err = service.NewBorrowService(app.docs, logger); err != nil {
		return nil, fmt.Errorf("failed to create borrow service: %w", err)
	}

	if cfg.Auth.Enabled() {
		lifetime := time.Duration(cfg.Auth.TokenLifetimeMinutes) * time.Minute
		app.jwtService, err = auth.NewJWTService(cfg.Auth.JWTSecret, lifetime)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
		}
		logger.Info("JWT authentication enabled",
			"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)
	}

	if cfg.RateLimit.Enabled {
		app.rateLimiter = middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
		logger.Info("Rate limiting enabled",
			"requests_per_second", cfg.RateLimit.RequestsPerSecond,
			"burst", cfg.RateLimit.Burst)
	}

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Failed to close database connection", "error", err)
		}
	}
}
