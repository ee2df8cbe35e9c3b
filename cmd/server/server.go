package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Server timeouts.
const (
	readHeaderTimeout = 5 * time.Second
	readTimeout       = 15 * time.Second
	writeTimeout      = 15 * time.Second
	idleTimeout       = 60 * time.Second

	rateLimiterCleanupInterval = time.Minute
)

// startHTTPServer serves router until ctx is canceled, then shuts down gracefully.
// Returns an error if the server fails to start or does not shut down in time.
func (app *application) startHTTPServer(ctx context.Context, router http.Handler) error {
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", app.config.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: readHeaderTimeout,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
	}

	serverCtx, cancelServer := context.WithCancel(ctx)
	defer cancelServer()

	if app.rateLimiter != nil {
		app.rateLimiter.StartCleanup(serverCtx, rateLimiterCleanupInterval)
	}

	serveErr := make(chan error, 1)
	go func() {
		app.logger.Info("Starting server",
			"port", app.config.Server.Port,
			"base_path", app.config.Server.BasePath)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.logger.Error("Server failed", "error", err)
			serveErr <- err
		}
		close(serveErr)
	}()

	var startErr error
	select {
	case <-serverCtx.Done():
		app.logger.Info("Shutting down server...")
	case startErr = <-serveErr:
	}

	timeout := time.Duration(app.config.Server.ShutdownTimeoutSeconds) * time.Second
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), timeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		app.logger.Error("Server shutdown failed", "error", err)
		app.cleanup()
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	app.cleanup()

	if startErr != nil {
		return fmt.Errorf("server failed to start: %w", startErr)
	}
	app.logger.Info("Server shutdown completed")
	return nil
}
