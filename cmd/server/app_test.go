package main

import (
	"context"
	"testing"

	"github.com/phrazzld/library-api/internal/config"
	"github.com/phrazzld/library-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewApplication(t *testing.T) {
	t.Run("memory backend without guards", func(t *testing.T) {
		app := newTestApp(t, testConfig())

		assert.Nil(t, app.db)
		assert.NotNil(t, app.docs)
		assert.NotNil(t, app.userService)
		assert.NotNil(t, app.bookService)
		assert.NotNil(t, app.borrowService)
		assert.Nil(t, app.jwtService)
		assert.Nil(t, app.rateLimiter)
	})

	t.Run("auth and rate limiting enabled", func(t *testing.T) {
		cfg := testConfig()
		cfg.Auth.JWTSecret = "thisisasecretkeythatis32charslong!!"
		cfg.RateLimit.Enabled = true

		app := newTestApp(t, cfg)

		assert.NotNil(t, app.jwtService)
		assert.NotNil(t, app.rateLimiter)
	})

	t.Run("invalid jwt secret", func(t *testing.T) {
		cfg := testConfig()
		cfg.Auth.JWTSecret = "short"
		log, _ := logger.GetTestLogger(t)

		app, err := newApplication(cfg, log, nil)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to initialize JWT service")
		assert.Nil(t, app)
	})
}

func TestSetupAppDatabase_Memory(t *testing.T) {
	log, buf := logger.GetTestLogger(t)

	db, err := setupAppDatabase(context.Background(), testConfig(), log)

	require.NoError(t, err)
	assert.Nil(t, db)
	assert.True(t, buf.Contains("in-memory document store"))
}

func TestHandleMigrations_RequiresPostgres(t *testing.T) {
	log, _ := logger.GetTestLogger(t)

	err := handleMigrations(context.Background(), testConfig(), "up", log)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "migrations require the postgres backend")
}

func TestLoadAppConfig_Verbose(t *testing.T) {
	t.Setenv("LIBRARY_DATABASE_BACKEND", config.BackendMemory)
	t.Setenv("LIBRARY_SERVER_LOG_LEVEL", "warn")

	cfg, err := loadAppConfig(true)

	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Server.LogLevel)
}

func TestStartHTTPServer_ShutsDownOnCancel(t *testing.T) {
	cfg := testConfig()
	cfg.Server.Port = 0
	cfg.RateLimit.Enabled = true
	app := newTestApp(t, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := app.startHTTPServer(ctx, app.setupRouter())

	assert.NoError(t, err)
}
