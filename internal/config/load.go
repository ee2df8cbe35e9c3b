package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable read by Load,
// e.g. LIBRARY_SERVER_PORT for server.port.
const EnvPrefix = "LIBRARY"

// keys lists every configuration key so that environment variables can be
// bound explicitly; viper.AutomaticEnv alone is ignored by Unmarshal.
var keys = []string{
	"server.port",
	"server.log_level",
	"server.base_path",
	"server.shutdown_timeout_seconds",
	"database.backend",
	"database.url",
	"auth.jwt_secret",
	"auth.token_lifetime_minutes",
	"rate_limit.enabled",
	"rate_limit.requests_per_second",
	"rate_limit.burst",
}

// Load configuration from environment variables and optionally a config file.
// Environment variables take precedence over values from config files.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.base_path", "/api/v1")
	v.SetDefault("server.shutdown_timeout_seconds", 10)
	v.SetDefault("database.backend", BackendPostgres)
	v.SetDefault("auth.token_lifetime_minutes", 60)
	v.SetDefault("rate_limit.enabled", false)
	v.SetDefault("rate_limit.requests_per_second", 10.0)
	v.SetDefault("rate_limit.burst", 20)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range keys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind environment variable for %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}
