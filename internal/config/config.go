// Package config loads and validates application configuration from environment variables.
package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// DatabaseURL is the Postgres connection string. Required.
	DatabaseURL string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:5173"] (Vite dev server).
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// MaxBodyBytes caps request bodies. Defaults to 1 MiB.
	MaxBodyBytes int64

	// DefaultCurrency is the ISO 4217 code given to trips created without one.
	DefaultCurrency string

	// ShutdownTimeout bounds graceful shutdown. Defaults to 10s.
	ShutdownTimeout time.Duration

	// AutoMigrate applies pending migrations at startup when true.
	AutoMigrate bool
}

// env mirrors the raw environment. String fields that are set but empty fall
// back to their defaults in Load, matching how the variables are documented.
type env struct {
	Port            string        `envconfig:"PORT"`
	DatabaseURL     string        `envconfig:"DATABASE_URL"`
	LogLevel        string        `envconfig:"LOG_LEVEL"`
	CORSOrigins     string        `envconfig:"CORS_ORIGINS"`
	MaxBodyBytes    int64         `envconfig:"MAX_BODY_BYTES" default:"1048576"`
	DefaultCurrency string        `envconfig:"DEFAULT_CURRENCY"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
	AutoMigrate     bool          `envconfig:"AUTO_MIGRATE" default:"false"`
}

// Load reads configuration from environment variables and returns a Config.
// Returns an error listing any required variables that are not set, or the
// first malformed value.
func Load() (Config, error) {
	var e env
	if err := envconfig.Process("", &e); err != nil {
		return Config{}, fmt.Errorf("config.Load: %w", err)
	}

	if e.DatabaseURL == "" {
		return Config{}, fmt.Errorf("required environment variables not set: %s", "DATABASE_URL")
	}

	cfg := Config{
		Port:            orDefault(e.Port, "8080"),
		DatabaseURL:     e.DatabaseURL,
		LogLevel:        strings.ToLower(orDefault(e.LogLevel, "info")),
		CORSOrigins:     splitCSV(orDefault(e.CORSOrigins, "http://localhost:5173")),
		MaxBodyBytes:    e.MaxBodyBytes,
		DefaultCurrency: strings.ToUpper(orDefault(e.DefaultCurrency, "USD")),
		ShutdownTimeout: e.ShutdownTimeout,
		AutoMigrate:     e.AutoMigrate,
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		return Config{}, fmt.Errorf("config.Load: LOG_LEVEL %q: must be debug, info, warn or error", cfg.LogLevel)
	}
	if cfg.MaxBodyBytes <= 0 {
		return Config{}, fmt.Errorf("config.Load: MAX_BODY_BYTES must be positive, got %d", cfg.MaxBodyBytes)
	}
	if len(cfg.DefaultCurrency) != 3 {
		return Config{}, fmt.Errorf("config.Load: DEFAULT_CURRENCY %q: must be a 3-letter ISO 4217 code", cfg.DefaultCurrency)
	}
	if cfg.ShutdownTimeout <= 0 {
		return Config{}, fmt.Errorf("config.Load: SHUTDOWN_TIMEOUT must be positive, got %s", cfg.ShutdownTimeout)
	}

	return cfg, nil
}

// SlogLevel returns the parsed LogLevel. Load has already validated it.
func (c Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

func orDefault(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
