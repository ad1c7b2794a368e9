// Package config loads runtime configuration from the environment.
package config

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/spetersoncode/statekit/retry"
)

// Config holds settings loaded from environment variables.
type Config struct {
	LogLevel  string `env:"STATEKIT_LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"STATEKIT_LOG_FORMAT" envDefault:"text"`

	// CacheKeepUnused is how long unused API cache entries are kept.
	CacheKeepUnused time.Duration `env:"STATEKIT_CACHE_KEEP_UNUSED" envDefault:"60s"`

	RetryMaxAttempts  int           `env:"STATEKIT_RETRY_MAX_ATTEMPTS" envDefault:"3"`
	RetryInitialDelay time.Duration `env:"STATEKIT_RETRY_INITIAL_DELAY" envDefault:"200ms"`
	RetryMaxDelay     time.Duration `env:"STATEKIT_RETRY_MAX_DELAY" envDefault:"5s"`
}

// Load loads configuration from environment variables.
// It loads a .env file if present (silent fail if not found).
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := ParseEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if _, err := c.level(); err != nil {
		return err
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("STATEKIT_LOG_FORMAT must be text or json, got %q", c.LogFormat)
	}
	if err := c.RetryConfig().Validate(); err != nil {
		return fmt.Errorf("STATEKIT_RETRY_*: %w", err)
	}
	return nil
}

// RetryConfig returns the fetch retry configuration.
func (c *Config) RetryConfig() retry.Config {
	cfg := retry.DefaultConfig()
	cfg.MaxAttempts = c.RetryMaxAttempts
	cfg.InitialDelay = c.RetryInitialDelay
	cfg.MaxDelay = c.RetryMaxDelay
	return cfg
}

// Logger builds a logger writing to w with the configured level and format.
func (c *Config) Logger(w io.Writer) *slog.Logger {
	level, err := c.level()
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(c.LogFormat, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func (c *Config) level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("STATEKIT_LOG_LEVEL: %w", err)
	}
	return level, nil
}
