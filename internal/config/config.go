// Package config reads the hxmdx command configuration from the environment.
package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Config holds the settings for the hxmdx command.
type Config struct {
	// Addr is the listen address for serve.
	Addr string `env:"HXMDX_ADDR" envDefault:":8080"`

	// Overrides lists HCL files declaring the root component registry.
	Overrides []string `env:"HXMDX_OVERRIDES" envSeparator:","`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `env:"HXMDX_LOG_LEVEL" envDefault:"info"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Level returns the slog level for LogLevel. Unknown values mean info.
func (c Config) Level() slog.Level {
	switch strings.ToLower(strings.TrimSpace(c.LogLevel)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}
