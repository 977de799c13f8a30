// Package config loads runtime settings for the Wikipedia MCP server from
// the environment, optionally seeded from a .env file.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds runtime configuration values for the server and CLI.
type Config struct {
	UserAgent      string
	LogLevel       slog.Level
	HTTPAddr       string
	RequestTimeout time.Duration
}

const (
	defaultLogLevel = "info"
)

// Load reads configuration values from environment variables, applying defaults where necessary.
// envFiles are loaded first (".env" when none are given); a missing file is not an error
// and variables already present in the environment are never overridden.
func Load(envFiles ...string) (*Config, error) {
	_ = godotenv.Load(envFiles...)

	cfg := &Config{
		UserAgent: os.Getenv("WIKIPEDIA_USER_AGENT"),
		HTTPAddr:  os.Getenv("MCP_HTTP_ADDR"),
	}

	levelValue := getEnv("LOG_LEVEL", defaultLogLevel)
	level, err := ParseLevel(levelValue)
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL value: %w", err)
	}
	cfg.LogLevel = level

	if raw := os.Getenv("WIKIPEDIA_TIMEOUT"); raw != "" {
		timeout, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid WIKIPEDIA_TIMEOUT value %q: %w", raw, err)
		}
		if timeout < 0 {
			return nil, fmt.Errorf("invalid WIKIPEDIA_TIMEOUT value %q: must not be negative", raw)
		}
		cfg.RequestTimeout = timeout
	}

	return cfg, nil
}

// ParseLevel maps debug, info, warn/warning and error (any case) to a slog level
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
