// Package config resolves fundalloc settings from the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Log output formats.
const (
	LogFormatConsole = "console"
	LogFormatJSON    = "json"
)

// Config holds process-wide settings.
type Config struct {
	DBPath      string
	LogLevel    string
	LogFormat   string
	LogUseCases bool
	// DefaultBID is the business id assumed when a command omits --bid.
	DefaultBID int64
}

// DefaultConfig returns the settings used when no environment overrides
// are present. DBPath is left empty and resolved by Load.
func DefaultConfig() Config {
	return Config{
		LogLevel:   "info",
		LogFormat:  LogFormatConsole,
		DefaultBID: 1,
	}
}

// Load reads configuration from environment variables, falling back to
// defaults for any unset or malformed values.
func Load() (Config, error) {
	cfg := DefaultConfig()

	cfg.DBPath = os.Getenv("FUNDALLOC_DB")
	if cfg.DBPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return cfg, fmt.Errorf("finding home directory: %w", err)
		}
		cfg.DBPath = filepath.Join(home, ".fundalloc", "fundalloc.db")
	}

	if v := os.Getenv("FUNDALLOC_LOG_LEVEL"); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	if v := strings.ToLower(os.Getenv("FUNDALLOC_LOG_FORMAT")); v == LogFormatConsole || v == LogFormatJSON {
		cfg.LogFormat = v
	}
	if v := os.Getenv("FUNDALLOC_LOG_USE_CASES"); v != "" {
		cfg.LogUseCases, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("FUNDALLOC_BID"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			cfg.DefaultBID = n
		}
	}

	return cfg, nil
}
