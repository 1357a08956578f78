// Package config loads and validates application configuration from
// the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// HTTP Server
	Port string

	// Database
	SQLiteDBPath string

	// Backend selection
	DataBackend string

	// Defaults applied when the store has no persisted preference
	DefaultTheme    string
	DefaultLanguage string

	// Category suggestion debounce
	SuggestDelay time.Duration

	// Spending trend window for the dashboard
	TrendWindowDays int
}

func Load() *Config {
	return &Config{
		Port:            getEnv("PORT", "8081"),
		SQLiteDBPath:    getEnv("SQLITE_DB_PATH", "./data/smartbudget.db"),
		DataBackend:     getEnv("DATA_BACKEND", "sqlite"),
		DefaultTheme:    getEnv("DEFAULT_THEME", "light"),
		DefaultLanguage: getEnv("DEFAULT_LANGUAGE", "id"),
		SuggestDelay:    getEnvDuration("SUGGEST_DELAY", 500*time.Millisecond),
		TrendWindowDays: getEnvInt("TREND_WINDOW_DAYS", 30),
	}
}

// Validate checks the configuration and returns every problem at once.
func (c *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	switch c.DataBackend {
	case "memory", "sqlite":
	default:
		errors = append(errors, fmt.Sprintf("invalid data backend '%s': must be one of [memory sqlite]", c.DataBackend))
	}

	if c.DataBackend == "sqlite" {
		if c.SQLiteDBPath == "" {
			errors = append(errors, "SQLite database path cannot be empty when using sqlite backend")
		} else {
			dir := filepath.Dir(c.SQLiteDBPath)
			if dir != "." && dir != "" {
				if _, err := os.Stat(dir); os.IsNotExist(err) {
					if err := os.MkdirAll(dir, 0755); err != nil {
						errors = append(errors, fmt.Sprintf("cannot create SQLite database directory '%s': %v", dir, err))
					}
				}
			}
		}
	}

	switch c.DefaultTheme {
	case "light", "dark":
	default:
		errors = append(errors, fmt.Sprintf("invalid default theme '%s': must be one of [light dark]", c.DefaultTheme))
	}

	switch c.DefaultLanguage {
	case "id", "en":
	default:
		errors = append(errors, fmt.Sprintf("invalid default language '%s': must be one of [id en]", c.DefaultLanguage))
	}

	if c.SuggestDelay < 50*time.Millisecond {
		errors = append(errors, fmt.Sprintf("invalid suggest delay %v: must be at least 50ms", c.SuggestDelay))
	} else if c.SuggestDelay > 10*time.Second {
		errors = append(errors, fmt.Sprintf("invalid suggest delay %v: must be at most 10 seconds", c.SuggestDelay))
	}

	if c.TrendWindowDays < 1 {
		errors = append(errors, fmt.Sprintf("invalid trend window %d: must be at least 1 day", c.TrendWindowDays))
	} else if c.TrendWindowDays > 366 {
		errors = append(errors, fmt.Sprintf("invalid trend window %d: must be at most 366 days", c.TrendWindowDays))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
