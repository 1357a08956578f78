// Package cli provides common process initialization utilities for
// cmd/smartbudget.
package cli

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/astritdwi/smartbudget/internal/config"
	applog "github.com/astritdwi/smartbudget/internal/log"
	"github.com/astritdwi/smartbudget/internal/storage"
)

// SetupLogger initializes structured logging and installs it as the
// process default.
func SetupLogger() *applog.Logger {
	logger := applog.New(applog.DefaultConfig())
	applog.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file for local development. A missing
// file is fine in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration and validates it, exiting
// the process on failure.
func LoadAndValidateConfig(logger *applog.Logger) *config.Config {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}
	return cfg
}

// InitStore builds the store named by the config, exiting the process
// when the SQLite backend cannot be opened.
func InitStore(logger *applog.Logger, cfg *config.Config) storage.Store {
	switch cfg.DataBackend {
	case "sqlite":
		store, err := storage.NewSQLiteStore(cfg.SQLiteDBPath)
		if err != nil {
			logger.Error("Failed to initialize SQLite store", "error", err, "path", cfg.SQLiteDBPath)
			os.Exit(1)
		}
		logger.Info("Using SQLite store", "path", cfg.SQLiteDBPath)
		return store
	default:
		logger.Info("Using in-memory store")
		return storage.NewMemoryStore()
	}
}

