package config

import (
	"os"
	"strings"
	"testing"
	"time"
)

func validConfig() Config {
	return Config{
		Port:            "8081",
		DataBackend:     "memory",
		SQLiteDBPath:    "./test.db",
		DefaultTheme:    "light",
		DefaultLanguage: "id",
		SuggestDelay:    500 * time.Millisecond,
		TrendWindowDays: 30,
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		wantErr     bool
		errorString string
	}{
		{
			name:    "valid memory backend config",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name: "invalid port - non-numeric",
			mutate: func(c *Config) {
				c.Port = "abc"
			},
			wantErr:     true,
			errorString: "invalid port 'abc': must be a number",
		},
		{
			name: "invalid port - out of range low",
			mutate: func(c *Config) {
				c.Port = "0"
			},
			wantErr:     true,
			errorString: "invalid port 0: must be between 1 and 65535",
		},
		{
			name: "invalid port - out of range high",
			mutate: func(c *Config) {
				c.Port = "70000"
			},
			wantErr:     true,
			errorString: "invalid port 70000: must be between 1 and 65535",
		},
		{
			name: "invalid backend",
			mutate: func(c *Config) {
				c.DataBackend = "sheets"
			},
			wantErr:     true,
			errorString: "invalid data backend 'sheets'",
		},
		{
			name: "sqlite backend with empty path",
			mutate: func(c *Config) {
				c.DataBackend = "sqlite"
				c.SQLiteDBPath = ""
			},
			wantErr:     true,
			errorString: "SQLite database path cannot be empty",
		},
		{
			name: "invalid theme",
			mutate: func(c *Config) {
				c.DefaultTheme = "sepia"
			},
			wantErr:     true,
			errorString: "invalid default theme 'sepia'",
		},
		{
			name: "invalid language",
			mutate: func(c *Config) {
				c.DefaultLanguage = "fr"
			},
			wantErr:     true,
			errorString: "invalid default language 'fr'",
		},
		{
			name: "suggest delay too small",
			mutate: func(c *Config) {
				c.SuggestDelay = 10 * time.Millisecond
			},
			wantErr:     true,
			errorString: "invalid suggest delay",
		},
		{
			name: "trend window too large",
			mutate: func(c *Config) {
				c.TrendWindowDays = 400
			},
			wantErr:     true,
			errorString: "invalid trend window 400",
		},
		{
			name: "multiple errors combined",
			mutate: func(c *Config) {
				c.Port = "abc"
				c.DefaultTheme = "sepia"
			},
			wantErr:     true,
			errorString: "invalid port 'abc'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !strings.Contains(err.Error(), tt.errorString) {
					t.Errorf("error %q does not contain %q", err.Error(), tt.errorString)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "SQLITE_DB_PATH", "DATA_BACKEND", "DEFAULT_THEME",
		"DEFAULT_LANGUAGE", "SUGGEST_DELAY", "TREND_WINDOW_DAYS",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg := Load()
	if cfg.Port != "8081" {
		t.Errorf("Port = %q, want 8081", cfg.Port)
	}
	if cfg.DataBackend != "sqlite" {
		t.Errorf("DataBackend = %q, want sqlite", cfg.DataBackend)
	}
	if cfg.SuggestDelay != 500*time.Millisecond {
		t.Errorf("SuggestDelay = %v, want 500ms", cfg.SuggestDelay)
	}
	if cfg.TrendWindowDays != 30 {
		t.Errorf("TrendWindowDays = %d, want 30", cfg.TrendWindowDays)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DATA_BACKEND", "memory")
	t.Setenv("SUGGEST_DELAY", "250ms")
	t.Setenv("TREND_WINDOW_DAYS", "7")

	cfg := Load()
	if cfg.Port != "9090" {
		t.Errorf("Port = %q, want 9090", cfg.Port)
	}
	if cfg.DataBackend != "memory" {
		t.Errorf("DataBackend = %q, want memory", cfg.DataBackend)
	}
	if cfg.SuggestDelay != 250*time.Millisecond {
		t.Errorf("SuggestDelay = %v, want 250ms", cfg.SuggestDelay)
	}
	if cfg.TrendWindowDays != 7 {
		t.Errorf("TrendWindowDays = %d, want 7", cfg.TrendWindowDays)
	}
}
