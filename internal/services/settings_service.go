package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/astritdwi/smartbudget/internal/storage"
)

// Settings are the persisted display preferences.
type Settings struct {
	Theme    string `json:"theme"`
	Language string `json:"language"`
}

// SettingsService reads and writes display preferences through the
// store, falling back to configured defaults when nothing is persisted.
type SettingsService struct {
	store           storage.Store
	defaultTheme    string
	defaultLanguage string
}

func NewSettingsService(store storage.Store, defaultTheme, defaultLanguage string) *SettingsService {
	if defaultTheme == "" {
		defaultTheme = storage.ThemeLight
	}
	if defaultLanguage == "" {
		defaultLanguage = storage.LanguageID
	}
	return &SettingsService{
		store:           store,
		defaultTheme:    defaultTheme,
		defaultLanguage: defaultLanguage,
	}
}

// Get returns the current preferences.
func (s *SettingsService) Get(ctx context.Context) Settings {
	theme, err := s.store.Get(ctx, storage.KeyTheme, s.defaultTheme)
	if err != nil {
		slog.WarnContext(ctx, "Theme read failed, using default", "error", err)
		theme = s.defaultTheme
	}
	lang, err := s.store.Get(ctx, storage.KeyLanguage, s.defaultLanguage)
	if err != nil {
		slog.WarnContext(ctx, "Language read failed, using default", "error", err)
		lang = s.defaultLanguage
	}
	return Settings{Theme: theme, Language: lang}
}

// Update validates and persists the given preferences. Empty fields
// keep their current values.
func (s *SettingsService) Update(ctx context.Context, in Settings) (Settings, error) {
	current := s.Get(ctx)

	if in.Theme != "" {
		switch in.Theme {
		case storage.ThemeLight, storage.ThemeDark:
		default:
			return current, fmt.Errorf("invalid theme %q", in.Theme)
		}
		if err := s.store.Set(ctx, storage.KeyTheme, in.Theme); err != nil {
			return current, fmt.Errorf("persist theme: %w", err)
		}
		current.Theme = in.Theme
	}

	if in.Language != "" {
		switch in.Language {
		case storage.LanguageID, storage.LanguageEN:
		default:
			return current, fmt.Errorf("invalid language %q", in.Language)
		}
		if err := s.store.Set(ctx, storage.KeyLanguage, in.Language); err != nil {
			return current, fmt.Errorf("persist language: %w", err)
		}
		current.Language = in.Language
	}

	slog.InfoContext(ctx, "Settings updated", "theme", current.Theme, "language", current.Language)
	return current, nil
}
