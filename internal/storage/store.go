// Package storage persists application state through a small key-value
// contract. Values are JSON text and round-trip unchanged; a missing key
// resolves to the caller's default, never an error.
package storage

import "context"

// Logical persistence keys.
const (
	KeyTransactions = "transactions"
	KeyGoals        = "goals"
	KeyTheme        = "theme"
	KeyLanguage     = "language"
)

// Theme values stored under KeyTheme.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// Language values stored under KeyLanguage.
const (
	LanguageID = "id"
	LanguageEN = "en"
)

// Store is the persistence contract. Get returns def when the key is
// absent; Set overwrites unconditionally.
type Store interface {
	Get(ctx context.Context, key, def string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Close() error
}
