package log

import (
	"context"
	"log/slog"
	"net/http"
)

// ContextKey type for context keys.
type ContextKey string

// LoggerContextKey is the context key for the request logger.
const LoggerContextKey ContextKey = "logger"

// Middleware adds the logger to every request context.
func Middleware(logger *Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), LoggerContextKey, logger)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// FromContext extracts the request logger, falling back to the process
// default when none is present.
func FromContext(ctx context.Context) *Logger {
	if logger, ok := ctx.Value(LoggerContextKey).(*Logger); ok {
		return logger
	}
	return &Logger{
		Logger:    slog.Default(),
		component: ComponentApp,
	}
}
