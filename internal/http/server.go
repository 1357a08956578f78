// Package http provides the JSON API server.
package http

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	applog "github.com/astritdwi/smartbudget/internal/log"
	"github.com/astritdwi/smartbudget/internal/services"
)

// Server wraps http.Server with the services the handlers need, a rate
// limiter, and a short-lived view cache.
type Server struct {
	http.Server
	budget   *services.BudgetService
	settings *services.SettingsService
	suggest  *services.SuggestionService

	rateLimiter *rateLimiter

	// Dashboard and insight views are recomputed on every mutation,
	// so cached copies only need to survive a burst of reads.
	viewCache *lruCache[[]byte]

	shutdownOnce sync.Once
}

// NewServer configures routes and returns a ready-to-run server.
func NewServer(addr string, budget *services.BudgetService, settings *services.SettingsService, suggest *services.SuggestionService) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: mux,
		},
		budget:      budget,
		settings:    settings,
		suggest:     suggest,
		rateLimiter: newRateLimiter(),
		viewCache:   newLRUCache[[]byte](16, 30*time.Second),
	}

	mux.HandleFunc("/healthz", handleHealth)
	mux.HandleFunc("/readyz", handleReady)

	mux.HandleFunc("/api/transactions", s.withMiddleware(s.handleTransactions))
	mux.HandleFunc("/api/transactions/", s.withMiddleware(s.handleTransactionByID))
	mux.HandleFunc("/api/goals", s.withMiddleware(s.handleGoals))
	mux.HandleFunc("/api/goals/", s.withMiddleware(s.handleGoalByID))
	mux.HandleFunc("/api/classify", s.withMiddleware(s.handleClassify))
	mux.HandleFunc("/api/dashboard", s.withMiddleware(s.handleDashboard))
	mux.HandleFunc("/api/insights", s.withMiddleware(s.handleInsights))
	mux.HandleFunc("/api/settings", s.withMiddleware(s.handleSettings))

	base := applog.New(applog.DefaultConfig()).WithComponent(applog.ComponentHTTP)
	s.Server.Handler = applog.Middleware(base)(mux)

	return s
}

// Shutdown stops the server and the rate limiter cleanup goroutine.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		if s.rateLimiter != nil {
			s.rateLimiter.stop()
		}
		if s.suggest != nil {
			s.suggest.Close()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

// withMiddleware adds request IDs, rate limiting on writes, security
// headers, and request logging.
func (s *Server) withMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		clientIP := clientIP(r)
		requestID := generateRequestID()

		logger := applog.FromContext(r.Context()).
			With(applog.FieldRequestID, requestID)
		ctx := context.WithValue(r.Context(), applog.LoggerContextKey, logger)
		r = r.WithContext(ctx)

		logger.InfoContext(ctx, "Request started",
			applog.FieldMethod, r.Method,
			applog.FieldPath, r.URL.Path,
			applog.FieldClientIP, clientIP)

		if isWrite(r.Method) && !s.rateLimiter.allow(clientIP) {
			logger.WarnContext(ctx, "Rate limit exceeded",
				applog.FieldClientIP, clientIP, applog.FieldPath, r.URL.Path)
			w.Header().Set("Retry-After", "60")
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		duration := time.Since(start)
		logger.InfoContext(ctx, "Request completed",
			applog.FieldMethod, r.Method,
			applog.FieldPath, r.URL.Path,
			applog.FieldStatusCode, rw.statusCode,
			applog.FieldDuration, duration.Milliseconds())
	}
}

// responseWriter captures the status code for request logging.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func isWrite(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodDelete:
		return true
	}
	return false
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

// invalidateViews drops cached dashboard and insight payloads after a
// mutation.
func (s *Server) invalidateViews() {
	s.viewCache.Delete(cacheKeyDashboard)
	s.viewCache.Delete(cacheKeyInsights)
	slog.Debug("View cache invalidated")
}
