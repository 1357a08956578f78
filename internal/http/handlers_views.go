package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/astritdwi/smartbudget/internal/classifier"
	"github.com/astritdwi/smartbudget/internal/core"
	applog "github.com/astritdwi/smartbudget/internal/log"
	"github.com/astritdwi/smartbudget/internal/services"
)

// classifyResponse pairs the classification with its display text.
type classifyResponse struct {
	classifier.Result
	Suggestion string `json:"suggestion"`
}

func (s *Server) handleClassify(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}

	q := r.URL.Query().Get("q")
	result := classifier.DetectCategory(q)

	// Feed the debouncer so keystroke bursts collapse into one
	// logged suggestion instead of one per request.
	if s.suggest != nil {
		s.suggest.Observe(q)
	}

	applog.FromContext(r.Context()).DebugContext(r.Context(), "Description classified",
		applog.FieldOperation, applog.OpClassify,
		applog.FieldCategory, result.Category,
		applog.FieldConfidence, result.Confidence)

	writeJSON(w, http.StatusOK, classifyResponse{
		Result:     result,
		Suggestion: classifier.SuggestionText(result),
	})
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}

	if body, ok := s.viewCache.Get(cacheKeyDashboard); ok {
		writeCached(w, body)
		return
	}

	body, err := json.Marshal(s.budget.Dashboard())
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.viewCache.Set(cacheKeyDashboard, body)
	writeCached(w, body)
}

func (s *Server) handleInsights(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}

	// Opening balance in whole rupiah, zero when absent.
	var balance core.Money
	if raw := r.URL.Query().Get("balance"); raw != "" {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid balance")
			return
		}
		balance = core.Money{Rupiah: v}
	}

	// Only the default view is worth caching.
	cacheable := balance.Rupiah == 0
	if cacheable {
		if body, ok := s.viewCache.Get(cacheKeyInsights); ok {
			writeCached(w, body)
			return
		}
	}

	body, err := json.Marshal(s.budget.Insights(balance))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	if cacheable {
		s.viewCache.Set(cacheKeyInsights, body)
	}
	writeCached(w, body)
}

func (s *Server) handleSettings(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, s.settings.Get(r.Context()))
	case http.MethodPut:
		var in services.Settings
		if err := decodeJSON(r, &in); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		updated, err := s.settings.Update(r.Context(), in)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, updated)
	default:
		methodNotAllowed(w, http.MethodGet, http.MethodPut)
	}
}

func writeCached(w http.ResponseWriter, body []byte) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}
