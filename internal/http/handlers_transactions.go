package http

import (
	"errors"
	"net/http"

	"github.com/astritdwi/smartbudget/internal/core"
	applog "github.com/astritdwi/smartbudget/internal/log"
	"github.com/astritdwi/smartbudget/internal/services"
)

func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, s.budget.Transactions())
	case http.MethodPost:
		s.createTransaction(w, r)
	default:
		methodNotAllowed(w, http.MethodGet, http.MethodPost)
	}
}

func (s *Server) createTransaction(w http.ResponseWriter, r *http.Request) {
	var tx core.Transaction
	if err := decodeJSON(r, &tx); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := s.budget.AddTransaction(r.Context(), tx)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	s.invalidateViews()
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleTransactionByID(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "/api/transactions/")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	switch r.Method {
	case http.MethodPut:
		var tx core.Transaction
		if err := decodeJSON(r, &tx); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		updated, err := s.budget.UpdateTransaction(r.Context(), id, tx)
		if err != nil {
			s.writeServiceError(w, r, err)
			return
		}
		s.invalidateViews()
		writeJSON(w, http.StatusOK, updated)
	case http.MethodDelete:
		if err := s.budget.DeleteTransaction(r.Context(), id); err != nil {
			s.writeServiceError(w, r, err)
			return
		}
		s.invalidateViews()
		w.WriteHeader(http.StatusNoContent)
	default:
		methodNotAllowed(w, http.MethodPut, http.MethodDelete)
	}
}

// writeServiceError maps service errors onto HTTP status codes.
func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case isValidationError(err):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		applog.FromContext(r.Context()).ErrorContext(r.Context(), "Request failed",
			applog.FieldPath, r.URL.Path, applog.FieldError, err.Error())
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func isValidationError(err error) bool {
	for _, sentinel := range []error{
		core.ErrInvalidDate,
		core.ErrInvalidAmount,
		core.ErrEmptyDescription,
		core.ErrDescriptionTooShort,
		core.ErrInvalidType,
		core.ErrEmptyCategory,
		core.ErrEmptyName,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}
