package http

import (
	"net/http"

	"github.com/astritdwi/smartbudget/internal/core"
)

func (s *Server) handleGoals(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, s.budget.Goals())
	case http.MethodPost:
		var g core.Goal
		if err := decodeJSON(r, &g); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		created, err := s.budget.AddGoal(r.Context(), g)
		if err != nil {
			s.writeServiceError(w, r, err)
			return
		}
		s.invalidateViews()
		writeJSON(w, http.StatusCreated, created)
	default:
		methodNotAllowed(w, http.MethodGet, http.MethodPost)
	}
}

func (s *Server) handleGoalByID(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "/api/goals/")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	switch r.Method {
	case http.MethodPut:
		var g core.Goal
		if err := decodeJSON(r, &g); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		updated, err := s.budget.UpdateGoal(r.Context(), id, g)
		if err != nil {
			s.writeServiceError(w, r, err)
			return
		}
		s.invalidateViews()
		writeJSON(w, http.StatusOK, updated)
	case http.MethodDelete:
		if err := s.budget.DeleteGoal(r.Context(), id); err != nil {
			s.writeServiceError(w, r, err)
			return
		}
		s.invalidateViews()
		w.WriteHeader(http.StatusNoContent)
	default:
		methodNotAllowed(w, http.MethodPut, http.MethodDelete)
	}
}
