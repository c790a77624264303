package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"dompet/internal/core"
)

type budgetRequest struct {
	Category  string `json:"category"`
	Limit     string `json:"limit"`
	Frequency string `json:"frequency"`
}

func (s *Server) handleListBudgets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.svc.Budgets(ownerFrom(r)))
}

func (s *Server) handleCreateBudget(w http.ResponseWriter, r *http.Request) {
	var req budgetRequest
	if err := decode(r, &req); err != nil {
		s.writeServiceError(w, err)
		return
	}
	limit, err := core.ParseAmount(req.Limit)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	b, err := s.svc.CreateBudget(r.Context(), ownerFrom(r), req.Category, limit, core.BudgetFrequency(req.Frequency))
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, b)
}

func (s *Server) handleBudgetStatus(w http.ResponseWriter, r *http.Request) {
	statuses, err := s.svc.BudgetReport(ownerFrom(r))
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, statuses)
}

func (s *Server) handleDeleteBudget(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.DeleteBudget(r.Context(), ownerFrom(r), chi.URLParam(r, "id")); err != nil {
		s.writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
