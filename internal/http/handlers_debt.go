package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"dompet/internal/core"
)

type debtRequest struct {
	Kind         string `json:"kind"`
	Counterparty string `json:"counterparty"`
	Amount       string `json:"amount"`
	Description  string `json:"description"`
	DueDate      string `json:"due_date"`
}

func (s *Server) handleListDebts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.svc.Debts(ownerFrom(r)))
}

func (s *Server) handleCreateDebt(w http.ResponseWriter, r *http.Request) {
	var req debtRequest
	if err := decode(r, &req); err != nil {
		s.writeServiceError(w, err)
		return
	}
	amount, err := core.ParseAmount(req.Amount)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	due, err := core.ParseDate(req.DueDate)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	d, err := s.svc.CreateDebt(r.Context(), ownerFrom(r), core.Debt{
		Kind:         core.DebtKind(req.Kind),
		Counterparty: req.Counterparty,
		Amount:       amount,
		Description:  req.Description,
		DueDate:      due,
	})
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, d)
}

type debtPaidRequest struct {
	Paid bool `json:"paid"`
}

func (s *Server) handleUpcomingDebts(w http.ResponseWriter, r *http.Request) {
	horizon := 0
	if v := r.URL.Query().Get("horizon"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			s.writeServiceError(w, core.ErrValidation)
			return
		}
		horizon = n
	}
	writeJSON(w, http.StatusOK, s.svc.UpcomingDebts(ownerFrom(r), horizon))
}

func (s *Server) handleSetDebtPaid(w http.ResponseWriter, r *http.Request) {
	var req debtPaidRequest
	if err := decode(r, &req); err != nil {
		s.writeServiceError(w, err)
		return
	}
	if err := s.svc.SetDebtPaid(r.Context(), ownerFrom(r), chi.URLParam(r, "id"), req.Paid); err != nil {
		s.writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteDebt(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.DeleteDebt(r.Context(), ownerFrom(r), chi.URLParam(r, "id")); err != nil {
		s.writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
