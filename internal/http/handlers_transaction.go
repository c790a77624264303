package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"dompet/internal/core"
	"dompet/internal/service"
)

type transactionRequest struct {
	WalletID    string `json:"wallet_id"`
	ToWalletID  string `json:"to_wallet_id,omitempty"`
	Date        string `json:"date"`
	Description string `json:"description"`
	Amount      string `json:"amount"`
	Kind        string `json:"kind"`
	Category    string `json:"category"`
}

func (req transactionRequest) toInput() (service.TransactionInput, error) {
	amount, err := core.ParseAmount(req.Amount)
	if err != nil {
		return service.TransactionInput{}, err
	}
	date, err := core.ParseDate(req.Date)
	if err != nil {
		return service.TransactionInput{}, err
	}
	return service.TransactionInput{
		WalletID:    req.WalletID,
		ToWalletID:  req.ToWalletID,
		Date:        date,
		Description: req.Description,
		Amount:      amount,
		Kind:        core.TransactionKind(req.Kind),
		Category:    req.Category,
	}, nil
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.svc.Transactions(ownerFrom(r)))
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req transactionRequest
	if err := decode(r, &req); err != nil {
		s.writeServiceError(w, err)
		return
	}
	in, err := req.toInput()
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	txn, err := s.svc.CreateTransaction(r.Context(), ownerFrom(r), in)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, txn)
}

func (s *Server) handleEditTransaction(w http.ResponseWriter, r *http.Request) {
	var req transactionRequest
	if err := decode(r, &req); err != nil {
		s.writeServiceError(w, err)
		return
	}
	in, err := req.toInput()
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	txn, err := s.svc.EditTransaction(r.Context(), ownerFrom(r), chi.URLParam(r, "id"), in)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, txn)
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.DeleteTransaction(r.Context(), ownerFrom(r), chi.URLParam(r, "id")); err != nil {
		s.writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type smartEntryRequest struct {
	WalletID string `json:"wallet_id"`
	Text     string `json:"text"`
}

func (s *Server) handleSmartEntry(w http.ResponseWriter, r *http.Request) {
	var req smartEntryRequest
	if err := decode(r, &req); err != nil {
		s.writeServiceError(w, err)
		return
	}
	txns, err := s.svc.SmartEntry(r.Context(), ownerFrom(r), req.WalletID, req.Text)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, txns)
}
