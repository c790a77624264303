package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"dompet/internal/core"
)

type walletRequest struct {
	Name string `json:"name"`
	Kind string `json:"kind"`
}

func (s *Server) handleListWallets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.svc.Wallets(ownerFrom(r)))
}

func (s *Server) handleCreateWallet(w http.ResponseWriter, r *http.Request) {
	var req walletRequest
	if err := decode(r, &req); err != nil {
		s.writeServiceError(w, err)
		return
	}
	wallet, err := s.svc.CreateWallet(r.Context(), ownerFrom(r), req.Name, core.WalletKind(req.Kind))
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, wallet)
}

func (s *Server) handleDeleteWallet(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.DeleteWallet(r.Context(), ownerFrom(r), chi.URLParam(r, "id")); err != nil {
		s.writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
