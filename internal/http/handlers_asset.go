package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"dompet/internal/core"
)

type assetRequest struct {
	Name  string `json:"name"`
	Value string `json:"value"`
	Kind  string `json:"kind"`
}

func (s *Server) handleListAssets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.svc.Assets(ownerFrom(r)))
}

func (s *Server) handleCreateAsset(w http.ResponseWriter, r *http.Request) {
	var req assetRequest
	if err := decode(r, &req); err != nil {
		s.writeServiceError(w, err)
		return
	}
	value, err := core.ParseAmount(req.Value)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	a, err := s.svc.CreateAsset(r.Context(), ownerFrom(r), req.Name, value, core.AssetKind(req.Kind))
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, a)
}

func (s *Server) handleDeleteAsset(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.DeleteAsset(r.Context(), ownerFrom(r), chi.URLParam(r, "id")); err != nil {
		s.writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
