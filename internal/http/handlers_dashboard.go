package http

import (
	"net/http"

	"dompet/internal/analytics"
	"dompet/internal/core"
)

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	d, err := s.svc.Dashboard(ownerFrom(r))
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.svc.Summary(ownerFrom(r)))
}

func parseRange(r *http.Request) (core.Date, core.Date, error) {
	start, err := core.ParseDate(r.URL.Query().Get("start"))
	if err != nil {
		return core.Date{}, core.Date{}, err
	}
	end, err := core.ParseDate(r.URL.Query().Get("end"))
	if err != nil {
		return core.Date{}, core.Date{}, err
	}
	return start, end, nil
}

func (s *Server) handleTrend(w http.ResponseWriter, r *http.Request) {
	start, end, err := parseRange(r)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	g := analytics.Granularity(r.URL.Query().Get("granularity"))
	if g == "" {
		g = analytics.Auto
	}
	category := r.URL.Query().Get("category")
	writeJSON(w, http.StatusOK, s.svc.TrendSeries(ownerFrom(r), start, end, g, category))
}

func (s *Server) handleDistribution(w http.ResponseWriter, r *http.Request) {
	start, end, err := parseRange(r)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.svc.DistributionFor(ownerFrom(r), start, end))
}

func (s *Server) handleAdminOverview(w http.ResponseWriter, r *http.Request) {
	overview, err := s.svc.AdminOverview(roleFrom(r))
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, overview)
}
