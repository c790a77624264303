// Package http exposes the tracker over a JSON API. The transport is a
// thin shell: owner identity comes from headers (the identity
// collaborator stub), bodies are decoded, and everything else is the
// service layer's business.
package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	applog "dompet/internal/log"
	"dompet/internal/service"
)

// Server hosts the JSON API.
type Server struct {
	svc     *service.Tracker
	log     *applog.Logger
	limiter *ownerLimiter
}

func NewServer(svc *service.Tracker, logger *applog.Logger) *Server {
	return &Server{
		svc:     svc,
		log:     logger.WithComponent(applog.ComponentHTTP),
		limiter: newOwnerLimiter(defaultRequestsPerMinute),
	}
}

// Close releases the server's background resources.
func (s *Server) Close() {
	s.limiter.stop()
}

// Handler returns the chi router with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(s.requestLogger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Use(s.identity)
		r.Use(s.rateLimit)

		r.Route("/wallets", func(r chi.Router) {
			r.Get("/", s.handleListWallets)
			r.Post("/", s.handleCreateWallet)
			r.Delete("/{id}", s.handleDeleteWallet)
		})

		r.Route("/transactions", func(r chi.Router) {
			r.Get("/", s.handleListTransactions)
			r.Post("/", s.handleCreateTransaction)
			r.Put("/{id}", s.handleEditTransaction)
			r.Delete("/{id}", s.handleDeleteTransaction)
			r.Post("/smart", s.handleSmartEntry)
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", s.handleListCategories)
			r.Post("/", s.handleCreateCategory)
			r.Delete("/{id}", s.handleDeleteCategory)
		})

		r.Route("/budgets", func(r chi.Router) {
			r.Get("/", s.handleListBudgets)
			r.Post("/", s.handleCreateBudget)
			r.Get("/status", s.handleBudgetStatus)
			r.Delete("/{id}", s.handleDeleteBudget)
		})

		r.Route("/debts", func(r chi.Router) {
			r.Get("/", s.handleListDebts)
			r.Get("/upcoming", s.handleUpcomingDebts)
			r.Post("/", s.handleCreateDebt)
			r.Put("/{id}/paid", s.handleSetDebtPaid)
			r.Delete("/{id}", s.handleDeleteDebt)
		})

		r.Route("/assets", func(r chi.Router) {
			r.Get("/", s.handleListAssets)
			r.Post("/", s.handleCreateAsset)
			r.Delete("/{id}", s.handleDeleteAsset)
		})

		r.Get("/dashboard", s.handleDashboard)
		r.Get("/summary", s.handleSummary)
		r.Get("/analytics/trend", s.handleTrend)
		r.Get("/analytics/distribution", s.handleDistribution)
		r.Get("/admin/overview", s.handleAdminOverview)
	})

	return r
}

type contextKey string

const (
	ctxOwnerID contextKey = "owner_id"
	ctxRole    contextKey = "role"
)

// identity reads the owner and role the identity collaborator put in the
// request headers, and seeds starter wallets for first-time owners.
func (s *Server) identity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ownerID := r.Header.Get("X-Owner-ID")
		if ownerID == "" {
			writeError(w, http.StatusUnauthorized, "missing X-Owner-ID header")
			return
		}
		role := r.Header.Get("X-Owner-Role")
		if role == "" {
			role = service.RoleUser
		}
		if err := s.svc.EnsureOwner(r.Context(), ownerID); err != nil {
			s.writeServiceError(w, err)
			return
		}
		ctx := context.WithValue(r.Context(), ctxOwnerID, ownerID)
		ctx = context.WithValue(ctx, ctxRole, role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func ownerFrom(r *http.Request) string {
	owner, _ := r.Context().Value(ctxOwnerID).(string)
	return owner
}

func roleFrom(r *http.Request) string {
	role, _ := r.Context().Value(ctxRole).(string)
	return role
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.Info("request",
			applog.FieldMethod, r.Method,
			applog.FieldPath, r.URL.Path,
			applog.FieldStatusCode, ww.Status(),
			applog.FieldDuration, time.Since(started).Milliseconds())
	})
}
