package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"dompet/internal/core"
	"dompet/internal/ledger"
	applog "dompet/internal/log"
	"dompet/internal/service"
	"dompet/internal/store"
)

func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	st := store.New()
	st.SeedDefaultCategories()
	eng := ledger.New(st, applog.Discard())
	n := 0
	svc := service.New(st, eng, applog.Discard(), service.Options{
		Now: func() time.Time {
			return time.Date(2026, time.June, 25, 10, 0, 0, 0, time.UTC)
		},
		NewID: func() string {
			n++
			return fmt.Sprintf("id-%d", n)
		},
	})
	srv := NewServer(svc, applog.Discard())
	t.Cleanup(srv.Close)
	return srv.Handler()
}

func doJSON(t *testing.T, h http.Handler, method, path, owner string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if owner != "" {
		req.Header.Set("X-Owner-ID", owner)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rec.Body).Decode(&v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return v
}

func TestHealthz(t *testing.T) {
	h := newTestServer(t)
	rec := doJSON(t, h, http.MethodGet, "/healthz", "", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestAPIRequiresOwnerHeader(t *testing.T) {
	h := newTestServer(t)
	rec := doJSON(t, h, http.MethodGet, "/api/wallets", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestFirstRequestSeedsStarterWallets(t *testing.T) {
	h := newTestServer(t)
	rec := doJSON(t, h, http.MethodGet, "/api/wallets", "alice", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	wallets := decodeBody[[]core.Wallet](t, rec)
	if len(wallets) == 0 {
		t.Error("expected starter wallets on first contact")
	}
}

func TestTransactionLifecycle(t *testing.T) {
	h := newTestServer(t)

	wallets := decodeBody[[]core.Wallet](t, doJSON(t, h, http.MethodGet, "/api/wallets", "alice", nil))
	if len(wallets) == 0 {
		t.Fatal("no wallets")
	}
	walletID := wallets[0].ID

	// Create.
	rec := doJSON(t, h, http.MethodPost, "/api/transactions", "alice", map[string]string{
		"wallet_id": walletID,
		"date":      "2026-06-25",
		"amount":    "50000",
		"kind":      "EXPENSE",
		"category":  "Makanan",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body %s", rec.Code, rec.Body)
	}
	created := decodeBody[core.Transaction](t, rec)
	if created.Amount.Units != 5000000 {
		t.Errorf("amount = %d, want 5000000", created.Amount.Units)
	}

	// The wallet balance reflects it.
	wallets = decodeBody[[]core.Wallet](t, doJSON(t, h, http.MethodGet, "/api/wallets", "alice", nil))
	if wallets[0].Balance.Units != -5000000 {
		t.Errorf("balance = %d, want -5000000", wallets[0].Balance.Units)
	}

	// Edit down to 20000.
	rec = doJSON(t, h, http.MethodPut, "/api/transactions/"+created.ID, "alice", map[string]string{
		"wallet_id": walletID,
		"date":      "2026-06-25",
		"amount":    "20000",
		"kind":      "EXPENSE",
		"category":  "Makanan",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("edit status = %d, body %s", rec.Code, rec.Body)
	}
	wallets = decodeBody[[]core.Wallet](t, doJSON(t, h, http.MethodGet, "/api/wallets", "alice", nil))
	if wallets[0].Balance.Units != -2000000 {
		t.Errorf("balance after edit = %d, want -2000000", wallets[0].Balance.Units)
	}

	// Delete restores zero.
	rec = doJSON(t, h, http.MethodDelete, "/api/transactions/"+created.ID, "alice", nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", rec.Code)
	}
	wallets = decodeBody[[]core.Wallet](t, doJSON(t, h, http.MethodGet, "/api/wallets", "alice", nil))
	if wallets[0].Balance.Units != 0 {
		t.Errorf("balance after delete = %d, want 0", wallets[0].Balance.Units)
	}
}

func TestErrorStatusMapping(t *testing.T) {
	h := newTestServer(t)
	wallets := decodeBody[[]core.Wallet](t, doJSON(t, h, http.MethodGet, "/api/wallets", "alice", nil))
	walletID := wallets[0].ID

	tests := []struct {
		name       string
		method     string
		path       string
		body       any
		wantStatus int
	}{
		{
			name:   "validation failure is 400",
			method: http.MethodPost, path: "/api/transactions",
			body: map[string]string{
				"wallet_id": walletID, "date": "2026-06-25",
				"amount": "-5", "kind": "EXPENSE", "category": "Makanan",
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:   "unknown wallet is 400",
			method: http.MethodPost, path: "/api/transactions",
			body: map[string]string{
				"wallet_id": "ghost", "date": "2026-06-25",
				"amount": "100", "kind": "EXPENSE", "category": "Makanan",
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:   "missing record is 404",
			method: http.MethodDelete, path: "/api/transactions/ghost",
			wantStatus: http.StatusNotFound,
		},
		{
			name:   "malformed body is 400",
			method: http.MethodPost, path: "/api/wallets",
			body:       "not an object",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:   "admin route without role is 403",
			method: http.MethodGet, path: "/api/admin/overview",
			wantStatus: http.StatusForbidden,
		},
		{
			name:   "smart entry unconfigured is 502",
			method: http.MethodPost, path: "/api/transactions/smart",
			body:       map[string]string{"wallet_id": walletID, "text": "beli kopi"},
			wantStatus: http.StatusBadGateway,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, h, tt.method, tt.path, "alice", tt.body)
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d (body %s)", rec.Code, tt.wantStatus, rec.Body)
			}
		})
	}
}

func TestOwnersAreIsolated(t *testing.T) {
	h := newTestServer(t)

	wallets := decodeBody[[]core.Wallet](t, doJSON(t, h, http.MethodGet, "/api/wallets", "alice", nil))
	rec := doJSON(t, h, http.MethodDelete, "/api/wallets/"+wallets[0].ID, "bob", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("cross-owner delete status = %d, want 404", rec.Code)
	}
}

func TestAdminOverviewWithRole(t *testing.T) {
	h := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/overview", nil)
	req.Header.Set("X-Owner-ID", "root")
	req.Header.Set("X-Owner-Role", service.RoleAdmin)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
}

func TestTrendEndpointValidatesRange(t *testing.T) {
	h := newTestServer(t)

	rec := doJSON(t, h, http.MethodGet, "/api/analytics/trend?start=2026-06-01&end=2026-06-07", "alice", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}

	rec = doJSON(t, h, http.MethodGet, "/api/analytics/trend?start=junk&end=2026-06-07", "alice", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad start status = %d, want 400", rec.Code)
	}
}

func TestBudgetStatusEndpoint(t *testing.T) {
	h := newTestServer(t)

	rec := doJSON(t, h, http.MethodPost, "/api/budgets", "alice", map[string]string{
		"category": "Makanan", "limit": "100000", "frequency": "MONTHLY",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create budget status = %d, body %s", rec.Code, rec.Body)
	}

	rec = doJSON(t, h, http.MethodGet, "/api/budgets/status", "alice", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
}
