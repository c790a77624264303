package smart

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"dompet/internal/core"
	applog "dompet/internal/log"
)

func fixedClock() time.Time {
	return time.Date(2026, time.June, 25, 10, 0, 0, 0, time.UTC)
}

// modelReply wraps drafts the way generateContent nests them.
func modelReply(t *testing.T, drafts string) []byte {
	t.Helper()
	reply := map[string]any{
		"candidates": []map[string]any{{
			"content": map[string]any{
				"parts": []map[string]any{{"text": drafts}},
			},
		}},
	}
	raw, err := json.Marshal(reply)
	if err != nil {
		t.Fatalf("marshal reply: %v", err)
	}
	return raw
}

func newTestGemini(t *testing.T, handler http.HandlerFunc) *Gemini {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewGemini("test-key", "gemini-test", applog.Discard(),
		WithBaseURL(srv.URL),
		WithHTTPClient(srv.Client()),
		WithClock(fixedClock))
}

func TestGeminiParse(t *testing.T) {
	var gotPath, gotKey string
	g := newTestGemini(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-goog-api-key")
		w.Write(modelReply(t, `[
			{"description": "beli kopi", "amount": 20000, "type": "EXPENSE", "category": "Makanan", "date": "2026-06-24"},
			{"description": "gaji", "amount": 8500000, "type": "INCOME", "category": "Gaji", "date": "2026-06-25"}
		]`))
	})

	drafts, err := g.Parse(context.Background(), "beli kopi 20rb kemarin, gajian 8.5jt")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if gotPath != "/models/gemini-test:generateContent" {
		t.Errorf("path = %s", gotPath)
	}
	if gotKey != "test-key" {
		t.Errorf("api key header = %q", gotKey)
	}
	if len(drafts) != 2 {
		t.Fatalf("draft count = %d, want 2", len(drafts))
	}
	if drafts[0].Description != "beli kopi" || drafts[0].Amount.Units != 2000000 {
		t.Errorf("draft 0 = %+v", drafts[0])
	}
	if drafts[0].Kind != core.Expense || drafts[0].Date.String() != "2026-06-24" {
		t.Errorf("draft 0 kind/date = %s/%s", drafts[0].Kind, drafts[0].Date)
	}
	if drafts[1].Kind != core.Income || drafts[1].Amount.Units != 850000000 {
		t.Errorf("draft 1 = %+v", drafts[1])
	}
}

func TestGeminiParseFallbacks(t *testing.T) {
	g := newTestGemini(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write(modelReply(t, `[
			{"description": "tanpa tanggal", "amount": 100, "type": "EXPENSE", "category": "", "date": "entah"},
			{"description": "rusak", "amount": 0, "type": "EXPENSE", "category": "Makanan", "date": "2026-06-25"},
			{"description": "jenis aneh", "amount": 100, "type": "TRANSFER", "category": "Makanan", "date": "2026-06-25"}
		]`))
	})

	drafts, err := g.Parse(context.Background(), "x")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	// The zero-amount and non-income/expense drafts are dropped, not fatal.
	if len(drafts) != 1 {
		t.Fatalf("draft count = %d, want 1", len(drafts))
	}
	if drafts[0].Date.String() != "2026-06-25" {
		t.Errorf("unparseable date should fall back to today, got %s", drafts[0].Date)
	}
	if drafts[0].Category != "Lainnya" {
		t.Errorf("empty category should fall back to Lainnya, got %q", drafts[0].Category)
	}
}

func TestGeminiParseStatusMapping(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		wantErr error
	}{
		{name: "unauthorized", status: http.StatusUnauthorized, wantErr: core.ErrInvalidKey},
		{name: "forbidden", status: http.StatusForbidden, wantErr: core.ErrInvalidKey},
		{name: "rate limited", status: http.StatusTooManyRequests, wantErr: core.ErrServiceUnavailable},
		{name: "upstream down", status: http.StatusServiceUnavailable, wantErr: core.ErrServiceUnavailable},
		{name: "unexpected status", status: http.StatusTeapot, wantErr: core.ErrAdapter},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGemini(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			})
			_, err := g.Parse(context.Background(), "x")
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
			if !errors.Is(err, core.ErrAdapter) {
				t.Errorf("error %v should wrap ErrAdapter", err)
			}
		})
	}
}

func TestGeminiParseConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()
	g := NewGemini("test-key", "gemini-test", applog.Discard(),
		WithBaseURL(srv.URL), WithClock(fixedClock))

	_, err := g.Parse(context.Background(), "x")
	if !errors.Is(err, core.ErrServiceUnavailable) {
		t.Errorf("error = %v, want ErrServiceUnavailable", err)
	}
}

func TestGeminiParseEmptyCandidates(t *testing.T) {
	g := newTestGemini(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates": []}`))
	})
	drafts, err := g.Parse(context.Background(), "x")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if drafts != nil {
		t.Errorf("drafts = %v, want nil", drafts)
	}
}

func TestGeminiParseMissingKey(t *testing.T) {
	g := NewGemini("", "gemini-test", applog.Discard())
	_, err := g.Parse(context.Background(), "x")
	if !errors.Is(err, core.ErrInvalidKey) {
		t.Errorf("error = %v, want ErrInvalidKey", err)
	}
}

func TestGeminiParseMalformedDrafts(t *testing.T) {
	g := newTestGemini(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write(modelReply(t, `{"not": "an array"}`))
	})
	_, err := g.Parse(context.Background(), "x")
	if !errors.Is(err, core.ErrAdapter) {
		t.Errorf("error = %v, want ErrAdapter", err)
	}
}
