package http

import (
	"net/http"
	"sync"
	"time"

	"dompet/internal/metrics"
)

// ownerLimiter is a fixed-window in-memory rate limiter keyed by owner.
type ownerLimiter struct {
	mu           sync.Mutex
	owners       map[string]*ownerWindow
	limit        int
	stopCleanup  chan struct{}
	shutdownOnce sync.Once
}

type ownerWindow struct {
	lastRequest time.Time
	requests    int
}

func newOwnerLimiter(requestsPerMinute int) *ownerLimiter {
	if requestsPerMinute <= 0 {
		requestsPerMinute = defaultRequestsPerMinute
	}
	l := &ownerLimiter{
		owners:      make(map[string]*ownerWindow),
		limit:       requestsPerMinute,
		stopCleanup: make(chan struct{}),
	}
	go l.startCleanup()
	return l
}

const defaultRequestsPerMinute = 60

func (l *ownerLimiter) startCleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			l.cleanupStaleEntries()
		case <-l.stopCleanup:
			return
		}
	}
}

// cleanupStaleEntries removes owner windows idle for over 10 minutes.
func (l *ownerLimiter) cleanupStaleEntries() {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := time.Now().Add(-10 * time.Minute)
	for owner, win := range l.owners {
		if win.lastRequest.Before(cutoff) {
			delete(l.owners, owner)
		}
	}
}

// stop shuts down the cleanup goroutine.
func (l *ownerLimiter) stop() {
	l.shutdownOnce.Do(func() {
		close(l.stopCleanup)
	})
}

// allow reports whether another request from the owner fits in the
// current one-minute window.
func (l *ownerLimiter) allow(ownerID string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	win, ok := l.owners[ownerID]
	if !ok {
		l.owners[ownerID] = &ownerWindow{lastRequest: now, requests: 1}
		return true
	}

	if now.Sub(win.lastRequest) > time.Minute {
		win.requests = 1
		win.lastRequest = now
		return true
	}

	win.requests++
	win.lastRequest = now
	if win.requests > l.limit {
		metrics.RateLimited.Inc()
		return false
	}
	return true
}

// rateLimit rejects owners that exceed the per-minute window. It runs
// after identity, so the key is always the resolved owner.
func (s *Server) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.limiter.allow(ownerFrom(r)) {
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}
		next.ServeHTTP(w, r)
	})
}
