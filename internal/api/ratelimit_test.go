package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"
)

func TestRateLimitMiddleware_AllowsNormalRequests(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	rl := NewRateLimitMiddleware(logger)
	t.Cleanup(rl.Stop)

	called := false
	handler := rl.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if !called {
		t.Error("expected handler to be called")
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestRateLimitMiddleware_BlocksExcessiveRequests(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	rl := NewRateLimitMiddleware(logger)
	t.Cleanup(rl.Stop)

	handler := rl.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	// Status endpoint: 2 rps with burst=5. The burst should pass, the
	// next immediate request should be limited.
	for i := 0; i < 5; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/status", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i+1, rec.Code)
		}
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/status", nil))
	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("burst-exceeding request: expected 429, got %d", rec.Code)
	}

	// Check Retry-After header
	if rec.Header().Get("Retry-After") == "" {
		t.Error("expected Retry-After header on 429 response")
	}
}

func TestRateLimitMiddleware_ClientsAreIndependent(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	rl := NewRateLimitMiddleware(logger)
	t.Cleanup(rl.Stop)

	handler := rl.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	// Exhaust the first client's status budget.
	for i := 0; i < 6; i++ {
		req := httptest.NewRequest(http.MethodGet, "/v1/status", nil)
		req.Header.Set("X-Forwarded-For", "10.0.0.1")
		handler.ServeHTTP(httptest.NewRecorder(), req)
	}

	// A different client IP gets a fresh limiter.
	req := httptest.NewRequest(http.MethodGet, "/v1/status", nil)
	req.Header.Set("X-Forwarded-For", "10.0.0.2")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("second client: expected 200, got %d", rec.Code)
	}
}

func TestRateLimitMiddleware_EvictsStaleLimiters(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	rl := NewRateLimitMiddleware(logger)
	t.Cleanup(rl.Stop)

	now := time.Now()
	rl.nowFunc = func() time.Time { return now }

	handler := rl.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/v1/chains", nil)
		req.Header.Set("X-Real-IP", fmt.Sprintf("10.0.0.%d", i+1))
		handler.ServeHTTP(httptest.NewRecorder(), req)
	}
	if got := rl.LimiterCount(); got != 3 {
		t.Fatalf("expected 3 limiters, got %d", got)
	}

	// Advance past the idle TTL; the sweep should drop all entries.
	now = now.Add(staleLimiterTTL + time.Minute)
	rl.evictStale()

	if got := rl.LimiterCount(); got != 0 {
		t.Errorf("expected 0 limiters after eviction, got %d", got)
	}
}
