package ratelimit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLimiter(t *testing.T) {
	l := NewLimiter(10.0, 5, "ethereum")

	require.NotNil(t, l)
	require.NotNil(t, l.limiter)
	assert.Equal(t, "ethereum", l.chain)

	// The underlying rate.Limiter should reflect the configured RPS and burst.
	assert.InDelta(t, 10.0, float64(l.limiter.Limit()), 0.001)
	assert.Equal(t, 5, l.limiter.Burst())
}

func TestLimiter_AllowWithinBurst(t *testing.T) {
	const burst = 5
	l := NewLimiter(100, burst, "ethereum")

	ctx := context.Background()

	// All requests within the burst capacity should succeed immediately.
	for i := 0; i < burst; i++ {
		start := time.Now()
		err := l.Wait(ctx)
		elapsed := time.Since(start)

		require.NoError(t, err, "request %d should not error", i)
		assert.Less(t, elapsed, 50*time.Millisecond,
			"request %d should complete immediately, took %v", i, elapsed)
	}
}

func TestLimiter_WaitWhenExhausted(t *testing.T) {
	// Use a very low RPS so that after burst is exhausted, the next request
	// must wait a noticeable amount of time.
	const (
		rps   = 10.0 // 1 token every 100ms
		burst = 1
	)
	l := NewLimiter(rps, burst, "ethereum")

	ctx := context.Background()

	// First request consumes the only burst token, should be immediate.
	err := l.Wait(ctx)
	require.NoError(t, err)

	// Second request: burst is exhausted, so it should block until a new
	// token is available (~100ms).
	start := time.Now()
	err = l.Wait(ctx)
	elapsed := time.Since(start)

	require.NoError(t, err)
	assert.GreaterOrEqual(t, elapsed, 50*time.Millisecond,
		"should have waited for a token, but only took %v", elapsed)
}

func TestLimiter_ContextCancellation(t *testing.T) {
	// Low RPS and small burst so we can exhaust tokens.
	const (
		rps   = 1.0 // 1 token per second
		burst = 1
	)
	l := NewLimiter(rps, burst, "arbitrum")

	// Exhaust the burst token.
	err := l.Wait(context.Background())
	require.NoError(t, err)

	// Cancel the context before the next token becomes available.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err = l.Wait(ctx)
	require.Error(t, err, "should return error when context is cancelled")
}

func TestClassifyRPCError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"nil is ok", nil, "ok"},
		{"timeout", errors.New("request timeout after 30s"), "timeout"},
		{"rate limited", errors.New("http status 429: too many requests"), "rate_limited"},
		{"breaker open", errors.New("circuit breaker is open"), "breaker_open"},
		{"server error", errors.New("http status 502: bad gateway"), "server_error"},
		{"network error", errors.New("dial tcp: connection refused"), "network_error"},
		{"reverted", errors.New("execution reverted: !mailbox"), "reverted"},
		{"fallback", errors.New("invalid params"), "client_error"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, ClassifyRPCError(tt.err))
		})
	}
}
