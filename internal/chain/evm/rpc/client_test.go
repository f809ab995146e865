package rpc

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drewstone/hyperlane-monorepo/internal/circuitbreaker"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func newTestClient(handler func(*http.Request) (*http.Response, error), opts ...Option) *Client {
	client := NewClient("http://rpc.local", "test-chain", slog.Default(), opts...)
	client.httpClient = &http.Client{
		Transport: roundTripFunc(handler),
	}
	return client
}

func jsonHTTPResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     make(http.Header),
	}
}

func TestCall_Success(t *testing.T) {
	client := newTestClient(func(r *http.Request) (*http.Response, error) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		var req Request
		require.NoError(t, json.Unmarshal(body, &req))

		assert.Equal(t, "2.0", req.JSONRPC)
		assert.Equal(t, "eth_testMethod", req.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		resp := Response{
			JSONRPC: "2.0",
			ID:      req.ID,
			Result:  json.RawMessage(`"0x2a"`),
		}
		rawResp, err := json.Marshal(resp)
		require.NoError(t, err)
		return jsonHTTPResponse(http.StatusOK, string(rawResp)), nil
	})

	result, err := client.call(context.Background(), "eth_testMethod", []interface{}{"p1"})
	require.NoError(t, err)

	var value string
	require.NoError(t, json.Unmarshal(result, &value))
	assert.Equal(t, "0x2a", value)
}

func TestCall_RPCError(t *testing.T) {
	client := newTestClient(func(r *http.Request) (*http.Response, error) {
		resp := Response{
			JSONRPC: "2.0",
			ID:      1,
			Error:   &RPCError{Code: -32000, Message: "upstream unavailable"},
		}
		rawResp, err := json.Marshal(resp)
		require.NoError(t, err)
		return jsonHTTPResponse(http.StatusOK, string(rawResp)), nil
	})

	_, err := client.call(context.Background(), "eth_testMethod", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "upstream unavailable")

	var rpcErr *RPCError
	require.ErrorAs(t, err, &rpcErr)
	assert.Equal(t, -32000, rpcErr.Code)
}

func TestCall_HTTPError(t *testing.T) {
	client := newTestClient(func(r *http.Request) (*http.Response, error) {
		return jsonHTTPResponse(http.StatusBadGateway, "bad gateway"), nil
	})

	_, err := client.call(context.Background(), "eth_testMethod", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "http status 502")
}

func TestCall_BreakerOpensOnTransportFailures(t *testing.T) {
	breaker := circuitbreaker.New(circuitbreaker.Config{
		FailureThreshold: 2,
		OpenTimeout:      1 * time.Hour,
	})
	client := newTestClient(func(r *http.Request) (*http.Response, error) {
		return nil, errors.New("connection refused")
	}, WithBreaker(breaker))

	_, err := client.call(context.Background(), "eth_blockNumber", nil)
	require.Error(t, err)
	_, err = client.call(context.Background(), "eth_blockNumber", nil)
	require.Error(t, err)

	// Breaker is now open; the next call is rejected before any transport.
	_, err = client.call(context.Background(), "eth_blockNumber", nil)
	require.ErrorIs(t, err, circuitbreaker.ErrCircuitOpen)
}

func TestCall_BreakerIgnoresRPCErrors(t *testing.T) {
	breaker := circuitbreaker.New(circuitbreaker.Config{
		FailureThreshold: 1,
		OpenTimeout:      1 * time.Hour,
	})
	client := newTestClient(func(r *http.Request) (*http.Response, error) {
		resp := Response{
			JSONRPC: "2.0",
			ID:      1,
			Error:   &RPCError{Code: 3, Message: "execution reverted"},
		}
		rawResp, err := json.Marshal(resp)
		require.NoError(t, err)
		return jsonHTTPResponse(http.StatusOK, string(rawResp)), nil
	}, WithBreaker(breaker))

	// Repeated application-level errors must not open the breaker.
	for i := 0; i < 3; i++ {
		_, err := client.call(context.Background(), "eth_call", nil)
		require.Error(t, err)
		require.NotErrorIs(t, err, circuitbreaker.ErrCircuitOpen)
	}
	assert.Equal(t, circuitbreaker.StateClosed, breaker.CurrentState())
}

func TestParseHexUint64(t *testing.T) {
	value, err := ParseHexUint64("0x2a")
	require.NoError(t, err)
	assert.Equal(t, uint64(42), value)

	zero, err := ParseHexUint64("0x")
	require.NoError(t, err)
	assert.Zero(t, zero)

	_, err = ParseHexUint64("nope")
	require.Error(t, err)

	_, err = ParseHexUint64("")
	require.Error(t, err)
}

func TestParseHexBig(t *testing.T) {
	value, err := ParseHexBig("0x3b9aca00")
	require.NoError(t, err)
	assert.Equal(t, "1000000000", value.String())

	zero, err := ParseHexBig("0x")
	require.NoError(t, err)
	assert.Zero(t, zero.Sign())

	_, err = ParseHexBig("zz")
	require.Error(t, err)
}

func TestFormatHexUint64(t *testing.T) {
	assert.Equal(t, "0x2a", FormatHexUint64(42))
	assert.Equal(t, "0x0", FormatHexUint64(0))
}
