package rpc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math/big"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/drewstone/hyperlane-monorepo/internal/chain/ratelimit"
	"github.com/drewstone/hyperlane-monorepo/internal/circuitbreaker"
)

// RPCClient is the node surface the mailbox binding consumes.
type RPCClient interface {
	BlockNumber(ctx context.Context) (uint64, error)
	CallContract(ctx context.Context, msg CallMsg, blockTag string) ([]byte, error)
	GetLogs(ctx context.Context, filter LogFilter) ([]*Log, error)
	EstimateGas(ctx context.Context, msg CallMsg) (*big.Int, error)
	GasPrice(ctx context.Context) (*big.Int, error)
	SendTransaction(ctx context.Context, msg CallMsg) (string, error)
	GetTransactionReceipt(ctx context.Context, hash string) (*TransactionReceipt, error)
}

// Client is a JSON-RPC 2.0 client for EVM execution nodes. A rate limiter
// and a circuit breaker can be attached; the breaker is fed transport
// outcomes only, so contract reverts never trip it.
type Client struct {
	httpClient *http.Client
	rpcURL     string
	chain      string
	requestID  atomic.Int64
	limiter    *ratelimit.Limiter
	breaker    *circuitbreaker.Breaker
	logger     *slog.Logger
}

var _ RPCClient = (*Client)(nil)

type Option func(*Client)

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

func WithRateLimiter(limiter *ratelimit.Limiter) Option {
	return func(c *Client) {
		c.limiter = limiter
	}
}

func WithBreaker(breaker *circuitbreaker.Breaker) Option {
	return func(c *Client) {
		c.breaker = breaker
	}
}

func NewClient(rpcURL, chain string, logger *slog.Logger, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		rpcURL:     rpcURL,
		chain:      chain,
		logger:     logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) call(ctx context.Context, method string, params []interface{}) (json.RawMessage, error) {
	result, err := c.callOnce(ctx, method, params)
	ratelimit.RecordRPCCall(c.chain, method, err)
	return result, err
}

func (c *Client) callOnce(ctx context.Context, method string, params []interface{}) (json.RawMessage, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}
	}
	if c.breaker != nil {
		if err := c.breaker.Allow(); err != nil {
			return nil, fmt.Errorf("%s: %w", method, err)
		}
	}

	id := int(c.requestID.Add(1))
	req := Request{
		JSONRPC: "2.0",
		ID:      id,
		Method:  method,
		Params:  params,
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.rpcURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.recordTransport(false)
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		c.recordTransport(false)
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		c.recordTransport(false)
		return nil, fmt.Errorf("http status %d: %s", resp.StatusCode, string(respBody))
	}

	var rpcResp Response
	if err := json.Unmarshal(respBody, &rpcResp); err != nil {
		c.recordTransport(false)
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}

	// The transport worked; an error payload here is the node answering.
	c.recordTransport(true)

	if rpcResp.Error != nil {
		return nil, rpcResp.Error
	}

	return rpcResp.Result, nil
}

func (c *Client) recordTransport(ok bool) {
	if c.breaker == nil {
		return
	}
	if ok {
		c.breaker.RecordSuccess()
	} else {
		c.breaker.RecordFailure()
	}
}
