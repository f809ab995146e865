package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/drewstone/hyperlane-monorepo/internal/cache"
	"github.com/drewstone/hyperlane-monorepo/internal/domain/model"
	"github.com/drewstone/hyperlane-monorepo/internal/metrics"
	"github.com/drewstone/hyperlane-monorepo/internal/store"
)

const (
	defaultCacheCapacity = 8192

	// Dispatched messages are immutable once observed, so cached entries
	// never go stale. Capacity is the only bound.
	defaultCacheTTL = 0
)

// Chain binds one roster entry to the store its rows live in. Chains
// isolated onto a dedicated database carry their own CacheDB; the rest
// share the default pool's.
type Chain struct {
	Name   string
	Domain model.Domain
	DB     *store.CacheDB
}

// Server exposes the indexed message store over a read-only HTTP API.
// Lookups by message ID or leaf index are fronted by an in-process cache;
// misses are never cached because the row may simply not be indexed yet.
type Server struct {
	chains map[string]Chain
	cache  *cache.Sharded[*model.DispatchedMessage]
	logger *slog.Logger
}

// NewServer creates a read API server over the given chain roster. The
// roster doubles as the route table: requests for names outside it are
// rejected, and each chain's queries run against its own store.
func NewServer(chains []Chain, logger *slog.Logger, opts ...ServerOption) *Server {
	byName := make(map[string]Chain, len(chains))
	for _, c := range chains {
		byName[c.Name] = c
	}
	s := &Server{
		chains: byName,
		cache:  cache.NewSharded[*model.DispatchedMessage](defaultCacheCapacity, defaultCacheTTL),
		logger: logger.With("component", "api"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ServerOption configures optional behavior of the read API server.
type ServerOption func(*Server)

// WithCacheCapacity overrides the total message cache capacity.
func WithCacheCapacity(n int) ServerOption {
	return func(s *Server) {
		s.cache = cache.NewSharded[*model.DispatchedMessage](n, defaultCacheTTL)
	}
}

// Handler returns the HTTP handler for the read API.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.instrument("/healthz", s.handleHealthz))
	mux.HandleFunc("GET /v1/chains", s.instrument("/v1/chains", s.handleListChains))
	mux.HandleFunc("GET /v1/status", s.instrument("/v1/status", s.handleStatus))
	mux.HandleFunc("GET /v1/{chain}/messages", s.instrument("/v1/{chain}/messages", s.handleMessageByLeafIndex))
	mux.HandleFunc("GET /v1/{chain}/messages/latest", s.instrument("/v1/{chain}/messages/latest", s.handleLatestLeafIndex))
	mux.HandleFunc("GET /v1/{chain}/messages/{id}", s.instrument("/v1/{chain}/messages/{id}", s.handleMessageByID))
	return mux
}

// writeJSON writes v as JSON with the given HTTP status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// requireChain resolves the {chain} path segment against the roster.
// Returns false (and writes an error response) for unknown names.
func (s *Server) requireChain(w http.ResponseWriter, r *http.Request) (Chain, bool) {
	name := r.PathValue("chain")
	c, ok := s.chains[name]
	if !ok {
		http.Error(w, `{"error":"unknown chain"}`, http.StatusNotFound)
		return Chain{}, false
	}
	return c, true
}

func (s *Server) sortedChainNames() []string {
	names := make([]string, 0, len(s.chains))
	for name := range s.chains {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type messageResponse struct {
	ID          string `json:"id"`
	LeafIndex   uint32 `json:"leaf_index"`
	Version     uint8  `json:"version"`
	Nonce       uint32 `json:"nonce"`
	Origin      uint32 `json:"origin"`
	Sender      string `json:"sender"`
	Destination uint32 `json:"destination"`
	Recipient   string `json:"recipient"`
	Body        string `json:"body"`
	BlockNumber uint64 `json:"block_number"`
	TxHash      string `json:"tx_hash"`
	LogIndex    uint   `json:"log_index"`
}

func newMessageResponse(d *model.DispatchedMessage) messageResponse {
	return messageResponse{
		ID:          d.ID().Hex(),
		LeafIndex:   d.LeafIndex,
		Version:     d.Message.Version,
		Nonce:       d.Message.Nonce,
		Origin:      uint32(d.Message.Origin),
		Sender:      d.Message.Sender.Hex(),
		Destination: uint32(d.Message.Destination),
		Recipient:   d.Message.Recipient.Hex(),
		Body:        hexutil.Encode(d.Message.Body),
		BlockNumber: d.Meta.BlockNumber,
		TxHash:      d.Meta.TxHash.Hex(),
		LogIndex:    d.Meta.LogIndex,
	}
}

func (s *Server) handleMessageByID(w http.ResponseWriter, r *http.Request) {
	c, ok := s.requireChain(w, r)
	if !ok {
		return
	}

	raw := r.PathValue("id")
	decoded, err := hexutil.Decode(raw)
	if err != nil || len(decoded) != common.HashLength {
		http.Error(w, `{"error":"message id must be a 32-byte 0x-prefixed hex string"}`, http.StatusBadRequest)
		return
	}
	id := common.BytesToHash(decoded)

	key := c.Name + ":" + id.Hex()
	if msg, hit := s.cache.Get(key); hit {
		metrics.CacheHits.WithLabelValues(c.Name).Inc()
		writeJSON(w, http.StatusOK, newMessageResponse(msg))
		return
	}
	metrics.CacheMisses.WithLabelValues(c.Name).Inc()

	msg, err := c.DB.Messages.GetByID(r.Context(), c.Domain, id)
	if err != nil {
		s.logger.Error("message lookup failed", "chain", c.Name, "id", id.Hex(), "error", err)
		http.Error(w, `{"error":"internal server error"}`, http.StatusInternalServerError)
		return
	}
	if msg == nil {
		http.Error(w, `{"error":"message not found"}`, http.StatusNotFound)
		return
	}

	s.cache.Put(key, msg)
	writeJSON(w, http.StatusOK, newMessageResponse(msg))
}

func (s *Server) handleMessageByLeafIndex(w http.ResponseWriter, r *http.Request) {
	c, ok := s.requireChain(w, r)
	if !ok {
		return
	}

	leafStr := r.URL.Query().Get("leaf_index")
	if leafStr == "" {
		http.Error(w, `{"error":"leaf_index query param required"}`, http.StatusBadRequest)
		return
	}
	leaf, err := strconv.ParseUint(leafStr, 10, 32)
	if err != nil {
		http.Error(w, `{"error":"leaf_index must be a uint32"}`, http.StatusBadRequest)
		return
	}

	key := c.Name + ":leaf:" + leafStr
	if msg, hit := s.cache.Get(key); hit {
		metrics.CacheHits.WithLabelValues(c.Name).Inc()
		writeJSON(w, http.StatusOK, newMessageResponse(msg))
		return
	}
	metrics.CacheMisses.WithLabelValues(c.Name).Inc()

	msg, err := c.DB.Messages.GetByLeafIndex(r.Context(), c.Domain, uint32(leaf))
	if err != nil {
		s.logger.Error("message lookup failed", "chain", c.Name, "leaf_index", leaf, "error", err)
		http.Error(w, `{"error":"internal server error"}`, http.StatusInternalServerError)
		return
	}
	if msg == nil {
		http.Error(w, `{"error":"message not found"}`, http.StatusNotFound)
		return
	}

	s.cache.Put(key, msg)
	writeJSON(w, http.StatusOK, newMessageResponse(msg))
}

type latestLeafResponse struct {
	Chain           string `json:"chain"`
	Domain          uint32 `json:"domain"`
	LatestLeafIndex uint32 `json:"latest_leaf_index"`
}

// handleLatestLeafIndex reports the highest indexed leaf. The value moves
// with every chunk, so it bypasses the cache.
func (s *Server) handleLatestLeafIndex(w http.ResponseWriter, r *http.Request) {
	c, ok := s.requireChain(w, r)
	if !ok {
		return
	}

	latest, err := c.DB.Messages.LatestLeafIndex(r.Context(), c.Domain)
	if err != nil {
		s.logger.Error("latest leaf lookup failed", "chain", c.Name, "error", err)
		http.Error(w, `{"error":"internal server error"}`, http.StatusInternalServerError)
		return
	}
	if latest == nil {
		http.Error(w, `{"error":"no messages indexed"}`, http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, latestLeafResponse{
		Chain:           c.Name,
		Domain:          uint32(c.Domain),
		LatestLeafIndex: *latest,
	})
}

type chainInfoResponse struct {
	Chain  string `json:"chain"`
	Domain uint32 `json:"domain"`
}

func (s *Server) handleListChains(w http.ResponseWriter, r *http.Request) {
	resp := make([]chainInfoResponse, 0, len(s.chains))
	for _, name := range s.sortedChainNames() {
		resp = append(resp, chainInfoResponse{Chain: name, Domain: uint32(s.chains[name].Domain)})
	}
	writeJSON(w, http.StatusOK, resp)
}

type watermarkResponse struct {
	Category    string `json:"category"`
	BlockHeight uint64 `json:"block_height"`
	UpdatedAt   string `json:"updated_at"`
}

type chainStatusResponse struct {
	Chain      string              `json:"chain"`
	Domain     uint32              `json:"domain"`
	Messages   int64               `json:"messages"`
	Watermarks []watermarkResponse `json:"watermarks,omitempty"`
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	resp := make([]chainStatusResponse, 0, len(s.chains))
	for _, name := range s.sortedChainNames() {
		c := s.chains[name]

		// Shared pools hold several domains' rows, so List is filtered
		// down to this chain's domain.
		wms, err := c.DB.Watermarks.List(r.Context())
		if err != nil {
			s.logger.Error("list watermarks failed", "chain", c.Name, "error", err)
			http.Error(w, `{"error":"internal server error"}`, http.StatusInternalServerError)
			return
		}

		count, err := c.DB.Messages.CountByOrigin(r.Context(), c.Domain)
		if err != nil {
			s.logger.Error("count messages failed", "chain", c.Name, "error", err)
			http.Error(w, `{"error":"internal server error"}`, http.StatusInternalServerError)
			return
		}

		entry := chainStatusResponse{
			Chain:    c.Name,
			Domain:   uint32(c.Domain),
			Messages: count,
		}
		for _, wm := range wms {
			if wm.Domain != c.Domain {
				continue
			}
			entry.Watermarks = append(entry.Watermarks, watermarkResponse{
				Category:    string(wm.Category),
				BlockHeight: wm.BlockHeight,
				UpdatedAt:   wm.UpdatedAt.UTC().Format(time.RFC3339),
			})
		}
		resp = append(resp, entry)
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
