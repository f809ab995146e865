package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Sync and RPC counters are partitioned by chain; sync families add the
// fact category so new job types land in the same metrics.

var (
	// Contract sync
	SyncIndexedHeight = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "agent",
		Subsystem: "sync",
		Name:      "indexed_height",
		Help:      "Highest block durably indexed per chain and fact category",
	}, []string{"chain", "category"})

	SyncStoredEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "agent",
		Subsystem: "sync",
		Name:      "stored_events_total",
		Help:      "Total indexed facts written to the cache store",
	}, []string{"chain", "category"})

	SyncChunkLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "agent",
		Subsystem: "sync",
		Name:      "chunk_duration_seconds",
		Help:      "Duration of one fetch-store-advance chunk",
		Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
	}, []string{"chain", "category"})

	SyncFetchErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "agent",
		Subsystem: "sync",
		Name:      "fetch_errors_total",
		Help:      "Total indexer fetch errors (after retry exhaustion)",
	}, []string{"chain", "category"})

	SyncBlocksBehind = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "agent",
		Subsystem: "sync",
		Name:      "blocks_behind",
		Help:      "Distance between the finalized tip and the indexed height",
	}, []string{"chain", "category"})

	SyncSessionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "agent",
		Subsystem: "sync",
		Name:      "sessions_total",
		Help:      "Total sync sessions resolved, by outcome",
	}, []string{"chain", "outcome"})

	// RPC
	RPCCallsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "agent",
		Subsystem: "rpc",
		Name:      "calls_total",
		Help:      "Total JSON-RPC calls by method and status",
	}, []string{"chain", "method", "status"})

	RPCRateLimitWaits = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "agent",
		Subsystem: "rpc",
		Name:      "rate_limit_waits_total",
		Help:      "Total times RPC calls waited for rate limiter",
	}, []string{"chain"})

	RPCBreakerState = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "agent",
		Subsystem: "rpc",
		Name:      "breaker_state",
		Help:      "Circuit breaker state per chain (0=closed, 1=open, 2=half-open)",
	}, []string{"chain"})

	// Dispatch fan-out stream
	StreamPublishedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "agent",
		Subsystem: "stream",
		Name:      "published_total",
		Help:      "Total dispatched messages published to the fan-out stream",
	}, []string{"chain"})

	StreamPublishErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "agent",
		Subsystem: "stream",
		Name:      "publish_errors_total",
		Help:      "Total fan-out stream publish failures (non-fatal)",
	}, []string{"chain"})

	// Read API
	APIRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "agent",
		Subsystem: "api",
		Name:      "requests_total",
		Help:      "Total read API requests by route and status code",
	}, []string{"route", "code"})

	APIRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "agent",
		Subsystem: "api",
		Name:      "request_duration_seconds",
		Help:      "Read API request duration",
		Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
	}, []string{"route"})

	// Message cache in front of the store
	CacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "agent",
		Subsystem: "cache",
		Name:      "hits_total",
		Help:      "Total message cache hits",
	}, []string{"chain"})

	CacheMisses = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "agent",
		Subsystem: "cache",
		Name:      "misses_total",
		Help:      "Total message cache misses",
	}, []string{"chain"})

	// Database pools. The pool label is "default" for the shared pool and
	// the chain name for pools registered as per-chain overrides.
	DBPoolOpen = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "agent",
		Subsystem: "postgres",
		Name:      "db_pool_open",
		Help:      "Current number of open PostgreSQL connections in the pool",
	}, []string{"pool"})

	DBPoolInUse = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "agent",
		Subsystem: "postgres",
		Name:      "db_pool_in_use",
		Help:      "Current number of in-use PostgreSQL connections in the pool",
	}, []string{"pool"})

	DBPoolIdle = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "agent",
		Subsystem: "postgres",
		Name:      "db_pool_idle",
		Help:      "Current number of idle PostgreSQL connections in the pool",
	}, []string{"pool"})

	DBPoolWaitCount = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "agent",
		Subsystem: "postgres",
		Name:      "db_pool_wait_count",
		Help:      "Cumulative count of waits for PostgreSQL connections from pool",
	}, []string{"pool"})

	DBPoolWaitDurationSeconds = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "agent",
		Subsystem: "postgres",
		Name:      "db_pool_wait_duration_seconds",
		Help:      "Cumulative PostgreSQL pool wait time in seconds",
	}, []string{"pool"})

	// Alerts
	AlertsSentTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "agent",
		Subsystem: "alert",
		Name:      "sent_total",
		Help:      "Total alerts sent",
	}, []string{"channel", "alert_type"})

	AlertsCooldownSkipped = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "agent",
		Subsystem: "alert",
		Name:      "cooldown_skipped_total",
		Help:      "Total alerts skipped due to cooldown",
	}, []string{"channel", "alert_type"})
)

// ContractSyncMetrics is the sink a sync session reports progress through.
// All sessions share the same underlying families; the struct exists so
// callers hand one value to Sync instead of reaching into package globals.
type ContractSyncMetrics struct {
	IndexedHeight *prometheus.GaugeVec
	StoredEvents  *prometheus.CounterVec
	ChunkDuration *prometheus.HistogramVec
	FetchErrors   *prometheus.CounterVec
	BlocksBehind  *prometheus.GaugeVec
}

func NewContractSyncMetrics() *ContractSyncMetrics {
	return &ContractSyncMetrics{
		IndexedHeight: SyncIndexedHeight,
		StoredEvents:  SyncStoredEvents,
		ChunkDuration: SyncChunkLatency,
		FetchErrors:   SyncFetchErrors,
		BlocksBehind:  SyncBlocksBehind,
	}
}
