package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_AllVariablesNonNil(t *testing.T) {
	t.Parallel()

	vars := []struct {
		name string
		val  any
	}{
		{"SyncIndexedHeight", SyncIndexedHeight},
		{"SyncStoredEvents", SyncStoredEvents},
		{"SyncChunkLatency", SyncChunkLatency},
		{"SyncFetchErrors", SyncFetchErrors},
		{"SyncBlocksBehind", SyncBlocksBehind},
		{"SyncSessionsTotal", SyncSessionsTotal},
		{"RPCCallsTotal", RPCCallsTotal},
		{"RPCRateLimitWaits", RPCRateLimitWaits},
		{"RPCBreakerState", RPCBreakerState},
		{"StreamPublishedTotal", StreamPublishedTotal},
		{"StreamPublishErrors", StreamPublishErrors},
		{"APIRequestsTotal", APIRequestsTotal},
		{"APIRequestDuration", APIRequestDuration},
		{"CacheHits", CacheHits},
		{"CacheMisses", CacheMisses},
		{"DBPoolOpen", DBPoolOpen},
		{"DBPoolInUse", DBPoolInUse},
		{"DBPoolIdle", DBPoolIdle},
		{"DBPoolWaitCount", DBPoolWaitCount},
		{"DBPoolWaitDurationSeconds", DBPoolWaitDurationSeconds},
		{"AlertsSentTotal", AlertsSentTotal},
		{"AlertsCooldownSkipped", AlertsCooldownSkipped},
	}

	for _, v := range vars {
		assert.NotNilf(t, v.val, "%s should not be nil", v.name)
	}
}

func TestMetrics_CounterIncrementNoPanic(t *testing.T) {
	t.Parallel()

	labels := []string{"test-chain", "dispatched_messages"}

	assert.NotPanics(t, func() { SyncStoredEvents.WithLabelValues(labels...).Inc() })
	assert.NotPanics(t, func() { SyncFetchErrors.WithLabelValues(labels...).Inc() })
	assert.NotPanics(t, func() { SyncSessionsTotal.WithLabelValues("test-chain", "failure").Inc() })
	assert.NotPanics(t, func() { RPCCallsTotal.WithLabelValues("test-chain", "eth_call", "ok").Inc() })
	assert.NotPanics(t, func() { RPCRateLimitWaits.WithLabelValues("test-chain").Inc() })
	assert.NotPanics(t, func() { StreamPublishedTotal.WithLabelValues("test-chain").Inc() })
	assert.NotPanics(t, func() { CacheHits.WithLabelValues("test-chain").Inc() })
	assert.NotPanics(t, func() { CacheMisses.WithLabelValues("test-chain").Inc() })
	assert.NotPanics(t, func() { AlertsSentTotal.WithLabelValues("webhook", "sync_failed").Inc() })
}

func TestMetrics_HistogramObserveNoPanic(t *testing.T) {
	t.Parallel()

	assert.NotPanics(t, func() { SyncChunkLatency.WithLabelValues("test-chain", "dispatched_messages").Observe(1.5) })
	assert.NotPanics(t, func() { APIRequestDuration.WithLabelValues("/v1/status").Observe(0.02) })
}

func TestMetrics_GaugeSetNoPanic(t *testing.T) {
	t.Parallel()

	assert.NotPanics(t, func() { SyncIndexedHeight.WithLabelValues("test-chain", "dispatched_messages").Set(42.0) })
	assert.NotPanics(t, func() { SyncBlocksBehind.WithLabelValues("test-chain", "dispatched_messages").Set(7.0) })
	assert.NotPanics(t, func() { RPCBreakerState.WithLabelValues("test-chain").Set(1.0) })
	assert.NotPanics(t, func() { DBPoolOpen.WithLabelValues("default").Set(42.0) })
	assert.NotPanics(t, func() { DBPoolInUse.WithLabelValues("default").Set(42.0) })
	assert.NotPanics(t, func() { DBPoolIdle.WithLabelValues("default").Set(42.0) })
	assert.NotPanics(t, func() { DBPoolWaitCount.WithLabelValues("default").Set(42.0) })
	assert.NotPanics(t, func() { DBPoolWaitDurationSeconds.WithLabelValues("default").Set(42.0) })
}

func TestNewContractSyncMetrics_BindsSharedFamilies(t *testing.T) {
	t.Parallel()

	m := NewContractSyncMetrics()
	require.NotNil(t, m)
	assert.Same(t, SyncIndexedHeight, m.IndexedHeight)
	assert.Same(t, SyncStoredEvents, m.StoredEvents)
	assert.Same(t, SyncChunkLatency, m.ChunkDuration)
	assert.Same(t, SyncFetchErrors, m.FetchErrors)
	assert.Same(t, SyncBlocksBehind, m.BlocksBehind)
}
