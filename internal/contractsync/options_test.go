package contractsync

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/drewstone/hyperlane-monorepo/internal/domain/model"
	"github.com/drewstone/hyperlane-monorepo/internal/store/redis"
)

func TestWithRetryConfig_AppliesValues(t *testing.T) {
	cs := &ContractSync{}
	opt := WithRetryConfig(5, 100*time.Millisecond, 10*time.Second)
	opt(cs)
	assert.Equal(t, 5, cs.retryMaxAttempts)
	assert.Equal(t, 100*time.Millisecond, cs.backoffInitial)
	assert.Equal(t, 10*time.Second, cs.backoffMax)
}

func TestWithTipPollInterval_AppliesValue(t *testing.T) {
	cs := &ContractSync{}
	opt := WithTipPollInterval(30 * time.Second)
	opt(cs)
	assert.Equal(t, 30*time.Second, cs.tipPollInterval)
}

func TestWithStream_AppliesValue(t *testing.T) {
	stream := redis.NewInMemoryStream()
	cs := &ContractSync{}
	opt := WithStream(stream)
	opt(cs)
	assert.NotNil(t, cs.stream)
}

func TestNew_Defaults(t *testing.T) {
	cs := New("ethereum", 1, nil, nil, model.IndexSettings{}, nil, nil)
	assert.Equal(t, uint32(model.DefaultChunkSize), cs.settings.ChunkSize)
	assert.Equal(t, defaultRetryMaxAttempts, cs.retryMaxAttempts)
	assert.Equal(t, defaultBackoffInitial, cs.backoffInitial)
	assert.Equal(t, defaultBackoffMax, cs.backoffMax)
	assert.Equal(t, defaultTipPollInterval, cs.tipPollInterval)
	assert.NotNil(t, cs.metrics)
	assert.NotNil(t, cs.logger)
	assert.Nil(t, cs.stream)
}

func TestRetryDelay_DoublesUpToMax(t *testing.T) {
	cs := &ContractSync{
		backoffInitial: 200 * time.Millisecond,
		backoffMax:     3 * time.Second,
	}

	assert.Equal(t, 200*time.Millisecond, cs.retryDelay(1))
	assert.Equal(t, 400*time.Millisecond, cs.retryDelay(2))
	assert.Equal(t, 800*time.Millisecond, cs.retryDelay(3))
	assert.Equal(t, 1600*time.Millisecond, cs.retryDelay(4))
	assert.Equal(t, 3*time.Second, cs.retryDelay(5))
	assert.Equal(t, 3*time.Second, cs.retryDelay(10))
}

func TestRetryDelay_ZeroConfigFallsBackToDefaults(t *testing.T) {
	cs := &ContractSync{}
	assert.Equal(t, defaultBackoffInitial, cs.retryDelay(1))
}
