package mailbox

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSyncHealth_RecordSuccess(t *testing.T) {
	h := NewSyncHealth("ethereum", 1)
	recovered := h.RecordSuccess()

	assert.False(t, recovered, "first success is not a recovery")
	snap := h.Snapshot()
	assert.Equal(t, string(HealthStatusHealthy), snap.Status)
	assert.Equal(t, 0, snap.ConsecutiveFailures)
	assert.NotNil(t, snap.LastSuccessAt)
	assert.Nil(t, snap.LastFailureAt)
}

func TestSyncHealth_RecordFailure_Threshold(t *testing.T) {
	h := NewSyncHealth("ethereum", 1)
	for i := 0; i < DefaultUnhealthyThreshold-1; i++ {
		transitioned := h.RecordFailure()
		assert.False(t, transitioned, "should not transition before threshold")
	}

	transitioned := h.RecordFailure()
	assert.True(t, transitioned, "should transition at threshold")
	assert.Equal(t, HealthStatusUnhealthy, h.Status())

	// Further failures stay unhealthy without re-signalling the transition.
	assert.False(t, h.RecordFailure())
	assert.Equal(t, DefaultUnhealthyThreshold+1, h.Snapshot().ConsecutiveFailures)
}

func TestSyncHealth_RecordSuccess_RecoversFromUnhealthy(t *testing.T) {
	h := NewSyncHealth("arbitrum", 42161)
	for i := 0; i < DefaultUnhealthyThreshold; i++ {
		h.RecordFailure()
	}
	assert.Equal(t, HealthStatusUnhealthy, h.Status())

	recovered := h.RecordSuccess()
	assert.True(t, recovered)
	assert.Equal(t, HealthStatusHealthy, h.Status())
	assert.Equal(t, 0, h.Snapshot().ConsecutiveFailures)

	// A second success is plain, not another recovery.
	assert.False(t, h.RecordSuccess())
}

func TestSyncHealth_SuccessResetsFailureStreak(t *testing.T) {
	h := NewSyncHealth("ethereum", 1)
	for i := 0; i < DefaultUnhealthyThreshold-1; i++ {
		h.RecordFailure()
	}
	h.RecordSuccess()

	// The streak restarts; one more failure must not cross the threshold.
	assert.False(t, h.RecordFailure())
	assert.Equal(t, 1, h.Snapshot().ConsecutiveFailures)
}

func TestSyncHealth_Snapshot_Fields(t *testing.T) {
	h := NewSyncHealth("base", 8453)

	snap := h.Snapshot()
	assert.Equal(t, "base", snap.Chain)
	assert.Equal(t, uint32(8453), snap.Domain)
	assert.Equal(t, string(HealthStatusUnknown), snap.Status)

	h.RecordFailure()
	snap = h.Snapshot()
	assert.Equal(t, 1, snap.ConsecutiveFailures)
	assert.NotNil(t, snap.LastFailureAt)
	assert.Nil(t, snap.LastSuccessAt)
}
