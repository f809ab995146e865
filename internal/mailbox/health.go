package mailbox

import (
	"sync"
	"time"

	"github.com/drewstone/hyperlane-monorepo/internal/domain/model"
)

// HealthStatus is the supervision state of one chain's sync loop.
type HealthStatus string

const (
	HealthStatusUnknown   HealthStatus = "UNKNOWN"
	HealthStatusHealthy   HealthStatus = "HEALTHY"
	HealthStatusUnhealthy HealthStatus = "UNHEALTHY"

	// DefaultUnhealthyThreshold is the number of consecutive failed
	// sessions before a chain is considered unhealthy.
	DefaultUnhealthyThreshold = 5
)

// SyncHealth tracks consecutive session outcomes for one chain. The
// supervisor records every session end; the transition booleans tell it
// when to raise an unhealthy alert and when to announce recovery, so a
// flapping chain alerts once per episode rather than once per restart.
type SyncHealth struct {
	mu                  sync.RWMutex
	chain               string
	domain              model.Domain
	status              HealthStatus
	consecutiveFailures int
	lastSuccessAt       *time.Time
	lastFailureAt       *time.Time
	unhealthyThreshold  int
}

func NewSyncHealth(chain string, domain model.Domain) *SyncHealth {
	return &SyncHealth{
		chain:              chain,
		domain:             domain,
		status:             HealthStatusUnknown,
		unhealthyThreshold: DefaultUnhealthyThreshold,
	}
}

// RecordSuccess marks the chain healthy and resets the failure streak.
// Returns true when this call recovers the chain from an unhealthy state.
func (h *SyncHealth) RecordSuccess() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	now := time.Now()
	wasUnhealthy := h.status == HealthStatusUnhealthy
	h.consecutiveFailures = 0
	h.lastSuccessAt = &now
	h.status = HealthStatusHealthy
	return wasUnhealthy
}

// RecordFailure counts one failed session. Returns true when the chain
// transitioned to unhealthy on this call.
func (h *SyncHealth) RecordFailure() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	now := time.Now()
	h.consecutiveFailures++
	h.lastFailureAt = &now
	if h.consecutiveFailures >= h.unhealthyThreshold && h.status != HealthStatusUnhealthy {
		h.status = HealthStatusUnhealthy
		return true
	}
	return false
}

func (h *SyncHealth) Status() HealthStatus {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.status
}

// Snapshot returns the current supervision state (JSON-safe).
func (h *SyncHealth) Snapshot() HealthSnapshot {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return HealthSnapshot{
		Chain:               h.chain,
		Domain:              uint32(h.domain),
		Status:              string(h.status),
		ConsecutiveFailures: h.consecutiveFailures,
		LastSuccessAt:       h.lastSuccessAt,
		LastFailureAt:       h.lastFailureAt,
	}
}

// HealthSnapshot is a point-in-time view of one chain's sync health.
type HealthSnapshot struct {
	Chain               string     `json:"chain"`
	Domain              uint32     `json:"domain"`
	Status              string     `json:"status"`
	ConsecutiveFailures int        `json:"consecutive_failures"`
	LastSuccessAt       *time.Time `json:"last_success_at,omitempty"`
	LastFailureAt       *time.Time `json:"last_failure_at,omitempty"`
}
