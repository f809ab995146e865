package postgres

import (
	"fmt"
	"sync"

	"github.com/drewstone/hyperlane-monorepo/internal/domain/model"
)

// PoolRegistry maintains per-domain DB connection pools and falls back to a
// default pool when no domain-specific override is registered. Chains with
// heavy dispatch volume can be isolated onto their own database this way.
type PoolRegistry struct {
	mu        sync.RWMutex
	defaultDB *DB
	pools     map[model.Domain]*DB
}

// NewPoolRegistry creates a PoolRegistry with the given default DB. The
// default DB serves every domain that has not been explicitly registered.
func NewPoolRegistry(defaultDB *DB) *PoolRegistry {
	return &PoolRegistry{
		defaultDB: defaultDB,
		pools:     make(map[model.Domain]*DB),
	}
}

// Register associates a dedicated DB connection pool with the given domain.
// It overwrites any previously registered pool for the same domain; the
// caller is responsible for closing the replaced pool if needed.
func (r *PoolRegistry) Register(domain model.Domain, db *DB) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pools[domain] = db
}

// Get returns the DB pool for the given domain, or the default DB when no
// domain-specific pool has been registered.
func (r *PoolRegistry) Get(domain model.Domain) *DB {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if db, ok := r.pools[domain]; ok {
		return db
	}
	return r.defaultDB
}

// Close closes all domain-specific pools registered via Register. It does
// NOT close the default DB, whose lifecycle belongs to the caller. The first
// error encountered is returned, but every pool is still closed.
func (r *PoolRegistry) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var firstErr error
	for domain, db := range r.pools {
		if err := db.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("close pool %s: %w", domain, err)
		}
	}
	// Clear the map so double-close is harmless.
	r.pools = make(map[model.Domain]*DB)
	return firstErr
}
