package postgres

import (
	"context"
	"fmt"

	"github.com/drewstone/hyperlane-monorepo/internal/domain/model"
)

// PartitionManager manages per-domain list partitions of the messages table,
// named messages_d<domain>. Keeping each origin chain in its own partition
// lets a hot chain be vacuumed or detached without touching the others.
// All operations are idempotent and safe to call concurrently.
type PartitionManager struct {
	db *DB
}

// NewPartitionManager returns a new PartitionManager that operates on the given DB.
func NewPartitionManager(db *DB) *PartitionManager {
	return &PartitionManager{db: db}
}

// EnsureDomainPartitions creates one messages partition per domain. It must
// run before any sync session writes rows for a domain: once rows for a
// domain land in messages_default, a dedicated partition for that value can
// no longer be attached.
func (pm *PartitionManager) EnsureDomainPartitions(ctx context.Context, domains []model.Domain) error {
	for _, domain := range domains {
		partName := fmt.Sprintf("messages_d%d", domain)

		// A DO block with exception handling keeps concurrent callers from
		// failing when the partition appears between the IF NOT EXISTS check
		// and the CREATE, which raises duplicate_object rather than
		// duplicate_table for overlapping partition bounds.
		query := fmt.Sprintf(`
			DO $$
			BEGIN
				CREATE TABLE IF NOT EXISTS %s PARTITION OF messages
					FOR VALUES IN (%d);
			EXCEPTION
				WHEN duplicate_table THEN NULL;
				WHEN duplicate_object THEN NULL;
			END $$;
		`, quoteIdent(partName), domain)

		if _, err := pm.db.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("partition manager: create partition %s: %w", partName, err)
		}
	}
	return nil
}

// quoteIdent quotes a SQL identifier to prevent injection. Partition names
// follow the pattern messages_d<domain> (alphanumeric + underscores only),
// so this only needs to handle standard double-quoting.
func quoteIdent(name string) string {
	escaped := ""
	for _, c := range name {
		if c == '"' {
			escaped += `""`
		} else {
			escaped += string(c)
		}
	}
	return `"` + escaped + `"`
}
