package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/drewstone/hyperlane-monorepo/internal/domain/model"
)

type WatermarkRepo struct {
	db *DB
}

func NewWatermarkRepo(db *DB) *WatermarkRepo {
	return &WatermarkRepo{db: db}
}

func (r *WatermarkRepo) Get(ctx context.Context, domain model.Domain, category model.SyncCategory) (*model.SyncWatermark, error) {
	ctx, cancel := withTimeout(ctx, DefaultQueryTimeout)
	defer cancel()

	var w model.SyncWatermark
	err := r.db.QueryRowContext(ctx, `
		SELECT id, domain, category, block_height, updated_at
		FROM sync_watermarks
		WHERE domain = $1 AND category = $2
	`, int64(domain), category).Scan(
		&w.ID, &w.Domain, &w.Category, &w.BlockHeight, &w.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get watermark %s/%s: %w", domain, category, err)
	}
	return &w, nil
}

func (r *WatermarkRepo) List(ctx context.Context) ([]model.SyncWatermark, error) {
	ctx, cancel := withTimeout(ctx, DefaultQueryTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, domain, category, block_height, updated_at
		FROM sync_watermarks
		ORDER BY domain, category
	`)
	if err != nil {
		return nil, fmt.Errorf("list watermarks: %w", err)
	}
	defer rows.Close()

	var watermarks []model.SyncWatermark
	for rows.Next() {
		var w model.SyncWatermark
		if err := rows.Scan(&w.ID, &w.Domain, &w.Category, &w.BlockHeight, &w.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan watermark: %w", err)
		}
		watermarks = append(watermarks, w)
	}
	return watermarks, rows.Err()
}

func (r *WatermarkRepo) UpsertTx(ctx context.Context, tx *sql.Tx, domain model.Domain, category model.SyncCategory, blockHeight uint64) error {
	// GREATEST keeps the watermark monotonic when overlapping sync sessions
	// race: a session that fell behind can never move it backwards.
	_, err := tx.ExecContext(ctx, `
		INSERT INTO sync_watermarks (domain, category, block_height)
		VALUES ($1, $2, $3)
		ON CONFLICT (domain, category) DO UPDATE SET
			block_height = GREATEST(sync_watermarks.block_height, EXCLUDED.block_height),
			updated_at = now()
	`, int64(domain), category, int64(blockHeight))
	if err != nil {
		return fmt.Errorf("upsert watermark %s/%s: %w", domain, category, err)
	}
	return nil
}
