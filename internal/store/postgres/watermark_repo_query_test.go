package postgres

import (
	"context"
	"database/sql/driver"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drewstone/hyperlane-monorepo/internal/domain/model"
)

var watermarkQueryColumns = []string{"id", "domain", "category", "block_height", "updated_at"}

func TestWatermarkRepoGet_NotFound(t *testing.T) {
	db := openFakeDB(t, nil, nil)
	repo := NewWatermarkRepo(db)

	w, err := repo.Get(context.Background(), 1, model.SyncCategoryDispatchedMessages)
	require.NoError(t, err)
	assert.Nil(t, w)
}

func TestWatermarkRepoGet_Found(t *testing.T) {
	id := uuid.New()
	updated := time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC)

	handler := func(query string, args []driver.Value) (driver.Rows, error) {
		if !strings.Contains(query, "FROM sync_watermarks") {
			return &emptyRows{}, nil
		}
		require.Len(t, args, 2)
		assert.Equal(t, int64(42161), args[0])
		assert.Equal(t, "dispatched_messages", args[1])

		return &dataRows{
			columns: watermarkQueryColumns,
			data: [][]driver.Value{
				{id.String(), int64(42161), "dispatched_messages", int64(19_000_500), updated},
			},
		}, nil
	}

	db := openFakeDB(t, handler, nil)
	repo := NewWatermarkRepo(db)

	w, err := repo.Get(context.Background(), 42161, model.SyncCategoryDispatchedMessages)
	require.NoError(t, err)
	require.NotNil(t, w)

	assert.Equal(t, id, w.ID)
	assert.Equal(t, model.Domain(42161), w.Domain)
	assert.Equal(t, model.SyncCategoryDispatchedMessages, w.Category)
	assert.Equal(t, uint64(19_000_500), w.BlockHeight)
	assert.Equal(t, updated, w.UpdatedAt)
}

func TestWatermarkRepoList(t *testing.T) {
	updated := time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC)

	handler := func(query string, _ []driver.Value) (driver.Rows, error) {
		if !strings.Contains(query, "FROM sync_watermarks") {
			return &emptyRows{}, nil
		}
		assert.Contains(t, query, "ORDER BY domain, category")
		return &dataRows{
			columns: watermarkQueryColumns,
			data: [][]driver.Value{
				{uuid.New().String(), int64(1), "dispatched_messages", int64(19_000_500), updated},
				{uuid.New().String(), int64(137), "dispatched_messages", int64(55_100_000), updated},
			},
		}, nil
	}

	db := openFakeDB(t, handler, nil)
	repo := NewWatermarkRepo(db)

	watermarks, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, watermarks, 2)
	assert.Equal(t, model.Domain(1), watermarks[0].Domain)
	assert.Equal(t, model.Domain(137), watermarks[1].Domain)
	assert.Equal(t, uint64(55_100_000), watermarks[1].BlockHeight)
}

func TestWatermarkRepoUpsertTx(t *testing.T) {
	var capturedQuery string
	var capturedArgs []driver.Value
	onExec := func(query string, args []driver.Value) (driver.Result, error) {
		if strings.Contains(query, "INSERT INTO sync_watermarks") {
			capturedQuery = query
			capturedArgs = args
		}
		return driver.RowsAffected(1), nil
	}

	db := openFakeDB(t, nil, onExec)
	repo := NewWatermarkRepo(db)

	tx, err := db.BeginTx(context.Background(), nil)
	require.NoError(t, err)
	defer tx.Rollback()

	err = repo.UpsertTx(context.Background(), tx, 1, model.SyncCategoryDispatchedMessages, 19_000_999)
	require.NoError(t, err)

	assert.Contains(t, capturedQuery, "ON CONFLICT (domain, category)")
	assert.Contains(t, capturedQuery, "GREATEST(sync_watermarks.block_height, EXCLUDED.block_height)",
		"a concurrent session that fell behind must never move the watermark backwards")

	require.Len(t, capturedArgs, 3)
	assert.Equal(t, int64(1), capturedArgs[0])
	assert.Equal(t, "dispatched_messages", capturedArgs[1])
	assert.Equal(t, int64(19_000_999), capturedArgs[2])
}
