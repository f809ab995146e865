package store

import (
	"context"
	"database/sql"

	"github.com/ethereum/go-ethereum/common"

	"github.com/drewstone/hyperlane-monorepo/internal/domain/model"
)

// TxBeginner abstracts the ability to begin a database transaction.
type TxBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

// MessageRepository provides access to dispatched messages captured from
// origin mailboxes. Lookups return (nil, nil) when no row matches.
type MessageRepository interface {
	BulkUpsertTx(ctx context.Context, tx *sql.Tx, msgs []*model.DispatchedMessage) error
	GetByID(ctx context.Context, origin model.Domain, id common.Hash) (*model.DispatchedMessage, error)
	GetByLeafIndex(ctx context.Context, origin model.Domain, leafIndex uint32) (*model.DispatchedMessage, error)
	ListByBlockRange(ctx context.Context, origin model.Domain, fromBlock, toBlock uint64) ([]model.DispatchedMessage, error)
	LatestLeafIndex(ctx context.Context, origin model.Domain) (*uint32, error)
	CountByOrigin(ctx context.Context, origin model.Domain) (int64, error)
}

// WatermarkRepository provides access to per-category sync watermarks.
// A watermark only ever moves forward; UpsertTx must run in the same
// transaction that persisted the facts up to blockHeight.
type WatermarkRepository interface {
	Get(ctx context.Context, domain model.Domain, category model.SyncCategory) (*model.SyncWatermark, error)
	List(ctx context.Context) ([]model.SyncWatermark, error)
	UpsertTx(ctx context.Context, tx *sql.Tx, domain model.Domain, category model.SyncCategory, blockHeight uint64) error
}

// CacheDB bundles the repositories backing one caching mailbox. All
// repositories share the TxBeginner's pool so a chunk of messages and its
// watermark advance commit atomically.
type CacheDB struct {
	TxBeginner
	Messages   MessageRepository
	Watermarks WatermarkRepository
}
