package model

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
)

// LogMeta locates an event in the chain it was emitted on.
type LogMeta struct {
	BlockNumber uint64
	TxHash      common.Hash
	LogIndex    uint
}

// DispatchedMessage is one observed dispatch event. LeafIndex increases by
// one per dispatch on the origin chain and is immutable once observed.
type DispatchedMessage struct {
	LeafIndex uint32
	Message   Message
	Meta      LogMeta
}

func (d *DispatchedMessage) ID() common.Hash {
	return d.Message.ID()
}

// SyncWatermark records the last block durably indexed for one fact
// category on one chain. Scanning resumes from BlockHeight+1.
type SyncWatermark struct {
	ID          uuid.UUID    `db:"id"`
	Domain      Domain       `db:"domain"`
	Category    SyncCategory `db:"category"`
	BlockHeight uint64       `db:"block_height"`
	UpdatedAt   time.Time    `db:"updated_at"`
}
