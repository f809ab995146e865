package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"

	"github.com/drewstone/hyperlane-monorepo/internal/domain/model"
)

type MessageRepo struct {
	db *DB
}

func NewMessageRepo(db *DB) *MessageRepo {
	return &MessageRepo{db: db}
}

const messageColumns = `leaf_index, version, nonce, sender, destination_domain, recipient, body, block_number, tx_hash, log_index`

func (r *MessageRepo) BulkUpsertTx(ctx context.Context, tx *sql.Tx, msgs []*model.DispatchedMessage) error {
	if len(msgs) == 0 {
		return nil
	}

	var sb strings.Builder
	sb.WriteString(`
		INSERT INTO messages (
			origin_domain, message_id, leaf_index, version, nonce,
			sender, destination_domain, recipient, body,
			block_number, tx_hash, log_index
		) VALUES `)

	args := make([]interface{}, 0, len(msgs)*12)
	for i, m := range msgs {
		if i > 0 {
			sb.WriteString(", ")
		}
		base := i * 12
		fmt.Fprintf(&sb, "($%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d)",
			base+1, base+2, base+3, base+4, base+5, base+6,
			base+7, base+8, base+9, base+10, base+11, base+12)

		body := m.Message.Body
		if body == nil {
			body = []byte{}
		}
		args = append(args,
			int64(m.Message.Origin), m.ID().Hex(), int64(m.LeafIndex),
			int16(m.Message.Version), int64(m.Message.Nonce),
			m.Message.Sender.Hex(), int64(m.Message.Destination), m.Message.Recipient.Hex(), body,
			int64(m.Meta.BlockNumber), m.Meta.TxHash.Hex(), int64(m.Meta.LogIndex),
		)
	}

	// Re-observing a message after a reorg refreshes its location only; the
	// content columns are immutable because message_id commits to them.
	sb.WriteString(`
		ON CONFLICT (origin_domain, message_id)
		DO UPDATE SET block_number = EXCLUDED.block_number,
		              tx_hash = EXCLUDED.tx_hash,
		              log_index = EXCLUDED.log_index,
		              updated_at = now()
	`)

	if _, err := tx.ExecContext(ctx, sb.String(), args...); err != nil {
		return fmt.Errorf("bulk upsert messages: %w", err)
	}
	return nil
}

func (r *MessageRepo) GetByID(ctx context.Context, origin model.Domain, id common.Hash) (*model.DispatchedMessage, error) {
	ctx, cancel := withTimeout(ctx, DefaultQueryTimeout)
	defer cancel()

	row := r.db.QueryRowContext(ctx, `
		SELECT `+messageColumns+`
		FROM messages
		WHERE origin_domain = $1 AND message_id = $2
	`, int64(origin), id.Hex())

	msg, err := scanDispatched(row, origin)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get message %s: %w", id.Hex(), err)
	}
	return msg, nil
}

func (r *MessageRepo) GetByLeafIndex(ctx context.Context, origin model.Domain, leafIndex uint32) (*model.DispatchedMessage, error) {
	ctx, cancel := withTimeout(ctx, DefaultQueryTimeout)
	defer cancel()

	row := r.db.QueryRowContext(ctx, `
		SELECT `+messageColumns+`
		FROM messages
		WHERE origin_domain = $1 AND leaf_index = $2
	`, int64(origin), int64(leafIndex))

	msg, err := scanDispatched(row, origin)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get message at leaf %d: %w", leafIndex, err)
	}
	return msg, nil
}

// ListByBlockRange returns every cached message dispatched in [fromBlock,
// toBlock], ascending by leaf index. Used by the replay verifier to diff the
// cache against a fresh chain scan.
func (r *MessageRepo) ListByBlockRange(ctx context.Context, origin model.Domain, fromBlock, toBlock uint64) ([]model.DispatchedMessage, error) {
	ctx, cancel := withTimeout(ctx, LongQueryTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+messageColumns+`
		FROM messages
		WHERE origin_domain = $1 AND block_number BETWEEN $2 AND $3
		ORDER BY leaf_index ASC
	`, int64(origin), int64(fromBlock), int64(toBlock))
	if err != nil {
		return nil, fmt.Errorf("list messages %d-%d: %w", fromBlock, toBlock, err)
	}
	defer rows.Close()

	var msgs []model.DispatchedMessage
	for rows.Next() {
		msg, err := scanDispatched(rows, origin)
		if err != nil {
			return nil, fmt.Errorf("list messages %d-%d: %w", fromBlock, toBlock, err)
		}
		msgs = append(msgs, *msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list messages %d-%d: %w", fromBlock, toBlock, err)
	}
	return msgs, nil
}

func (r *MessageRepo) LatestLeafIndex(ctx context.Context, origin model.Domain) (*uint32, error) {
	ctx, cancel := withTimeout(ctx, DefaultQueryTimeout)
	defer cancel()

	var latest sql.NullInt64
	err := r.db.QueryRowContext(ctx, `
		SELECT MAX(leaf_index) FROM messages WHERE origin_domain = $1
	`, int64(origin)).Scan(&latest)
	if err != nil {
		return nil, fmt.Errorf("latest leaf index: %w", err)
	}
	if !latest.Valid {
		return nil, nil
	}
	leaf := uint32(latest.Int64)
	return &leaf, nil
}

func (r *MessageRepo) CountByOrigin(ctx context.Context, origin model.Domain) (int64, error) {
	ctx, cancel := withTimeout(ctx, DefaultQueryTimeout)
	defer cancel()

	var count int64
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM messages WHERE origin_domain = $1
	`, int64(origin)).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count messages: %w", err)
	}
	return count, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanDispatched(row rowScanner, origin model.Domain) (*model.DispatchedMessage, error) {
	var (
		leafIndex   int64
		version     int16
		nonce       int64
		sender      string
		destination int64
		recipient   string
		body        []byte
		blockNumber int64
		txHash      string
		logIndex    int64
	)
	if err := row.Scan(
		&leafIndex, &version, &nonce, &sender, &destination,
		&recipient, &body, &blockNumber, &txHash, &logIndex,
	); err != nil {
		return nil, err
	}

	return &model.DispatchedMessage{
		LeafIndex: uint32(leafIndex),
		Message: model.Message{
			Version:     uint8(version),
			Nonce:       uint32(nonce),
			Origin:      origin,
			Sender:      common.HexToHash(sender),
			Destination: model.Domain(destination),
			Recipient:   common.HexToHash(recipient),
			Body:        body,
		},
		Meta: model.LogMeta{
			BlockNumber: uint64(blockNumber),
			TxHash:      common.HexToHash(txHash),
			LogIndex:    uint(logIndex),
		},
	}, nil
}
