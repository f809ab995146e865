package evm

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/drewstone/hyperlane-monorepo/internal/chain"
	"github.com/drewstone/hyperlane-monorepo/internal/chain/evm/rpc"
	"github.com/drewstone/hyperlane-monorepo/internal/domain/model"
)

// Indexer fetches Dispatch events from one mailbox deployment. Finality is
// approximated as head minus a configured confirmation depth, which also
// covers chains without a finalized block tag.
type Indexer struct {
	client        rpc.RPCClient
	name          string
	domain        model.Domain
	address       common.Address
	confirmations uint64
	logger        *slog.Logger
}

var _ chain.MailboxIndexer = (*Indexer)(nil)

type IndexerConfig struct {
	Name          string
	Domain        model.Domain
	Address       common.Address
	Confirmations uint64
}

func NewIndexer(cfg IndexerConfig, client rpc.RPCClient, logger *slog.Logger) *Indexer {
	return &Indexer{
		client:        client,
		name:          cfg.Name,
		domain:        cfg.Domain,
		address:       cfg.Address,
		confirmations: cfg.Confirmations,
		logger:        logger.With("component", "evm_indexer", "chain", cfg.Name),
	}
}

func (i *Indexer) FinalizedBlock(ctx context.Context) (uint64, error) {
	head, err := i.client.BlockNumber(ctx)
	if err != nil {
		return 0, fmt.Errorf("finalized block: %w", err)
	}
	if head < i.confirmations {
		return 0, nil
	}
	return head - i.confirmations, nil
}

func (i *Indexer) FetchSortedMessages(ctx context.Context, from, to uint64) ([]model.DispatchedMessage, error) {
	logs, err := i.client.GetLogs(ctx, rpc.LogFilter{
		FromBlock: rpc.FormatHexUint64(from),
		ToBlock:   rpc.FormatHexUint64(to),
		Address:   i.address.Hex(),
		Topics:    []string{dispatchTopic.Hex()},
	})
	if err != nil {
		return nil, fmt.Errorf("fetch dispatches %d-%d: %w", from, to, err)
	}

	messages := make([]model.DispatchedMessage, 0, len(logs))
	for _, log := range logs {
		if log.Removed {
			continue
		}
		dispatched, err := i.decodeDispatch(log)
		if err != nil {
			return nil, fmt.Errorf("decode dispatch at block %s index %s: %w", log.BlockNumber, log.LogIndex, err)
		}
		messages = append(messages, *dispatched)
	}

	sort.Slice(messages, func(a, b int) bool {
		return messages[a].LeafIndex < messages[b].LeafIndex
	})

	return messages, nil
}

func (i *Indexer) decodeDispatch(log *rpc.Log) (*model.DispatchedMessage, error) {
	data, err := hexutil.Decode(log.Data)
	if err != nil {
		return nil, fmt.Errorf("decode log data: %w", err)
	}

	values, err := mailboxABI.Unpack("Dispatch", data)
	if err != nil {
		return nil, fmt.Errorf("unpack dispatch event: %w", err)
	}
	raw, ok := values[0].([]byte)
	if !ok {
		return nil, fmt.Errorf("unexpected message payload type %T", values[0])
	}

	message, err := model.DecodeMessage(raw)
	if err != nil {
		return nil, err
	}

	blockNumber, err := rpc.ParseHexUint64(log.BlockNumber)
	if err != nil {
		return nil, fmt.Errorf("parse block number: %w", err)
	}
	logIndex, err := rpc.ParseHexUint64(log.LogIndex)
	if err != nil {
		return nil, fmt.Errorf("parse log index: %w", err)
	}

	return &model.DispatchedMessage{
		LeafIndex: message.Nonce,
		Message:   *message,
		Meta: model.LogMeta{
			BlockNumber: blockNumber,
			TxHash:      common.HexToHash(log.TransactionHash),
			LogIndex:    uint(logIndex),
		},
	}, nil
}
