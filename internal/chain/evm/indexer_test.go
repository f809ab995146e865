package evm

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drewstone/hyperlane-monorepo/internal/chain/evm/rpc"
	"github.com/drewstone/hyperlane-monorepo/internal/domain/model"
)

func newTestIndexer(client rpc.RPCClient, confirmations uint64) *Indexer {
	return NewIndexer(IndexerConfig{
		Name:          "ethereum",
		Domain:        1,
		Address:       testMailboxAddr,
		Confirmations: confirmations,
	}, client, slog.Default())
}

func dispatchLogData(t *testing.T, message *model.Message) string {
	t.Helper()
	data, err := mailboxABI.Events["Dispatch"].Inputs.NonIndexed().Pack(message.Encode())
	require.NoError(t, err)
	return hexutil.Encode(data)
}

func dispatchLog(t *testing.T, message *model.Message, blockNumber uint64, logIndex uint64) *rpc.Log {
	t.Helper()
	return &rpc.Log{
		Address:         testMailboxAddr.Hex(),
		Topics:          []string{dispatchTopic.Hex()},
		Data:            dispatchLogData(t, message),
		BlockNumber:     rpc.FormatHexUint64(blockNumber),
		TransactionHash: "0xabc0000000000000000000000000000000000000000000000000000000000001",
		LogIndex:        rpc.FormatHexUint64(logIndex),
	}
}

func TestIndexer_FinalizedBlock(t *testing.T) {
	fake := &fakeRPCClient{head: 100}
	indexer := newTestIndexer(fake, 12)

	finalized, err := indexer.FinalizedBlock(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(88), finalized)
}

func TestIndexer_FinalizedBlockBelowConfirmationDepth(t *testing.T) {
	fake := &fakeRPCClient{head: 5}
	indexer := newTestIndexer(fake, 12)

	finalized, err := indexer.FinalizedBlock(context.Background())
	require.NoError(t, err)
	assert.Zero(t, finalized)
}

func TestIndexer_FinalizedBlockError(t *testing.T) {
	fake := &fakeRPCClient{headErr: errors.New("connection refused")}
	indexer := newTestIndexer(fake, 12)

	_, err := indexer.FinalizedBlock(context.Background())
	require.Error(t, err)
}

func TestIndexer_FetchSortedMessages(t *testing.T) {
	second := &model.Message{Version: 3, Nonce: 2, Origin: 1, Destination: 137, Body: []byte("b")}
	first := &model.Message{Version: 3, Nonce: 1, Origin: 1, Destination: 137, Body: []byte("a")}

	var captured rpc.LogFilter
	fake := &fakeRPCClient{
		getLogsFn: func(filter rpc.LogFilter) ([]*rpc.Log, error) {
			captured = filter
			// Out of leaf order on purpose.
			return []*rpc.Log{
				dispatchLog(t, second, 22, 3),
				dispatchLog(t, first, 21, 1),
			}, nil
		},
	}
	indexer := newTestIndexer(fake, 0)

	messages, err := indexer.FetchSortedMessages(context.Background(), 20, 30)
	require.NoError(t, err)
	require.Len(t, messages, 2)

	assert.Equal(t, uint32(1), messages[0].LeafIndex)
	assert.Equal(t, uint32(2), messages[1].LeafIndex)
	assert.Equal(t, first.ID(), messages[0].ID())
	assert.Equal(t, uint64(21), messages[0].Meta.BlockNumber)
	assert.Equal(t, uint(1), messages[0].Meta.LogIndex)

	assert.Equal(t, "0x14", captured.FromBlock)
	assert.Equal(t, "0x1e", captured.ToBlock)
	assert.Equal(t, testMailboxAddr.Hex(), captured.Address)
	require.Len(t, captured.Topics, 1)
	assert.Equal(t, dispatchTopic.Hex(), captured.Topics[0])
}

func TestIndexer_FetchSortedMessagesSkipsRemovedLogs(t *testing.T) {
	kept := &model.Message{Version: 3, Nonce: 4, Origin: 1, Destination: 137}
	reorged := &model.Message{Version: 3, Nonce: 5, Origin: 1, Destination: 137}

	removedLog := dispatchLog(t, reorged, 23, 0)
	removedLog.Removed = true

	fake := &fakeRPCClient{
		getLogsFn: func(filter rpc.LogFilter) ([]*rpc.Log, error) {
			return []*rpc.Log{dispatchLog(t, kept, 22, 0), removedLog}, nil
		},
	}
	indexer := newTestIndexer(fake, 0)

	messages, err := indexer.FetchSortedMessages(context.Background(), 20, 30)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, uint32(4), messages[0].LeafIndex)
}

func TestIndexer_FetchSortedMessagesDecodeError(t *testing.T) {
	badLog := &rpc.Log{
		Address:     testMailboxAddr.Hex(),
		Topics:      []string{dispatchTopic.Hex()},
		Data:        "0x00ff",
		BlockNumber: "0x16",
		LogIndex:    "0x0",
	}
	fake := &fakeRPCClient{
		getLogsFn: func(filter rpc.LogFilter) ([]*rpc.Log, error) {
			return []*rpc.Log{badLog}, nil
		},
	}
	indexer := newTestIndexer(fake, 0)

	_, err := indexer.FetchSortedMessages(context.Background(), 20, 30)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode dispatch")
}

func TestIndexer_FetchSortedMessagesFetchError(t *testing.T) {
	fake := &fakeRPCClient{
		getLogsFn: func(filter rpc.LogFilter) ([]*rpc.Log, error) {
			return nil, errors.New("query returned more than 10000 results")
		},
	}
	indexer := newTestIndexer(fake, 0)

	_, err := indexer.FetchSortedMessages(context.Background(), 20, 30)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fetch dispatches 20-30")
}
