package evm

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/drewstone/hyperlane-monorepo/internal/chain"
	"github.com/drewstone/hyperlane-monorepo/internal/chain/evm/rpc"
	"github.com/drewstone/hyperlane-monorepo/internal/domain/model"
)

// Mailbox is the EVM binding of the mailbox capability set. Reads go
// through eth_call; Process submits through a node-managed sender account
// and waits for the inclusion receipt.
type Mailbox struct {
	client  rpc.RPCClient
	name    string
	domain  model.Domain
	address common.Address
	sender  common.Address
	logger  *slog.Logger

	receiptPollInterval time.Duration
}

// MailboxConfig identifies one mailbox deployment. A zero Sender leaves
// the binding read-only: Process returns an error without touching the
// chain.
type MailboxConfig struct {
	Name    string
	Domain  model.Domain
	Address common.Address
	Sender  common.Address
}

var _ chain.Mailbox = (*Mailbox)(nil)

type MailboxOption func(*Mailbox)

func WithReceiptPollInterval(interval time.Duration) MailboxOption {
	return func(m *Mailbox) {
		m.receiptPollInterval = interval
	}
}

func NewMailbox(cfg MailboxConfig, client rpc.RPCClient, logger *slog.Logger, opts ...MailboxOption) *Mailbox {
	m := &Mailbox{
		client:              client,
		name:                cfg.Name,
		domain:              cfg.Domain,
		address:             cfg.Address,
		sender:              cfg.Sender,
		logger:              logger.With("component", "evm_mailbox", "chain", cfg.Name),
		receiptPollInterval: 2 * time.Second,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Mailbox) ChainName() string {
	return m.name
}

func (m *Mailbox) LocalDomain() model.Domain {
	return m.domain
}

func (m *Mailbox) Address() common.Hash {
	return common.BytesToHash(m.address.Bytes())
}

func (m *Mailbox) LocalDomainHash() common.Hash {
	return model.DomainHash(m.domain, m.Address())
}

func (m *Mailbox) Count(ctx context.Context) (uint32, error) {
	values, err := m.viewCall(ctx, "latest", "count")
	if err != nil {
		return 0, err
	}
	count, ok := values[0].(uint32)
	if !ok {
		return 0, fmt.Errorf("count: unexpected return type %T", values[0])
	}
	return count, nil
}

func (m *Mailbox) Delivered(ctx context.Context, id common.Hash) (bool, error) {
	values, err := m.viewCall(ctx, "latest", "delivered", id)
	if err != nil {
		return false, err
	}
	delivered, ok := values[0].(bool)
	if !ok {
		return false, fmt.Errorf("delivered: unexpected return type %T", values[0])
	}
	return delivered, nil
}

func (m *Mailbox) LatestCheckpoint(ctx context.Context, lag *uint64) (model.Checkpoint, error) {
	blockTag := "latest"
	if lag != nil && *lag > 0 {
		head, err := m.client.BlockNumber(ctx)
		if err != nil {
			return model.Checkpoint{}, fmt.Errorf("resolve lagged block: %w", err)
		}
		if head < *lag {
			return model.Checkpoint{}, fmt.Errorf("lag %d exceeds chain height %d", *lag, head)
		}
		blockTag = rpc.FormatHexUint64(head - *lag)
	}

	values, err := m.viewCall(ctx, blockTag, "latestCheckpoint")
	if err != nil {
		return model.Checkpoint{}, err
	}
	root, ok := values[0].([32]byte)
	if !ok {
		return model.Checkpoint{}, fmt.Errorf("latestCheckpoint: unexpected root type %T", values[0])
	}
	index, ok := values[1].(uint32)
	if !ok {
		return model.Checkpoint{}, fmt.Errorf("latestCheckpoint: unexpected index type %T", values[1])
	}

	return model.Checkpoint{
		MailboxAddress: m.Address(),
		MailboxDomain:  m.domain,
		Root:           common.Hash(root),
		Index:          index,
	}, nil
}

func (m *Mailbox) DefaultISM(ctx context.Context) (common.Hash, error) {
	values, err := m.viewCall(ctx, "latest", "defaultIsm")
	if err != nil {
		return common.Hash{}, err
	}
	ism, ok := values[0].(common.Address)
	if !ok {
		return common.Hash{}, fmt.Errorf("defaultIsm: unexpected return type %T", values[0])
	}
	return common.BytesToHash(ism.Bytes()), nil
}

func (m *Mailbox) Process(ctx context.Context, message *model.Message, metadata []byte, gasLimit *big.Int) (*model.TxOutcome, error) {
	if m.sender == (common.Address{}) {
		return nil, fmt.Errorf("process: no sender account configured for %s", m.name)
	}

	msg := rpc.CallMsg{
		From: m.sender.Hex(),
		To:   m.address.Hex(),
		Data: hexutil.Encode(m.ProcessCalldata(message, metadata)),
	}
	if gasLimit != nil {
		msg.Gas = hexutil.EncodeBig(gasLimit)
	} else {
		estimate, err := m.client.EstimateGas(ctx, msg)
		if err != nil {
			return nil, fmt.Errorf("process: %w", err)
		}
		msg.Gas = hexutil.EncodeBig(estimate)
	}

	txHash, err := m.client.SendTransaction(ctx, msg)
	if err != nil {
		return nil, fmt.Errorf("process: %w", err)
	}
	m.logger.Info("process transaction submitted", "tx_hash", txHash, "message_id", message.ID().Hex())

	receipt, err := m.waitReceipt(ctx, txHash)
	if err != nil {
		return nil, fmt.Errorf("process: await receipt %s: %w", txHash, err)
	}

	gasUsed, err := rpc.ParseHexBig(receipt.GasUsed)
	if err != nil {
		return nil, fmt.Errorf("process: parse gas used: %w", err)
	}
	gasPrice, err := rpc.ParseHexBig(receipt.EffectiveGasPrice)
	if err != nil {
		return nil, fmt.Errorf("process: parse gas price: %w", err)
	}

	return &model.TxOutcome{
		TxHash:   common.HexToHash(receipt.TransactionHash),
		Executed: receipt.Status == "0x1",
		GasUsed:  gasUsed,
		GasPrice: gasPrice,
	}, nil
}

func (m *Mailbox) ProcessEstimateCosts(ctx context.Context, message *model.Message, metadata []byte) (*model.TxCostEstimate, error) {
	msg := rpc.CallMsg{
		To:   m.address.Hex(),
		Data: hexutil.Encode(m.ProcessCalldata(message, metadata)),
	}
	if m.sender != (common.Address{}) {
		msg.From = m.sender.Hex()
	}

	gasLimit, err := m.client.EstimateGas(ctx, msg)
	if err != nil {
		return nil, fmt.Errorf("estimate process: %w", err)
	}
	gasPrice, err := m.client.GasPrice(ctx)
	if err != nil {
		return nil, fmt.Errorf("estimate process: %w", err)
	}

	return &model.TxCostEstimate{
		GasLimit: gasLimit,
		GasPrice: gasPrice,
	}, nil
}

func (m *Mailbox) ProcessCalldata(message *model.Message, metadata []byte) []byte {
	// Pack cannot fail here: both arguments are plain byte slices.
	data, _ := mailboxABI.Pack("process", metadata, message.Encode())
	return data
}

func (m *Mailbox) viewCall(ctx context.Context, blockTag, method string, args ...interface{}) ([]interface{}, error) {
	data, err := mailboxABI.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("pack %s: %w", method, err)
	}

	ret, err := m.client.CallContract(ctx, rpc.CallMsg{
		To:   m.address.Hex(),
		Data: hexutil.Encode(data),
	}, blockTag)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", method, err)
	}

	values, err := mailboxABI.Unpack(method, ret)
	if err != nil {
		return nil, fmt.Errorf("unpack %s: %w", method, err)
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("unpack %s: empty return", method)
	}
	return values, nil
}

func (m *Mailbox) waitReceipt(ctx context.Context, txHash string) (*rpc.TransactionReceipt, error) {
	ticker := time.NewTicker(m.receiptPollInterval)
	defer ticker.Stop()

	for {
		receipt, err := m.client.GetTransactionReceipt(ctx, txHash)
		if err != nil {
			return nil, err
		}
		if receipt != nil {
			return receipt, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}
