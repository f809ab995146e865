package rpc

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

func (c *Client) BlockNumber(ctx context.Context) (uint64, error) {
	result, err := c.call(ctx, "eth_blockNumber", []interface{}{})
	if err != nil {
		return 0, fmt.Errorf("eth_blockNumber: %w", err)
	}

	var hexNum string
	if err := json.Unmarshal(result, &hexNum); err != nil {
		return 0, fmt.Errorf("unmarshal block number: %w", err)
	}

	blockNumber, err := ParseHexUint64(hexNum)
	if err != nil {
		return 0, fmt.Errorf("parse block number: %w", err)
	}
	return blockNumber, nil
}

// CallContract executes a read-only contract call at the given block tag
// ("latest", "finalized", or a hex block number) and returns the raw
// return data.
func (c *Client) CallContract(ctx context.Context, msg CallMsg, blockTag string) ([]byte, error) {
	result, err := c.call(ctx, "eth_call", []interface{}{msg, blockTag})
	if err != nil {
		return nil, fmt.Errorf("eth_call(%s): %w", msg.To, err)
	}

	var hexData string
	if err := json.Unmarshal(result, &hexData); err != nil {
		return nil, fmt.Errorf("unmarshal call result: %w", err)
	}

	data, err := hexutil.Decode(hexData)
	if err != nil {
		return nil, fmt.Errorf("decode call result: %w", err)
	}
	return data, nil
}

func (c *Client) GetLogs(ctx context.Context, filter LogFilter) ([]*Log, error) {
	result, err := c.call(ctx, "eth_getLogs", []interface{}{filter})
	if err != nil {
		return nil, fmt.Errorf("eth_getLogs: %w", err)
	}

	var logs []*Log
	if err := json.Unmarshal(result, &logs); err != nil {
		return nil, fmt.Errorf("unmarshal logs: %w", err)
	}

	return logs, nil
}

func (c *Client) EstimateGas(ctx context.Context, msg CallMsg) (*big.Int, error) {
	result, err := c.call(ctx, "eth_estimateGas", []interface{}{msg})
	if err != nil {
		return nil, fmt.Errorf("eth_estimateGas: %w", err)
	}

	var hexGas string
	if err := json.Unmarshal(result, &hexGas); err != nil {
		return nil, fmt.Errorf("unmarshal gas estimate: %w", err)
	}

	gas, err := ParseHexBig(hexGas)
	if err != nil {
		return nil, fmt.Errorf("parse gas estimate: %w", err)
	}
	return gas, nil
}

func (c *Client) GasPrice(ctx context.Context) (*big.Int, error) {
	result, err := c.call(ctx, "eth_gasPrice", []interface{}{})
	if err != nil {
		return nil, fmt.Errorf("eth_gasPrice: %w", err)
	}

	var hexPrice string
	if err := json.Unmarshal(result, &hexPrice); err != nil {
		return nil, fmt.Errorf("unmarshal gas price: %w", err)
	}

	price, err := ParseHexBig(hexPrice)
	if err != nil {
		return nil, fmt.Errorf("parse gas price: %w", err)
	}
	return price, nil
}

// SendTransaction submits a transaction signed by the node-managed account
// in msg.From and returns the transaction hash.
func (c *Client) SendTransaction(ctx context.Context, msg CallMsg) (string, error) {
	result, err := c.call(ctx, "eth_sendTransaction", []interface{}{msg})
	if err != nil {
		return "", fmt.Errorf("eth_sendTransaction: %w", err)
	}

	var txHash string
	if err := json.Unmarshal(result, &txHash); err != nil {
		return "", fmt.Errorf("unmarshal tx hash: %w", err)
	}
	return txHash, nil
}

func (c *Client) GetTransactionReceipt(ctx context.Context, hash string) (*TransactionReceipt, error) {
	result, err := c.call(ctx, "eth_getTransactionReceipt", []interface{}{hash})
	if err != nil {
		return nil, fmt.Errorf("eth_getTransactionReceipt(%s): %w", hash, err)
	}
	if string(result) == "null" {
		return nil, nil
	}

	var receipt TransactionReceipt
	if err := json.Unmarshal(result, &receipt); err != nil {
		return nil, fmt.Errorf("unmarshal transaction receipt: %w", err)
	}

	return &receipt, nil
}

func ParseHexUint64(value string) (uint64, error) {
	raw := strings.TrimSpace(value)
	if raw == "" {
		return 0, fmt.Errorf("empty hex value")
	}
	raw = strings.TrimPrefix(strings.ToLower(raw), "0x")
	if raw == "" {
		return 0, nil
	}
	parsed, err := strconv.ParseUint(raw, 16, 64)
	if err != nil {
		return 0, fmt.Errorf("parse hex %q: %w", value, err)
	}
	return parsed, nil
}

func ParseHexBig(value string) (*big.Int, error) {
	raw := strings.TrimSpace(value)
	if raw == "" {
		return nil, fmt.Errorf("empty hex value")
	}
	raw = strings.TrimPrefix(strings.ToLower(raw), "0x")
	if raw == "" {
		return big.NewInt(0), nil
	}
	parsed, ok := new(big.Int).SetString(raw, 16)
	if !ok {
		return nil, fmt.Errorf("parse hex %q", value)
	}
	return parsed, nil
}

func FormatHexUint64(value uint64) string {
	return fmt.Sprintf("0x%x", value)
}
