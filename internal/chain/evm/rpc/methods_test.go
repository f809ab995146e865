package rpc

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rpcResult(t *testing.T, result string) func(*http.Request) (*http.Response, error) {
	t.Helper()
	return func(r *http.Request) (*http.Response, error) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		var req Request
		require.NoError(t, json.Unmarshal(body, &req))

		resp := Response{JSONRPC: "2.0", ID: req.ID, Result: json.RawMessage(result)}
		rawResp, err := json.Marshal(resp)
		require.NoError(t, err)
		return jsonHTTPResponse(http.StatusOK, string(rawResp)), nil
	}
}

func TestBlockNumber(t *testing.T) {
	client := newTestClient(rpcResult(t, `"0x112a880"`))

	blockNumber, err := client.BlockNumber(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(18000000), blockNumber)
}

func TestCallContract(t *testing.T) {
	var captured Request
	client := newTestClient(func(r *http.Request) (*http.Response, error) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(body, &captured))

		resp := Response{JSONRPC: "2.0", ID: captured.ID, Result: json.RawMessage(`"0x0000000000000000000000000000000000000000000000000000000000000007"`)}
		rawResp, err := json.Marshal(resp)
		require.NoError(t, err)
		return jsonHTTPResponse(http.StatusOK, string(rawResp)), nil
	})

	msg := CallMsg{To: "0xd4c1905bb1d26bc93dac913e13cacc278cebb61969", Data: "0x06661abd"}
	data, err := client.CallContract(context.Background(), msg, "latest")
	require.NoError(t, err)

	require.Len(t, data, 32)
	assert.Equal(t, byte(7), data[31])

	require.Equal(t, "eth_call", captured.Method)
	require.Len(t, captured.Params, 2)
	assert.Equal(t, "latest", captured.Params[1])
}

func TestGetLogs(t *testing.T) {
	logsJSON := `[
		{
			"address": "0x35231d4c2d8b8adcb5617a638a0c4548684c7c70",
			"topics": ["0x769f711d20c679153d382254f59892613b58a97cc876b249134ac25c80f9c814"],
			"data": "0x0001",
			"blockNumber": "0x10",
			"transactionHash": "0xabc0000000000000000000000000000000000000000000000000000000000001",
			"logIndex": "0x2",
			"removed": false
		}
	]`
	client := newTestClient(rpcResult(t, logsJSON))

	logs, err := client.GetLogs(context.Background(), LogFilter{
		FromBlock: "0x1",
		ToBlock:   "0x20",
		Address:   "0x35231d4c2d8b8adcb5617a638a0c4548684c7c70",
	})
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "0x10", logs[0].BlockNumber)
	assert.Equal(t, "0x2", logs[0].LogIndex)
	assert.False(t, logs[0].Removed)
}

func TestEstimateGas(t *testing.T) {
	client := newTestClient(rpcResult(t, `"0x5208"`))

	gas, err := client.EstimateGas(context.Background(), CallMsg{To: "0x01"})
	require.NoError(t, err)
	assert.Equal(t, "21000", gas.String())
}

func TestGasPrice(t *testing.T) {
	client := newTestClient(rpcResult(t, `"0x3b9aca00"`))

	price, err := client.GasPrice(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "1000000000", price.String())
}

func TestSendTransaction(t *testing.T) {
	client := newTestClient(rpcResult(t, `"0xdeadbeef00000000000000000000000000000000000000000000000000000001"`))

	hash, err := client.SendTransaction(context.Background(), CallMsg{
		From: "0xaa",
		To:   "0xbb",
		Data: "0x00",
	})
	require.NoError(t, err)
	assert.Equal(t, "0xdeadbeef00000000000000000000000000000000000000000000000000000001", hash)
}

func TestGetTransactionReceipt(t *testing.T) {
	receiptJSON := `{
		"transactionHash": "0xabc0000000000000000000000000000000000000000000000000000000000001",
		"blockNumber": "0x10",
		"status": "0x1",
		"gasUsed": "0x5208",
		"effectiveGasPrice": "0x3b9aca00",
		"logs": []
	}`
	client := newTestClient(rpcResult(t, receiptJSON))

	receipt, err := client.GetTransactionReceipt(context.Background(), "0xabc0000000000000000000000000000000000000000000000000000000000001")
	require.NoError(t, err)
	require.NotNil(t, receipt)
	assert.Equal(t, "0x1", receipt.Status)
	assert.Equal(t, "0x5208", receipt.GasUsed)
}

func TestGetTransactionReceipt_Pending(t *testing.T) {
	client := newTestClient(rpcResult(t, `null`))

	receipt, err := client.GetTransactionReceipt(context.Background(), "0xabc0000000000000000000000000000000000000000000000000000000000002")
	require.NoError(t, err)
	assert.Nil(t, receipt)
}
