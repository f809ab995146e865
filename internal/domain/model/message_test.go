package model

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testMessage() *Message {
	return &Message{
		Version:     3,
		Nonce:       1829,
		Origin:      1,
		Sender:      common.HexToHash("0x00000000000000000000000028bca718f8c22dd08f8b9e6f6e0c5af3ef4b9b45"),
		Destination: 42161,
		Recipient:   common.HexToHash("0x000000000000000000000000c2e0f1ec8d5f6a3b1b2d9c4e0a7f5b8d3e6c1a90"),
		Body:        []byte("hello from ethereum"),
	}
}

func TestMessageEncodeLayout(t *testing.T) {
	m := testMessage()
	raw := m.Encode()

	require.Len(t, raw, messageHeaderLen+len(m.Body))
	assert.Equal(t, byte(3), raw[0])
	assert.Equal(t, []byte{0x00, 0x00, 0x07, 0x25}, raw[1:5])
	assert.Equal(t, []byte{0x00, 0x00, 0x00, 0x01}, raw[5:9])
	assert.Equal(t, m.Sender.Bytes(), raw[9:41])
	assert.Equal(t, []byte{0x00, 0x00, 0xa4, 0xb1}, raw[41:45])
	assert.Equal(t, m.Recipient.Bytes(), raw[45:77])
	assert.Equal(t, []byte("hello from ethereum"), raw[77:])
}

func TestMessageEncodeDecodeRoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		msg  *Message
	}{
		{"with body", testMessage()},
		{"empty body", &Message{Version: 3, Nonce: 0, Origin: 137, Destination: 1}},
		{"max nonce", &Message{Version: 3, Nonce: 1<<32 - 1, Origin: 1, Destination: 10, Body: []byte{0xff}}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			decoded, err := DecodeMessage(tt.msg.Encode())
			require.NoError(t, err)
			assert.Equal(t, tt.msg, decoded)
		})
	}
}

func TestDecodeMessageTooShort(t *testing.T) {
	_, err := DecodeMessage(make([]byte, messageHeaderLen-1))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "too short")
}

func TestMessageIDDeterministic(t *testing.T) {
	a := testMessage()
	b := testMessage()

	assert.Equal(t, a.ID(), b.ID())

	b.Nonce++
	assert.NotEqual(t, a.ID(), b.ID())
}

func TestDispatchedMessageID(t *testing.T) {
	d := &DispatchedMessage{LeafIndex: 1829, Message: *testMessage()}
	assert.Equal(t, d.Message.ID(), d.ID())
}

func TestDomainString(t *testing.T) {
	assert.Equal(t, "ethereum", Domain(1).String())
	assert.Equal(t, "arbitrum", Domain(42161).String())
	assert.Equal(t, "777", Domain(777).String())
}

func TestIndexSettingsWithDefaults(t *testing.T) {
	s := IndexSettings{FromBlock: 100}.WithDefaults()
	assert.Equal(t, uint32(DefaultChunkSize), s.ChunkSize)
	assert.Equal(t, uint64(100), s.FromBlock)

	s = IndexSettings{FromBlock: 5, ChunkSize: 64}.WithDefaults()
	assert.Equal(t, uint32(64), s.ChunkSize)
}
