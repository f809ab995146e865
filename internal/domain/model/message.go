package model

import (
	"encoding/binary"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// messageHeaderLen is the fixed prefix of an encoded message:
// version(1) + nonce(4) + origin(4) + sender(32) + destination(4) + recipient(32).
const messageHeaderLen = 77

// Message is a cross-chain message as dispatched through a mailbox.
// The nonce doubles as the per-origin leaf index in the dispatch tree.
type Message struct {
	Version     uint8
	Nonce       uint32
	Origin      Domain
	Sender      common.Hash
	Destination Domain
	Recipient   common.Hash
	Body        []byte
}

// Encode packs the message into its canonical wire layout. The layout is
// fixed big-endian and has no length prefixes; the body runs to the end.
func (m *Message) Encode() []byte {
	buf := make([]byte, 0, messageHeaderLen+len(m.Body))
	buf = append(buf, m.Version)
	buf = binary.BigEndian.AppendUint32(buf, m.Nonce)
	buf = binary.BigEndian.AppendUint32(buf, uint32(m.Origin))
	buf = append(buf, m.Sender.Bytes()...)
	buf = binary.BigEndian.AppendUint32(buf, uint32(m.Destination))
	buf = append(buf, m.Recipient.Bytes()...)
	buf = append(buf, m.Body...)
	return buf
}

// ID returns the Keccak-256 digest of the canonical encoding. It is the
// message's protocol-wide identity and what delivered() is keyed on.
func (m *Message) ID() common.Hash {
	return crypto.Keccak256Hash(m.Encode())
}

func DecodeMessage(raw []byte) (*Message, error) {
	if len(raw) < messageHeaderLen {
		return nil, fmt.Errorf("message too short: %d bytes, need at least %d", len(raw), messageHeaderLen)
	}
	m := &Message{
		Version:     raw[0],
		Nonce:       binary.BigEndian.Uint32(raw[1:5]),
		Origin:      Domain(binary.BigEndian.Uint32(raw[5:9])),
		Sender:      common.BytesToHash(raw[9:41]),
		Destination: Domain(binary.BigEndian.Uint32(raw[41:45])),
		Recipient:   common.BytesToHash(raw[45:77]),
	}
	if len(raw) > messageHeaderLen {
		m.Body = append([]byte(nil), raw[messageHeaderLen:]...)
	}
	return m, nil
}
