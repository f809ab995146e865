package model

import (
	"encoding/binary"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// DomainHash uniquely identifies one mailbox deployment. It salts the
// domain and mailbox address so signatures over checkpoints can never be
// replayed against another chain or another mailbox.
func DomainHash(domain Domain, mailbox common.Hash) common.Hash {
	buf := make([]byte, 0, 4+common.HashLength+9)
	buf = binary.BigEndian.AppendUint32(buf, uint32(domain))
	buf = append(buf, mailbox.Bytes()...)
	buf = append(buf, []byte("HYPERLANE")...)
	return crypto.Keccak256Hash(buf)
}
