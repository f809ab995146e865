package model

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// TxOutcome is the result of a submitted transaction after inclusion.
type TxOutcome struct {
	TxHash   common.Hash
	Executed bool
	GasUsed  *big.Int
	GasPrice *big.Int
}

// TxCostEstimate is a pre-submission estimate, not a quote.
type TxCostEstimate struct {
	GasLimit *big.Int
	GasPrice *big.Int
}

// IndexSettings is the read-only input to a sync session.
type IndexSettings struct {
	FromBlock uint64
	ChunkSize uint32
}

const DefaultChunkSize = 1999

func (s IndexSettings) WithDefaults() IndexSettings {
	if s.ChunkSize == 0 {
		s.ChunkSize = DefaultChunkSize
	}
	return s
}
