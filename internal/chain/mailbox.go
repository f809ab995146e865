package chain

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/drewstone/hyperlane-monorepo/internal/domain/model"
)

// Chain identifies the deployment a handle is bound to. Both values are
// fixed at construction and never require chain communication.
type Chain interface {
	// ChainName returns the human-readable chain name (e.g., "ethereum").
	ChainName() string

	// LocalDomain returns the protocol domain id of the chain.
	LocalDomain() model.Domain
}

// Contract is a handle to one deployed contract on some chain.
type Contract interface {
	Chain

	// Address returns the contract address, left-padded to 256 bits.
	Address() common.Hash
}

// Mailbox is the capability set of a deployed mailbox contract. One
// implementation exists per chain family; everything above the binding is
// written against this interface. Errors returned by any method are
// chain-communication errors and are propagated to callers untouched.
type Mailbox interface {
	Contract

	// LocalDomainHash returns the 256-bit domain hash. Pure, no I/O.
	LocalDomainHash() common.Hash

	// Count returns the number of messages dispatched through the mailbox.
	Count(ctx context.Context) (uint32, error)

	// Delivered reports whether the message with the given id has been
	// processed on this chain.
	Delivered(ctx context.Context, id common.Hash) (bool, error)

	// LatestCheckpoint returns the mailbox checkpoint. A non-nil lag asks
	// for the checkpoint as of head minus lag blocks.
	LatestCheckpoint(ctx context.Context, lag *uint64) (model.Checkpoint, error)

	// DefaultISM returns the address of the default interchain security
	// module, left-padded to 256 bits.
	DefaultISM(ctx context.Context) (common.Hash, error)

	// Process submits a transaction delivering the message with its proof
	// metadata and waits for inclusion. A nil gasLimit lets the binding
	// estimate.
	Process(ctx context.Context, message *model.Message, metadata []byte, gasLimit *big.Int) (*model.TxOutcome, error)

	// ProcessEstimateCosts estimates the cost of processing the message
	// without submitting anything.
	ProcessEstimateCosts(ctx context.Context, message *model.Message, metadata []byte) (*model.TxCostEstimate, error)

	// ProcessCalldata returns the encoded calldata of a process call.
	// Pure local encoding, no I/O.
	ProcessCalldata(message *model.Message, metadata []byte) []byte
}

// MailboxIndexer fetches raw dispatch events for block ranges on the chain
// its mailbox lives on.
type MailboxIndexer interface {
	// FinalizedBlock returns the newest block safe to index.
	FinalizedBlock(ctx context.Context) (uint64, error)

	// FetchSortedMessages returns every dispatch in [from, to], ascending
	// by leaf index.
	FetchSortedMessages(ctx context.Context, from, to uint64) ([]model.DispatchedMessage, error)
}
