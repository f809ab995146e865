package model

import "github.com/ethereum/go-ethereum/common"

// Checkpoint commits to every message dispatched through a mailbox up to
// and including Index. Index only ever moves forward.
type Checkpoint struct {
	MailboxAddress common.Hash
	MailboxDomain  Domain
	Root           common.Hash
	Index          uint32
}
