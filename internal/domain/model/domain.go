package model

import "strconv"

// Domain is the protocol-level identifier of a chain. It is assigned by the
// protocol, not by the chain itself, and never changes for a deployed mailbox.
type Domain uint32

var domainNames = map[Domain]string{
	1:     "ethereum",
	10:    "optimism",
	137:   "polygon",
	8453:  "base",
	42161: "arbitrum",
	43114: "avalanche",
	56:    "bsc",
}

func (d Domain) String() string {
	if name, ok := domainNames[d]; ok {
		return name
	}
	return strconv.FormatUint(uint64(d), 10)
}

type SyncCategory string

const (
	SyncCategoryDispatchedMessages SyncCategory = "dispatched_messages"
)

func (c SyncCategory) String() string {
	return string(c)
}
