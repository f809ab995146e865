package evm

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

const mailboxABIJSON = `[
	{"type":"function","name":"count","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint32"}]},
	{"type":"function","name":"delivered","stateMutability":"view","inputs":[{"name":"_id","type":"bytes32"}],"outputs":[{"name":"","type":"bool"}]},
	{"type":"function","name":"latestCheckpoint","stateMutability":"view","inputs":[],"outputs":[{"name":"root","type":"bytes32"},{"name":"index","type":"uint32"}]},
	{"type":"function","name":"defaultIsm","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"address"}]},
	{"type":"function","name":"process","stateMutability":"nonpayable","inputs":[{"name":"_metadata","type":"bytes"},{"name":"_message","type":"bytes"}],"outputs":[]},
	{"type":"event","name":"Dispatch","anonymous":false,"inputs":[{"name":"sender","type":"address","indexed":true},{"name":"destination","type":"uint32","indexed":true},{"name":"recipient","type":"bytes32","indexed":true},{"name":"message","type":"bytes","indexed":false}]}
]`

var (
	mailboxABI    abi.ABI
	dispatchTopic common.Hash
)

func init() {
	parsed, err := abi.JSON(strings.NewReader(mailboxABIJSON))
	if err != nil {
		panic("evm: parse mailbox abi: " + err.Error())
	}
	mailboxABI = parsed
	dispatchTopic = mailboxABI.Events["Dispatch"].ID
}
