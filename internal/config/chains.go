package config

import (
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/common"
	"gopkg.in/yaml.v3"

	"github.com/drewstone/hyperlane-monorepo/internal/domain/model"
)

const defaultConfirmations = 12

// ChainConfig describes one origin chain the agent fronts.
type ChainConfig struct {
	Name           string `yaml:"name"`
	Domain         uint32 `yaml:"domain"`
	RPCURL         string `yaml:"rpc_url"`
	MailboxAddress string `yaml:"mailbox_address"`
	Confirmations  uint64 `yaml:"confirmations"`
	ChunkSize      uint32 `yaml:"chunk_size"`
	FromBlock      uint64 `yaml:"from_block"`
	// SenderAddress is the node-managed account process transactions are
	// submitted from. Empty leaves process disabled for this chain.
	SenderAddress string `yaml:"sender_address"`
	// DatabaseURL points this chain's writes at a dedicated pool. Empty
	// means the shared default pool.
	DatabaseURL string `yaml:"database_url"`
}

type chainsFile struct {
	Chains []ChainConfig `yaml:"chains"`
}

// LoadChains reads the chain roster from a YAML file. Environment variables
// in the file (e.g. ${ETH_RPC_URL}) are expanded before parsing so API keys
// can stay out of the file itself.
func LoadChains(path string) ([]ChainConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read chains config: %w", err)
	}

	var f chainsFile
	expanded := os.ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expanded), &f); err != nil {
		return nil, fmt.Errorf("parse chains config: %w", err)
	}

	for i := range f.Chains {
		if f.Chains[i].Confirmations == 0 {
			f.Chains[i].Confirmations = defaultConfirmations
		}
		if f.Chains[i].ChunkSize == 0 {
			f.Chains[i].ChunkSize = model.DefaultChunkSize
		}
	}

	if err := validateChains(f.Chains); err != nil {
		return nil, err
	}
	return f.Chains, nil
}

func validateChains(chains []ChainConfig) error {
	if len(chains) == 0 {
		return fmt.Errorf("chains config lists no chains")
	}

	names := make(map[string]bool, len(chains))
	domains := make(map[uint32]bool, len(chains))
	for _, c := range chains {
		if c.Name == "" {
			return fmt.Errorf("chain with domain %d has no name", c.Domain)
		}
		if names[c.Name] {
			return fmt.Errorf("duplicate chain name %q", c.Name)
		}
		names[c.Name] = true

		if c.Domain == 0 {
			return fmt.Errorf("chain %q has no domain", c.Name)
		}
		if domains[c.Domain] {
			return fmt.Errorf("duplicate domain %d", c.Domain)
		}
		domains[c.Domain] = true

		if c.RPCURL == "" {
			return fmt.Errorf("chain %q has no rpc_url", c.Name)
		}
		if !common.IsHexAddress(c.MailboxAddress) {
			return fmt.Errorf("chain %q mailbox_address %q is not a hex address", c.Name, c.MailboxAddress)
		}
		if c.SenderAddress != "" && !common.IsHexAddress(c.SenderAddress) {
			return fmt.Errorf("chain %q sender_address %q is not a hex address", c.Name, c.SenderAddress)
		}
	}
	return nil
}

// IndexSettings converts the chain's scan bounds into sync session input.
func (c ChainConfig) IndexSettings() model.IndexSettings {
	return model.IndexSettings{FromBlock: c.FromBlock, ChunkSize: c.ChunkSize}
}

// Mailbox returns the parsed mailbox contract address.
func (c ChainConfig) Mailbox() common.Address {
	return common.HexToAddress(c.MailboxAddress)
}

// Sender returns the parsed sender account, or the zero address when none
// is configured.
func (c ChainConfig) Sender() common.Address {
	if c.SenderAddress == "" {
		return common.Address{}
	}
	return common.HexToAddress(c.SenderAddress)
}
