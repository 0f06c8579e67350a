package config

import (
	"fmt"

	"github.com/Layr-Labs/zero-merkle-go/pkg/hasher"
	"github.com/Layr-Labs/zero-merkle-go/pkg/merkle"
)

// Environment variable names for the merkle demo tooling
const (
	EnvMerkleTreeHeight = "MERKLE_TREE_HEIGHT"
	EnvMerkleHasher     = "MERKLE_HASHER"
	EnvMerkleVerbose    = "MERKLE_VERBOSE"
)

// DefaultTreeHeight is the height used when none is configured. 32 levels
// (4 billion leaf slots) matches common on-chain deposit-tree sizing.
const DefaultTreeHeight = 32

// DemoConfig represents the configuration of the merkle demo commands
type DemoConfig struct {
	// Tree shape
	Height int `json:"height"`

	// Pair hasher name, as accepted by hasher.New
	Hasher string `json:"hasher"`

	// Operational settings
	Verbose bool `json:"verbose"`
}

// Validate validates the demo configuration
func (c *DemoConfig) Validate() error {
	if c.Height < 0 || c.Height > merkle.MaxHeight {
		return fmt.Errorf("tree height must be in [0, %d], got %d", merkle.MaxHeight, c.Height)
	}
	if c.Hasher == "" {
		return fmt.Errorf("hasher name cannot be empty")
	}
	if _, err := hasher.New(c.Hasher); err != nil {
		return err
	}
	return nil
}

// NewPairHasher constructs the configured pair hasher. The configuration must
// have been validated first.
func (c *DemoConfig) NewPairHasher() (hasher.PairHasher, error) {
	return hasher.New(c.Hasher)
}
