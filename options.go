package sapphire

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// callConfig holds per-call overrides for leash construction and signing.
type callConfig struct {
	nonce       *uint64
	blockNumber *uint64
	blockHash   common.Hash
	blockRange  *uint64
	chainID     *big.Int
}

// CallOption configures a single call-construction operation.
type CallOption func(*callConfig)

func newCallConfig(opts []CallOption) *callConfig {
	cfg := &callConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// WithLeashNonce overrides the leash's nonce ceiling. Supplying it clears
// the cache before the leash is built.
func WithLeashNonce(nonce uint64) CallOption {
	return func(c *callConfig) {
		c.nonce = &nonce
	}
}

// WithLeashBlock overrides the leash's anchor block. Supplying it clears
// the cache before the leash is built.
func WithLeashBlock(number uint64, hash common.Hash) CallOption {
	return func(c *callConfig) {
		c.blockNumber = &number
		c.blockHash = hash
	}
}

// WithLeashBlockRange overrides the width of the leash's block validity
// window. Default: DefaultBlockRange.
func WithLeashBlockRange(blocks uint64) CallOption {
	return func(c *callConfig) {
		c.blockRange = &blocks
	}
}

// WithChainID overrides the chain id used for the signing domain, for
// signers without an attached chain source.
func WithChainID(id *big.Int) CallOption {
	return func(c *callConfig) {
		c.chainID = id
	}
}
