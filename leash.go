package sapphire

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"golang.org/x/sync/errgroup"
)

const (
	// NonceRange is the headroom added to the observed pending nonce when
	// deriving a leash's nonce ceiling. Calls signed against the resulting
	// leash stay valid while up to NonceRange pending transactions land.
	NonceRange = 20

	// DefaultBlockRange is the default width of a leash's block validity
	// window when no override is supplied.
	DefaultBlockRange = 15

	// blockAnchorDepth is how far behind the chain head the leash's anchor
	// block is taken. Anchoring below the head tolerates minor reorgs of
	// the most recent blocks.
	blockAnchorDepth = 2
)

// Leash is the bounded validity window attached to a signed call. The
// runtime rejects a call once the signer's transaction count reaches Nonce
// or the chain advances past BlockNumber+BlockRange.
//
// A Leash is never mutated after construction; a stale leash is superseded
// by a fresh one.
type Leash struct {
	// Nonce is the exclusive upper bound on the signer's transaction count.
	Nonce uint64
	// BlockNumber is the height of the anchor block.
	BlockNumber uint64
	// BlockHash is the hash of the anchor block.
	BlockHash common.Hash
	// BlockRange is the number of blocks past BlockNumber for which the
	// leash remains valid.
	BlockRange uint64
}

// BuildLeash derives the validity window for a call.
//
// Explicit nonce or block overrides represent a deliberate deviation from
// the ambient account state, so supplying either clears the entire cache
// before anything else. Without overrides the pending nonce and the anchor
// block (the chain head minus blockAnchorDepth) are resolved concurrently,
// and a cached leash for the active chain is reused when it still has
// margin on both the nonce and block windows. A cache that fails the reuse
// check is cleared, not partially edited.
//
// BuildLeash fails with ErrNoChainSource when no block override is given
// and the signer has no attached chain source. Failed nonce or block
// queries are fatal for the current call; retrying is the caller's choice.
func BuildLeash(ctx context.Context, signer Signer, cache *Cache, opts ...CallOption) (Leash, error) {
	cfg := newCallConfig(opts)
	return buildLeash(ctx, signer, cache, cfg)
}

func buildLeash(ctx context.Context, signer Signer, cache *Cache, cfg *callConfig) (Leash, error) {
	overridden := cfg.nonce != nil || cfg.blockNumber != nil
	if overridden && cache != nil {
		cache.Clear()
	}

	src := signer.ChainSource()
	if cfg.blockNumber == nil && src == nil {
		return Leash{}, ErrNoChainSource
	}

	consultCache := !overridden && cache != nil

	var (
		pendingNonce uint64
		anchor       *types.Header
		chainID      uint64
	)
	g, gctx := errgroup.WithContext(ctx)
	if cfg.nonce == nil {
		g.Go(func() error {
			n, err := signer.PendingNonce(gctx)
			if err != nil {
				return &QueryError{Op: "pending nonce", Err: err}
			}
			pendingNonce = n
			return nil
		})
	}
	if cfg.blockNumber == nil {
		g.Go(func() error {
			h, err := fetchAnchorHeader(gctx, src)
			if err != nil {
				return err
			}
			anchor = h
			return nil
		})
	}
	if consultCache {
		if cfg.chainID != nil {
			chainID = cfg.chainID.Uint64()
		} else {
			g.Go(func() error {
				id, err := src.ChainID(gctx)
				if err != nil {
					return &QueryError{Op: "chain id", Err: err}
				}
				chainID = id.Uint64()
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return Leash{}, err
	}

	if consultCache {
		if cached, ok := cache.Leash(chainID); ok {
			if leashReusable(cached, pendingNonce, anchor.Number.Uint64()) {
				return cached, nil
			}
			// Stale for every future use, not just this one.
			cache.Clear()
		}
	}

	leash := Leash{
		Nonce:      pendingNonce + NonceRange,
		BlockRange: DefaultBlockRange,
	}
	if cfg.nonce != nil {
		leash.Nonce = *cfg.nonce
	}
	if cfg.blockNumber != nil {
		leash.BlockNumber = *cfg.blockNumber
		leash.BlockHash = cfg.blockHash
	} else {
		leash.BlockNumber = anchor.Number.Uint64()
		leash.BlockHash = anchor.Hash()
	}
	if cfg.blockRange != nil {
		leash.BlockRange = *cfg.blockRange
	}
	return leash, nil
}

// fetchAnchorHeader resolves the anchor block: the latest header, then the
// header blockAnchorDepth below it. Either fetch failing is fatal.
func fetchAnchorHeader(ctx context.Context, src ChainSource) (*types.Header, error) {
	latest, err := src.HeaderByNumber(ctx, nil)
	if err != nil {
		return nil, &QueryError{Op: "latest block", Err: err}
	}
	number := new(big.Int).Sub(latest.Number, big.NewInt(blockAnchorDepth))
	if number.Sign() < 0 {
		number.SetUint64(0)
	}
	anchor, err := src.HeaderByNumber(ctx, number)
	if err != nil {
		return nil, &QueryError{Op: "anchor block", Err: err}
	}
	return anchor, nil
}

// leashReusable reports whether a cached leash still has margin on both its
// nonce and block windows given freshly observed chain state. The block
// margin accounts for the anchor sitting blockAnchorDepth behind the head.
func leashReusable(cached Leash, pendingNonce, anchorNumber uint64) bool {
	return cached.Nonce > pendingNonce &&
		cached.BlockNumber+cached.BlockRange > anchorNumber+blockAnchorDepth
}
