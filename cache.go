package sapphire

import (
	"sync"

	"github.com/ethereum/go-ethereum/common"
)

// Cache memoizes signed-call state across calls: signatures keyed by
// (signer address, typed-data digest) and the last-issued leash per chain
// id. It is constructed by the caller and passed into BuildLeash and
// SignCall; there is no hidden process-wide instance.
//
// Entries are advisory. The cache has no automatic expiry: staleness is
// detected lazily by the reuse check in BuildLeash and answered with a
// full Clear, never a partial edit. A racing population between in-flight
// calls is harmless (last writer wins; a miss only costs an extra query).
type Cache struct {
	mu         sync.Mutex
	signatures map[common.Address]map[common.Hash][]byte
	leashes    map[uint64]Leash
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	c := &Cache{}
	c.reset()
	return c
}

func (c *Cache) reset() {
	c.signatures = make(map[common.Address]map[common.Hash][]byte)
	c.leashes = make(map[uint64]Leash)
}

// Add stores a signature under (signer, digest) and refreshes the chain's
// cached leash.
func (c *Cache) Add(signer common.Address, chainID uint64, digest common.Hash, signature []byte, leash Leash) {
	c.mu.Lock()
	defer c.mu.Unlock()
	byDigest := c.signatures[signer]
	if byDigest == nil {
		byDigest = make(map[common.Hash][]byte)
		c.signatures[signer] = byDigest
	}
	byDigest[digest] = append([]byte(nil), signature...)
	c.leashes[chainID] = leash
}

// Signature returns the cached signature for (signer, digest), if any.
func (c *Cache) Signature(signer common.Address, digest common.Hash) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	signature, ok := c.signatures[signer][digest]
	return signature, ok
}

// Leash returns the last-issued leash for the chain, if any.
func (c *Cache) Leash(chainID uint64) (Leash, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	leash, ok := c.leashes[chainID]
	return leash, ok
}

// Clear empties both maps. This is the only way entries leave the cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reset()
}
