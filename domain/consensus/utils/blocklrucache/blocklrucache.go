package blocklrucache

import (
	"github.com/kaspanet/blockminer/domain/consensus/model/externalapi"
)

// LRUCache is a cache for sealed blocks indexed by their height. Once full,
// it evicts an arbitrary entry on every addition.
type LRUCache struct {
	cache    map[uint64]*externalapi.DomainBlock
	capacity int
}

// New creates a new LRUCache
func New(capacity int) *LRUCache {
	return &LRUCache{
		cache:    make(map[uint64]*externalapi.DomainBlock, capacity+1),
		capacity: capacity,
	}
}

// Add adds a block to the LRUCache
func (c *LRUCache) Add(height uint64, block *externalapi.DomainBlock) {
	if c.capacity <= 0 {
		return
	}
	c.cache[height] = block

	if len(c.cache) > c.capacity {
		c.evictRandom(height)
	}
}

// Get returns the block at the given height, or (nil, false) otherwise
func (c *LRUCache) Get(height uint64) (*externalapi.DomainBlock, bool) {
	block, ok := c.cache[height]
	return block, ok
}

// Has returns whether the LRUCache contains the given height
func (c *LRUCache) Has(height uint64) bool {
	_, ok := c.cache[height]
	return ok
}

// Len returns the number of cached blocks
func (c *LRUCache) Len() int {
	return len(c.cache)
}

// evictRandom removes any entry other than keep
func (c *LRUCache) evictRandom(keep uint64) {
	for height := range c.cache {
		if height != keep {
			delete(c.cache, height)
			return
		}
	}
}
