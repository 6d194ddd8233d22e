package blocklrucache

import (
	"testing"

	"github.com/kaspanet/blockminer/domain/consensus/model/externalapi"
)

func TestLRUCache(t *testing.T) {
	cache := New(2)
	blocks := []*externalapi.DomainBlock{{Hash: "a"}, {Hash: "b"}, {Hash: "c"}}
	for height, block := range blocks {
		cache.Add(uint64(height), block)
	}

	if cache.Len() != 2 {
		t.Fatalf("Len: expected 2 cached blocks, got %d", cache.Len())
	}
	block, ok := cache.Get(2)
	if !ok || block != blocks[2] {
		t.Fatalf("Get: the last added block must never be evicted")
	}
	if cache.Has(3) {
		t.Fatalf("Has: unexpectedly found a block that was never added")
	}
}

func TestLRUCacheZeroCapacity(t *testing.T) {
	cache := New(0)
	cache.Add(0, &externalapi.DomainBlock{Hash: "a"})
	if cache.Has(0) {
		t.Fatalf("Has: a zero capacity cache must stay empty")
	}
}
