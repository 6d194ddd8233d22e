package blockstore

import (
	"encoding/binary"
	"sync"

	"github.com/kaspanet/blockminer/domain/consensus/model"
	"github.com/kaspanet/blockminer/domain/consensus/model/externalapi"
	"github.com/kaspanet/blockminer/domain/consensus/utils/blocklrucache"
	"github.com/kaspanet/blockminer/infrastructure/db/database"
	"github.com/pkg/errors"
)

var bucket = []byte("blocks-")
var countKey = []byte("blocks-count")

// blockStore represents a store of blocks
type blockStore struct {
	mutex     sync.Mutex
	dbContext model.DBManager
	cache     *blocklrucache.LRUCache
	count     uint64
}

// New instantiates a new BlockStore. Up to cacheSize blocks are kept in
// memory.
func New(dbContext model.DBManager, cacheSize int) (model.BlockStore, error) {
	blockStore := &blockStore{
		dbContext: dbContext,
		cache:     blocklrucache.New(cacheSize),
	}

	err := blockStore.initializeCount()
	if err != nil {
		return nil, err
	}

	return blockStore, nil
}

func (bs *blockStore) initializeCount() error {
	count := uint64(0)
	hasCountBytes, err := bs.dbContext.Has(countKey)
	if err != nil {
		return err
	}
	if hasCountBytes {
		countBytes, err := bs.dbContext.Get(countKey)
		if err != nil {
			return err
		}
		count, err = bs.deserializeBlockCount(countBytes)
		if err != nil {
			return err
		}
	}
	bs.count = count
	return nil
}

// StoreBlock writes the block at the given height. Blocks must be stored
// in height order, starting at zero.
func (bs *blockStore) StoreBlock(height uint64, block *externalapi.DomainBlock) error {
	bs.mutex.Lock()
	defer bs.mutex.Unlock()

	if height != bs.count {
		return errors.Errorf("cannot store block at height %d: "+
			"the store holds %d blocks", height, bs.count)
	}

	blockBytes, err := bs.serializeBlock(block)
	if err != nil {
		return err
	}
	err = bs.dbContext.PutBatch(map[string][]byte{
		string(bs.heightAsKey(height)): blockBytes,
		string(countKey):               bs.serializeBlockCount(height + 1),
	})
	if err != nil {
		return err
	}
	bs.cache.Add(height, block)
	bs.count = height + 1
	return nil
}

// Block gets the block at the given height
func (bs *blockStore) Block(height uint64) (*externalapi.DomainBlock, error) {
	bs.mutex.Lock()
	defer bs.mutex.Unlock()

	if block, ok := bs.cache.Get(height); ok {
		return block, nil
	}

	blockBytes, err := bs.dbContext.Get(bs.heightAsKey(height))
	if err != nil {
		if database.IsNotFoundError(err) {
			return nil, errors.Wrapf(err, "block at height %d", height)
		}
		return nil, err
	}
	block, err := bs.deserializeBlock(blockBytes)
	if err != nil {
		return nil, err
	}
	bs.cache.Add(height, block)
	return block, nil
}

// Count returns the number of blocks in the store
func (bs *blockStore) Count() (uint64, error) {
	bs.mutex.Lock()
	defer bs.mutex.Unlock()

	return bs.count, nil
}

func (bs *blockStore) Close() error {
	return bs.dbContext.Close()
}

func (bs *blockStore) heightAsKey(height uint64) []byte {
	key := make([]byte, len(bucket)+8)
	copy(key, bucket)
	binary.BigEndian.PutUint64(key[len(bucket):], height)
	return key
}

func (bs *blockStore) serializeBlockCount(count uint64) []byte {
	countBytes := make([]byte, 8)
	binary.LittleEndian.PutUint64(countBytes, count)
	return countBytes
}

func (bs *blockStore) deserializeBlockCount(countBytes []byte) (uint64, error) {
	if len(countBytes) != 8 {
		return 0, errors.Errorf("malformed block count of length %d", len(countBytes))
	}
	return binary.LittleEndian.Uint64(countBytes), nil
}
