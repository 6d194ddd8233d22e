package ledger

import (
	"sync"

	"github.com/kaspanet/blockminer/domain/consensus/model"
	"github.com/kaspanet/blockminer/domain/consensus/model/externalapi"
	"github.com/pkg/errors"
)

var (
	// ErrUnsealedBlock indicates an attempt to append a block that was
	// never mined
	ErrUnsealedBlock = errors.New("block is not sealed")

	// ErrUnexpectedPreviousHash indicates an attempt to append a block that
	// does not point at the current tip
	ErrUnexpectedPreviousHash = errors.New("block does not point at the ledger tip")
)

// genesis returns the sentinel block Tip returns when the ledger is empty.
// A new one is built every time so callers can't alter the sentinel.
func genesis() *externalapi.DomainBlock {
	return &externalapi.DomainBlock{
		PreviousHash: externalapi.GenesisHash,
		Hash:         externalapi.GenesisHash,
	}
}

// Ledger is an append-only, hash-chained sequence of sealed blocks
type Ledger struct {
	mutex      sync.RWMutex
	blocks     []*externalapi.DomainBlock
	blockStore model.BlockStore
}

// New returns an empty in-memory ledger
func New() *Ledger {
	return &Ledger{}
}

// NewWithBlockStore returns a ledger that persists every appended block in
// blockStore. Blocks already in the store are loaded, and their chain
// linkage is verified before the ledger is returned.
func NewWithBlockStore(blockStore model.BlockStore) (*Ledger, error) {
	ledger := &Ledger{blockStore: blockStore}

	count, err := blockStore.Count()
	if err != nil {
		return nil, err
	}
	ledger.blocks = make([]*externalapi.DomainBlock, 0, count)
	for height := uint64(0); height < count; height++ {
		block, err := blockStore.Block(height)
		if err != nil {
			return nil, err
		}
		err = ledger.checkAppendable(block)
		if err != nil {
			return nil, errors.Wrapf(err, "stored block at height %d", height)
		}
		ledger.blocks = append(ledger.blocks, block)
	}
	if count > 0 {
		log.Infof("Loaded %d blocks from the block store. Tip: %s", count, ledger.tip().Hash)
	}
	return ledger, nil
}

// Append adds block at the top of the ledger. The block must be sealed and
// must point at the current tip.
func (l *Ledger) Append(block *externalapi.DomainBlock) error {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	err := l.checkAppendable(block)
	if err != nil {
		return err
	}

	if l.blockStore != nil {
		err := l.blockStore.StoreBlock(uint64(len(l.blocks)), block)
		if err != nil {
			return err
		}
	}
	l.blocks = append(l.blocks, block)
	log.Debugf("Appended block %s at height %d", block.Hash, len(l.blocks)-1)
	return nil
}

func (l *Ledger) checkAppendable(block *externalapi.DomainBlock) error {
	if !block.IsSealed() {
		return errors.WithStack(ErrUnsealedBlock)
	}
	tipHash := l.tip().Hash
	if block.PreviousHash != tipHash {
		return errors.Wrapf(ErrUnexpectedPreviousHash, "block %s points at %s but the tip is %s",
			block.Hash, block.PreviousHash, tipHash)
	}
	return nil
}

// Tip returns the last appended block, or the genesis sentinel when the
// ledger is empty
func (l *Ledger) Tip() *externalapi.DomainBlock {
	l.mutex.RLock()
	defer l.mutex.RUnlock()

	return l.tip()
}

func (l *Ledger) tip() *externalapi.DomainBlock {
	if len(l.blocks) == 0 {
		return genesis()
	}
	return l.blocks[len(l.blocks)-1]
}

// Blocks returns the blocks of the ledger in append order
func (l *Ledger) Blocks() []*externalapi.DomainBlock {
	l.mutex.RLock()
	defer l.mutex.RUnlock()

	blocks := make([]*externalapi.DomainBlock, len(l.blocks))
	copy(blocks, l.blocks)
	return blocks
}

// Len returns the number of blocks in the ledger
func (l *Ledger) Len() int {
	l.mutex.RLock()
	defer l.mutex.RUnlock()

	return len(l.blocks)
}

// Close closes the underlying block store, if any
func (l *Ledger) Close() error {
	if l.blockStore == nil {
		return nil
	}
	return l.blockStore.Close()
}
