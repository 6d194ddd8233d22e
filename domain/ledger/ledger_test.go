package ledger

import (
	"context"
	"math/big"
	"testing"

	"github.com/kaspanet/blockminer/domain/consensus/datastructures/blockstore"
	"github.com/kaspanet/blockminer/domain/consensus/model/externalapi"
	"github.com/kaspanet/blockminer/domain/consensus/processes/blockminer"
	"github.com/kaspanet/blockminer/domain/consensus/utils/pow"
	"github.com/kaspanet/blockminer/infrastructure/db/database/ldb"
	"github.com/pkg/errors"
)

func easyTarget() *big.Int {
	target, _ := new(big.Int).SetString("ffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff", 16)
	return target
}

func mineOnTop(t *testing.T, l *Ledger, txID string) *externalapi.DomainBlock {
	tx := externalapi.NewDomainTransaction(1, 0,
		[]*externalapi.DomainTransactionInput{{
			TransactionID: txID,
			Prevout:       &externalapi.DomainPrevout{Value: 10},
		}},
		[]*externalapi.DomainTransactionOutput{{Value: 5}})
	template := externalapi.NewBlockTemplate(l.Tip().Hash, []*externalapi.DomainTransaction{tx})
	block, err := blockminer.New(blockminer.DefaultConfig()).Mine(context.Background(), template, easyTarget())
	if err != nil {
		t.Fatalf("Mine: %+v", err)
	}
	return block
}

func TestLedgerGenesisTip(t *testing.T) {
	l := New()
	tip := l.Tip()
	if tip.Hash != externalapi.GenesisHash || tip.PreviousHash != externalapi.GenesisHash {
		t.Fatalf("Tip: expected the genesis sentinel, got hash %s previous %s", tip.Hash, tip.PreviousHash)
	}
	if l.Len() != 0 {
		t.Fatalf("Len: expected 0, got %d", l.Len())
	}
}

func TestLedgerGenesisTipIsNotShared(t *testing.T) {
	l := New()
	l.Tip().Hash = "altered"

	other := New()
	if other.Tip().Hash != externalapi.GenesisHash || l.Tip().Hash != externalapi.GenesisHash {
		t.Fatalf("Tip: altering a returned genesis tip changed later tips")
	}

	block := mineOnTop(t, other, "aa")
	err := other.Append(block)
	if err != nil {
		t.Fatalf("Append: %+v", err)
	}
}

func TestLedgerAppend(t *testing.T) {
	l := New()

	b1 := mineOnTop(t, l, "aa")
	err := l.Append(b1)
	if err != nil {
		t.Fatalf("Append b1: %+v", err)
	}
	if b1.PreviousHash != externalapi.GenesisHash {
		t.Fatalf("b1 should point at genesis, got %s", b1.PreviousHash)
	}

	b2 := mineOnTop(t, l, "bb")
	err = l.Append(b2)
	if err != nil {
		t.Fatalf("Append b2: %+v", err)
	}

	blocks := l.Blocks()
	if len(blocks) != 2 || blocks[0] != b1 || blocks[1] != b2 {
		t.Fatalf("Blocks: unexpected content")
	}
	if blocks[1].PreviousHash != blocks[0].Hash {
		t.Fatalf("b2 previous hash %s does not match b1 hash %s", blocks[1].PreviousHash, blocks[0].Hash)
	}
	if l.Tip() != b2 {
		t.Fatalf("Tip: expected b2")
	}
	for _, block := range blocks {
		if !pow.CheckProofOfWork(block, easyTarget()) {
			t.Fatalf("CheckProofOfWork failed for %s", block.Hash)
		}
	}

	// Mutating the returned slice must not affect the ledger
	blocks[0] = nil
	if l.Blocks()[0] != b1 {
		t.Fatalf("Blocks: returned slice aliases the ledger")
	}
}

func TestLedgerAppendRejections(t *testing.T) {
	l := New()
	b1 := mineOnTop(t, l, "aa")
	err := l.Append(b1)
	if err != nil {
		t.Fatalf("Append: %+v", err)
	}

	stale := &externalapi.DomainBlock{
		PreviousHash: externalapi.GenesisHash,
		MerkleRoot:   b1.MerkleRoot,
		Hash:         "1234",
	}
	err = l.Append(stale)
	if !errors.Is(err, ErrUnexpectedPreviousHash) {
		t.Fatalf("Append: expected ErrUnexpectedPreviousHash, got %+v", err)
	}

	unsealed := &externalapi.DomainBlock{PreviousHash: b1.Hash}
	err = l.Append(unsealed)
	if !errors.Is(err, ErrUnsealedBlock) {
		t.Fatalf("Append: expected ErrUnsealedBlock, got %+v", err)
	}

	if l.Len() != 1 {
		t.Fatalf("Len: rejected blocks must not be appended, got %d blocks", l.Len())
	}
}

func TestLedgerPersistence(t *testing.T) {
	path := t.TempDir()
	open := func() *Ledger {
		db, err := ldb.NewLevelDB(path)
		if err != nil {
			t.Fatalf("NewLevelDB: %+v", err)
		}
		store, err := blockstore.New(db, 10)
		if err != nil {
			t.Fatalf("blockstore.New: %+v", err)
		}
		l, err := NewWithBlockStore(store)
		if err != nil {
			t.Fatalf("NewWithBlockStore: %+v", err)
		}
		return l
	}

	l := open()
	b1 := mineOnTop(t, l, "aa")
	err := l.Append(b1)
	if err != nil {
		t.Fatalf("Append: %+v", err)
	}
	b2 := mineOnTop(t, l, "bb")
	err = l.Append(b2)
	if err != nil {
		t.Fatalf("Append: %+v", err)
	}
	err = l.Close()
	if err != nil {
		t.Fatalf("Close: %+v", err)
	}

	reopened := open()
	defer reopened.Close()
	if reopened.Len() != 2 {
		t.Fatalf("Len: expected 2 reloaded blocks, got %d", reopened.Len())
	}
	if reopened.Tip().Hash != b2.Hash {
		t.Fatalf("Tip: expected %s, got %s", b2.Hash, reopened.Tip().Hash)
	}

	b3 := mineOnTop(t, reopened, "cc")
	err = reopened.Append(b3)
	if err != nil {
		t.Fatalf("Append after reload: %+v", err)
	}
}
