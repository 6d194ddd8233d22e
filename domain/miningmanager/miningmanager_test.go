package miningmanager_test

import (
	"context"
	"fmt"
	"math/big"
	"testing"

	"github.com/kaspanet/blockminer/domain/consensus/model/externalapi"
	"github.com/kaspanet/blockminer/domain/consensus/processes/blockminer"
	"github.com/kaspanet/blockminer/domain/consensus/utils/constants"
	"github.com/kaspanet/blockminer/domain/consensus/utils/hashes"
	"github.com/kaspanet/blockminer/domain/consensus/utils/pow"
	"github.com/kaspanet/blockminer/domain/ledger"
	"github.com/kaspanet/blockminer/domain/miningmanager"
	"github.com/pkg/errors"
)

func easyTarget(t *testing.T) *big.Int {
	target, err := pow.ParseTarget("ffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff")
	if err != nil {
		t.Fatalf("ParseTarget: %+v", err)
	}
	return target
}

func createTransaction(i int) *externalapi.DomainTransaction {
	return externalapi.NewDomainTransaction(1, 0,
		[]*externalapi.DomainTransactionInput{{
			TransactionID: fmt.Sprintf("%064x", i),
			Prevout:       &externalapi.DomainPrevout{Value: 100},
		}},
		[]*externalapi.DomainTransactionOutput{{Value: 50}})
}

func newTestMiningManager(t *testing.T, config *miningmanager.Config) (miningmanager.MiningManager, *ledger.Ledger) {
	l := ledger.New()
	return miningmanager.NewFactory().NewMiningManager(l, config), l
}

func TestMineBlockEmptyMempool(t *testing.T) {
	miningManager, l := newTestMiningManager(t, miningmanager.DefaultConfig(easyTarget(t)))

	block, err := miningManager.MineBlock(context.Background())
	if err != nil {
		t.Fatalf("MineBlock: %+v", err)
	}
	if len(block.Transactions) != 0 {
		t.Fatalf("MineBlock: expected no transactions, got %d", len(block.Transactions))
	}
	if block.PreviousHash != externalapi.GenesisHash {
		t.Fatalf("MineBlock: expected the genesis previous hash, got %s", block.PreviousHash)
	}
	if block.MerkleRoot != hashes.HashString("") {
		t.Fatalf("MineBlock: expected the merkle root of no transactions, got %s", block.MerkleRoot)
	}
	if block.Nonce != 0 {
		t.Fatalf("MineBlock: expected nonce 0 with the maximal target, got %d", block.Nonce)
	}
	if l.Len() != 1 || l.Tip() != block {
		t.Fatalf("MineBlock: the mined block was not appended to the ledger")
	}
}

func TestMineBlockSelectsFirstTransactions(t *testing.T) {
	miningManager, l := newTestMiningManager(t, miningmanager.DefaultConfig(easyTarget(t)))

	transactions := make([]*externalapi.DomainTransaction, 15)
	for i := range transactions {
		transactions[i] = createTransaction(i)
		err := miningManager.ValidateAndInsertTransaction(transactions[i])
		if err != nil {
			t.Fatalf("ValidateAndInsertTransaction: %+v", err)
		}
	}

	first, err := miningManager.MineBlock(context.Background())
	if err != nil {
		t.Fatalf("MineBlock: %+v", err)
	}
	if len(first.Transactions) != constants.DefaultMaxBlockTransactions {
		t.Fatalf("MineBlock: expected %d transactions, got %d",
			constants.DefaultMaxBlockTransactions, len(first.Transactions))
	}
	for i, transaction := range first.Transactions {
		if transaction != transactions[i] {
			t.Fatalf("MineBlock: transaction %d is not the mempool's transaction %d", i, i)
		}
	}

	remaining := miningManager.AllTransactions()
	if len(remaining) != 5 {
		t.Fatalf("AllTransactions: expected 5 transactions left, got %d", len(remaining))
	}

	second, err := miningManager.MineBlock(context.Background())
	if err != nil {
		t.Fatalf("MineBlock: %+v", err)
	}
	if second.PreviousHash != first.Hash {
		t.Fatalf("MineBlock: second block points at %s instead of %s", second.PreviousHash, first.Hash)
	}
	if len(second.Transactions) != 5 || second.Transactions[0] != transactions[10] {
		t.Fatalf("MineBlock: the second block should hold the 5 remaining transactions")
	}
	if l.Len() != 2 {
		t.Fatalf("Len: expected 2 blocks, got %d", l.Len())
	}
}

func TestMineBlockDefaultDifficulty(t *testing.T) {
	target, err := pow.ParseTarget(constants.DefaultDifficulty)
	if err != nil {
		t.Fatalf("ParseTarget: %+v", err)
	}
	miningManager, _ := newTestMiningManager(t, miningmanager.DefaultConfig(target))
	err = miningManager.ValidateAndInsertTransaction(createTransaction(1))
	if err != nil {
		t.Fatalf("ValidateAndInsertTransaction: %+v", err)
	}

	block, err := miningManager.MineBlock(context.Background())
	if err != nil {
		t.Fatalf("MineBlock: %+v", err)
	}
	if !pow.CheckProofOfWork(block, target) {
		t.Fatalf("MineBlock: block %s does not satisfy the default difficulty", block.Hash)
	}
}

func TestMineBlockAborted(t *testing.T) {
	config := miningmanager.DefaultConfig(big.NewInt(0))
	config.BlockMiner.MaxAttempts = 10
	miningManager, l := newTestMiningManager(t, config)

	_, err := miningManager.MineBlock(context.Background())
	if !errors.Is(err, blockminer.ErrMiningAborted) {
		t.Fatalf("MineBlock: expected ErrMiningAborted, got %+v", err)
	}
	if l.Len() != 0 {
		t.Fatalf("MineBlock: an aborted search must not append a block")
	}
}

func TestRejectedCounts(t *testing.T) {
	miningManager, _ := newTestMiningManager(t, miningmanager.DefaultConfig(easyTarget(t)))

	badVersion := createTransaction(1)
	version := int64(3)
	badVersion.Version = &version
	noOutputs := createTransaction(2)
	noOutputs.Outputs = nil

	for _, transaction := range []*externalapi.DomainTransaction{badVersion, noOutputs, createTransaction(3)} {
		_ = miningManager.ValidateAndInsertTransaction(transaction)
	}

	counts := miningManager.RejectedCounts()
	if counts["ErrTransactionVersionIsUnknown"] != 1 || counts["ErrNoTxOutputs"] != 1 {
		t.Fatalf("RejectedCounts: unexpected counts %v", counts)
	}
	if len(miningManager.AllTransactions()) != 1 {
		t.Fatalf("AllTransactions: expected a single accepted transaction")
	}
}
