package miningmanager

import (
	"context"
	"math/big"
	"time"

	"github.com/kaspanet/blockminer/domain/consensus/model"
	"github.com/kaspanet/blockminer/domain/consensus/model/externalapi"
	"github.com/kaspanet/blockminer/domain/ledger"
	miningmanagermodel "github.com/kaspanet/blockminer/domain/miningmanager/model"
)

// MiningManager creates block templates for mining as well as maintaining
// known transactions that have no yet been added to any block
type MiningManager interface {
	GetBlockTemplate() *externalapi.BlockTemplate
	MineBlock(ctx context.Context) (*externalapi.DomainBlock, error)
	ValidateAndInsertTransaction(transaction *externalapi.DomainTransaction) error
	AllTransactions() []*externalapi.DomainTransaction
	RejectedCounts() map[string]int
	HashesTried() uint64
}

type miningManager struct {
	mempool              miningmanagermodel.Mempool
	blockTemplateBuilder miningmanagermodel.BlockTemplateBuilder
	blockMiner           model.BlockMiner
	ledger               *ledger.Ledger
	target               *big.Int
}

// GetBlockTemplate creates a block template on top of the ledger tip
func (mm *miningManager) GetBlockTemplate() *externalapi.BlockTemplate {
	return mm.blockTemplateBuilder.GetBlockTemplate(mm.ledger.Tip().Hash)
}

// MineBlock mines a block on top of the ledger tip out of the mempool's
// candidate transactions, appends it to the ledger and removes its
// transactions from the mempool
func (mm *miningManager) MineBlock(ctx context.Context) (*externalapi.DomainBlock, error) {
	template := mm.GetBlockTemplate()
	log.Debugf("Mining a block with %d transactions on top of %s",
		len(template.Transactions), template.PreviousHash)

	start := time.Now()
	hashesTriedBefore := mm.blockMiner.HashesTried()
	block, err := mm.blockMiner.Mine(ctx, template, mm.target)
	prometheusHashesTried.Add(float64(mm.blockMiner.HashesTried() - hashesTriedBefore))
	if err != nil {
		return nil, err
	}
	prometheusMiningDuration.Observe(time.Since(start).Seconds())

	err = mm.ledger.Append(block)
	if err != nil {
		return nil, err
	}
	mm.mempool.HandleNewBlock(block)
	prometheusMinedBlocks.Inc()
	prometheusMinedTransactions.Add(float64(len(block.Transactions)))

	log.Infof("Mined block %s at height %d with %d transactions",
		block.Hash, mm.ledger.Len()-1, len(block.Transactions))
	return block, nil
}

// ValidateAndInsertTransaction validates the given transaction, and
// adds it to the set of known transactions that have not yet been
// added to any block
func (mm *miningManager) ValidateAndInsertTransaction(transaction *externalapi.DomainTransaction) error {
	return mm.mempool.ValidateAndInsertTransaction(transaction)
}

// AllTransactions returns the transactions of the mempool in arrival order
func (mm *miningManager) AllTransactions() []*externalapi.DomainTransaction {
	return mm.mempool.Transactions()
}

// RejectedCounts returns the number of transactions rejected by the mempool
// per violated rule
func (mm *miningManager) RejectedCounts() map[string]int {
	return mm.mempool.RejectedCounts()
}

// HashesTried returns the number of nonces tried by the block miner so far
func (mm *miningManager) HashesTried() uint64 {
	return mm.blockMiner.HashesTried()
}
