package blocktemplatebuilder

import (
	"github.com/kaspanet/blockminer/domain/consensus/model/externalapi"
	"github.com/kaspanet/blockminer/domain/miningmanager/model"
)

// blockTemplateBuilder creates block templates for a miner to consume
type blockTemplateBuilder struct {
	mempool              model.Mempool
	maxBlockTransactions int
}

// New creates a new blockTemplateBuilder
func New(mempool model.Mempool, maxBlockTransactions int) model.BlockTemplateBuilder {
	return &blockTemplateBuilder{
		mempool:              mempool,
		maxBlockTransactions: maxBlockTransactions,
	}
}

// GetBlockTemplate creates a block template on top of previousHash out of
// the transactions currently in the mempool
func (btb *blockTemplateBuilder) GetBlockTemplate(previousHash string) *externalapi.BlockTemplate {
	candidates := SelectCandidates(btb.mempool.Transactions(), btb.maxBlockTransactions)
	log.Debugf("Selected %d transactions for a block template on top of %s", len(candidates), previousHash)
	return externalapi.NewBlockTemplate(previousHash, candidates)
}

// SelectCandidates returns the first maxBlockTransactions transactions of
// pool, in pool order. There is no fee prioritisation.
func SelectCandidates(pool []*externalapi.DomainTransaction, maxBlockTransactions int) []*externalapi.DomainTransaction {
	if maxBlockTransactions < 0 {
		maxBlockTransactions = 0
	}
	if len(pool) > maxBlockTransactions {
		pool = pool[:maxBlockTransactions]
	}
	candidates := make([]*externalapi.DomainTransaction, len(pool))
	copy(candidates, pool)
	return candidates
}
