package miningmanager

import (
	"math/big"

	"github.com/kaspanet/blockminer/domain/consensus/model"
	"github.com/kaspanet/blockminer/domain/consensus/model/externalapi"
	"github.com/kaspanet/blockminer/domain/consensus/processes/blockminer"
	"github.com/kaspanet/blockminer/domain/consensus/processes/transactionvalidator"
	"github.com/kaspanet/blockminer/domain/consensus/utils/constants"
	"github.com/kaspanet/blockminer/domain/ledger"
	"github.com/kaspanet/blockminer/domain/miningmanager/blocktemplatebuilder"
	"github.com/kaspanet/blockminer/domain/miningmanager/mempool"
)

// Config holds the parameters of a MiningManager
type Config struct {
	Target               *big.Int
	MaxBlockTransactions int
	Mempool              *mempool.Config
	BlockMiner           *blockminer.Config

	// WitnessValidator validates the witness data of transactions. A nil
	// WitnessValidator accepts any witness data.
	WitnessValidator model.WitnessValidator

	// UTXOSet is the snapshot transactions are validated against
	UTXOSet externalapi.ReadOnlyUTXOSet
}

// DefaultConfig returns a Config that mines below target
func DefaultConfig(target *big.Int) *Config {
	return &Config{
		Target:               target,
		MaxBlockTransactions: constants.DefaultMaxBlockTransactions,
		Mempool:              mempool.DefaultConfig(),
		BlockMiner:           blockminer.DefaultConfig(),
		UTXOSet:              externalapi.NewUTXOSet(),
	}
}

// Factory instantiates new mining managers
type Factory interface {
	NewMiningManager(ledger *ledger.Ledger, config *Config) MiningManager
}

type factory struct{}

// NewMiningManager instantiate a new mining manager that mines on top of
// the given ledger
func (f *factory) NewMiningManager(ledger *ledger.Ledger, config *Config) MiningManager {
	transactionValidator := transactionvalidator.New(config.Mempool.MaximumTransactionSize, config.WitnessValidator)
	mp := mempool.New(config.Mempool, transactionValidator, config.UTXOSet)
	blockTemplateBuilder := blocktemplatebuilder.New(mp, config.MaxBlockTransactions)

	return &miningManager{
		mempool:              mp,
		blockTemplateBuilder: blockTemplateBuilder,
		blockMiner:           blockminer.New(config.BlockMiner),
		ledger:               ledger,
		target:               config.Target,
	}
}

// NewFactory creates a new mining manager factory
func NewFactory() Factory {
	return &factory{}
}
