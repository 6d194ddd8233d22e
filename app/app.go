package app

import (
	"context"
	"math/big"
	"sort"
	"time"

	"github.com/kaspanet/blockminer/app/blocksink"
	"github.com/kaspanet/blockminer/app/txsource"
	"github.com/kaspanet/blockminer/domain/consensus/model/externalapi"
	"github.com/kaspanet/blockminer/domain/consensus/processes/blockminer"
	"github.com/kaspanet/blockminer/domain/consensus/utils/pow"
	"github.com/kaspanet/blockminer/domain/miningmanager"
	"github.com/kaspanet/blockminer/infrastructure/config"
	"github.com/kaspanet/blockminer/util/panics"
	"github.com/pkg/errors"
)

const logHashRateInterval = 10 * time.Second

var spawn = panics.GoroutineWrapperFunc(log)

// Run loads the transactions of the configured mempool directory, mines
// the configured number of blocks out of them and writes the last mined
// block to the output file. It returns the mined blocks.
func Run(ctx context.Context, cfg *config.Config) ([]*externalapi.DomainBlock, error) {
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	l, err := openLedger(cfg)
	if err != nil {
		return nil, err
	}
	defer func() {
		err := l.Close()
		if err != nil {
			log.Errorf("Error closing the ledger: %+v", err)
		}
	}()

	miningManager := miningmanager.NewFactory().NewMiningManager(l, miningManagerConfig(cfg))

	err = loadMempool(miningManager, cfg.MempoolDir)
	if err != nil {
		return nil, err
	}

	stopHashRateLog := logHashRate(miningManager)
	defer stopHashRateLog()

	blocks := make([]*externalapi.DomainBlock, 0, cfg.NumberOfBlocks)
	for i := uint64(0); i < cfg.NumberOfBlocks; i++ {
		block, err := miningManager.MineBlock(ctx)
		if err != nil {
			return blocks, errors.Wrapf(err, "failed mining block %d of %d", i+1, cfg.NumberOfBlocks)
		}
		if !pow.CheckProofOfWork(block, cfg.Target) {
			return blocks, errors.Errorf("mined block %s fails proof of work verification", block.Hash)
		}
		blocks = append(blocks, block)

		err = blocksink.WriteBlockToFile(cfg.OutputFile, block)
		if err != nil {
			return blocks, err
		}
	}
	return blocks, nil
}

func miningManagerConfig(cfg *config.Config) *miningmanager.Config {
	miningManagerConfig := miningmanager.DefaultConfig(cfg.Target)
	miningManagerConfig.MaxBlockTransactions = cfg.MaxBlockTransactions
	miningManagerConfig.BlockMiner = &blockminer.Config{
		Workers:     cfg.Workers,
		MaxAttempts: cfg.MaxAttempts,
		BatchSize:   blockminer.DefaultConfig().BatchSize,
	}
	return miningManagerConfig
}

func loadMempool(miningManager miningmanager.MiningManager, mempoolDir string) error {
	transactions, err := txsource.LoadTransactions(mempoolDir)
	if err != nil {
		return err
	}

	accepted := make([]*externalapi.DomainTransaction, 0, len(transactions))
	for _, transaction := range transactions {
		err := miningManager.ValidateAndInsertTransaction(transaction)
		if err != nil {
			continue
		}
		accepted = append(accepted, transaction)
	}
	log.Infof("Accepted %d of %d transactions to the mempool, paying %s satoshi in fees",
		len(accepted), len(transactions), totalFees(accepted))

	rejectedCounts := miningManager.RejectedCounts()
	reasons := make([]string, 0, len(rejectedCounts))
	for reason := range rejectedCounts {
		reasons = append(reasons, reason)
	}
	sort.Strings(reasons)
	for _, reason := range reasons {
		log.Infof("Rejected %d transactions: %s", rejectedCounts[reason], reason)
	}
	return nil
}

// totalFees sums the fees of transactions. Each fee of a valid transaction
// fits in a btcutil.Amount, but their sum might not.
func totalFees(transactions []*externalapi.DomainTransaction) *big.Int {
	total := new(big.Int)
	for _, transaction := range transactions {
		fee := transaction.InputsValue() - transaction.OutputsValue()
		total.Add(total, big.NewInt(int64(fee)))
	}
	return total
}

// logHashRate periodically logs the hash rate of miningManager until the
// returned function is called
func logHashRate(miningManager miningmanager.MiningManager) (stop func()) {
	done := make(chan struct{})
	spawn("logHashRate", func() {
		ticker := time.NewTicker(logHashRateInterval)
		defer ticker.Stop()

		lastCheck := time.Now()
		lastHashesTried := miningManager.HashesTried()
		for {
			select {
			case <-done:
				return
			case currentTime := <-ticker.C:
				currentHashesTried := miningManager.HashesTried()
				kiloHashesTried := float64(currentHashesTried-lastHashesTried) / 1000.0
				hashRate := kiloHashesTried / currentTime.Sub(lastCheck).Seconds()
				log.Infof("Current hash rate is %.2f Khash/s", hashRate)
				lastCheck = currentTime
				lastHashesTried = currentHashesTried
			}
		}
	})
	return func() {
		close(done)
	}
}
