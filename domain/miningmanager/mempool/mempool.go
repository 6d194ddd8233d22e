package mempool

import (
	"sync"

	"github.com/kaspanet/blockminer/domain/consensus/model"
	"github.com/kaspanet/blockminer/domain/consensus/model/externalapi"
	"github.com/kaspanet/blockminer/domain/consensus/ruleerrors"
	miningmanagermodel "github.com/kaspanet/blockminer/domain/miningmanager/model"
	"github.com/pkg/errors"
)

// ErrMempoolFull indicates that the mempool reached its maximum
// transaction count
var ErrMempoolFull = errors.New("mempool is full")

type mempool struct {
	mutex sync.RWMutex

	config               *Config
	transactionValidator model.TransactionValidator
	utxoSet              externalapi.ReadOnlyUTXOSet

	transactions   []*externalapi.DomainTransaction
	rejectedCounts map[string]int
}

// New constructs a new mempool. Transactions are validated against utxoSet,
// which must not change while the mempool is in use.
func New(config *Config, transactionValidator model.TransactionValidator,
	utxoSet externalapi.ReadOnlyUTXOSet) miningmanagermodel.Mempool {

	return &mempool{
		config:               config,
		transactionValidator: transactionValidator,
		utxoSet:              utxoSet,
		rejectedCounts:       make(map[string]int),
	}
}

// ValidateAndInsertTransaction validates the given transaction and, if it
// is valid, appends it to the mempool. Transactions keep their arrival
// order.
func (mp *mempool) ValidateAndInsertTransaction(transaction *externalapi.DomainTransaction) error {
	err := mp.transactionValidator.ValidateTransactionInIsolation(transaction, mp.utxoSet)

	mp.mutex.Lock()
	defer mp.mutex.Unlock()

	if err != nil {
		reason := ruleerrors.Reason(err)
		mp.rejectedCounts[reason]++
		prometheusRejectedTransactions.WithLabelValues(reason).Inc()
		log.Debugf("Rejected transaction %s: %s", transaction.ID(), err)
		return err
	}
	if len(mp.transactions) >= mp.config.MaximumTransactionCount {
		return errors.Wrapf(ErrMempoolFull, "cannot accept transaction %s: %d transactions in the mempool",
			transaction.ID(), len(mp.transactions))
	}

	mp.transactions = append(mp.transactions, transaction)
	prometheusAcceptedTransactions.Inc()
	prometheusMempoolSize.Set(float64(len(mp.transactions)))
	log.Tracef("Accepted transaction %s to the mempool", transaction.ID())
	return nil
}

// Transactions returns the transactions of the mempool in arrival order
func (mp *mempool) Transactions() []*externalapi.DomainTransaction {
	mp.mutex.RLock()
	defer mp.mutex.RUnlock()

	transactions := make([]*externalapi.DomainTransaction, len(mp.transactions))
	copy(transactions, mp.transactions)
	return transactions
}

// HandleNewBlock removes the transactions of the given block from the
// mempool. Transactions are matched by identity rather than by ID, since
// IDs aren't unique.
func (mp *mempool) HandleNewBlock(block *externalapi.DomainBlock) {
	mined := make(map[*externalapi.DomainTransaction]struct{}, len(block.Transactions))
	for _, transaction := range block.Transactions {
		mined[transaction] = struct{}{}
	}

	mp.mutex.Lock()
	defer mp.mutex.Unlock()

	remaining := mp.transactions[:0]
	for _, transaction := range mp.transactions {
		if _, ok := mined[transaction]; !ok {
			remaining = append(remaining, transaction)
		}
	}
	for i := len(remaining); i < len(mp.transactions); i++ {
		mp.transactions[i] = nil
	}
	removed := len(mp.transactions) - len(remaining)
	mp.transactions = remaining
	prometheusMempoolSize.Set(float64(len(mp.transactions)))
	log.Debugf("Removed %d mined transactions from the mempool. %d transactions left",
		removed, len(mp.transactions))
}

// Count returns the number of transactions in the mempool
func (mp *mempool) Count() int {
	mp.mutex.RLock()
	defer mp.mutex.RUnlock()

	return len(mp.transactions)
}

// RejectedCounts returns the number of rejected transactions per violated
// rule
func (mp *mempool) RejectedCounts() map[string]int {
	mp.mutex.RLock()
	defer mp.mutex.RUnlock()

	counts := make(map[string]int, len(mp.rejectedCounts))
	for reason, count := range mp.rejectedCounts {
		counts[reason] = count
	}
	return counts
}
