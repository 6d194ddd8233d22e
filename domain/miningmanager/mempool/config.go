package mempool

import "github.com/kaspanet/blockminer/domain/consensus/utils/constants"

const defaultMaximumTransactionCount = 1_000_000

// Config represents a mempool configuration
type Config struct {
	// MaximumTransactionCount is the number of transactions the mempool
	// holds before it starts rejecting new ones
	MaximumTransactionCount int

	// MaximumTransactionSize is the maximum serialized size of an accepted
	// transaction
	MaximumTransactionSize uint64
}

// DefaultConfig returns the default mempool configuration
func DefaultConfig() *Config {
	return &Config{
		MaximumTransactionCount: defaultMaximumTransactionCount,
		MaximumTransactionSize:  constants.MaxTransactionSize,
	}
}
