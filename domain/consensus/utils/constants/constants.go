package constants

const (
	// MinTransactionVersion is the lowest transaction version this node
	// is able to validate
	MinTransactionVersion = 1

	// MaxTransactionVersion is the highest transaction version this node
	// is able to validate
	MaxTransactionVersion = 2

	// MaxTransactionSize is the maximum size in bytes of a serialized
	// transaction
	MaxTransactionSize = 100_000

	// DefaultMaxBlockTransactions is the number of transactions selected
	// into a block template unless configured otherwise
	DefaultMaxBlockTransactions = 10

	// DefaultDifficulty is the difficulty target used unless configured
	// otherwise
	DefaultDifficulty = "0000ffff00000000000000000000000000000000000000000000000000000000"
)
