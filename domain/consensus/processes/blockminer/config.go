package blockminer

const (
	defaultWorkers   = 1
	defaultBatchSize = 1 << 16
)

// Config holds the parameters of the proof-of-work search
type Config struct {
	// Workers is the number of goroutines searching each batch of nonces
	Workers int

	// MaxAttempts bounds the number of nonces tried per template. Zero
	// means unbounded.
	MaxAttempts uint64

	// BatchSize is the number of nonces tried between two checks of the
	// mining context
	BatchSize uint64
}

// DefaultConfig returns a single-worker, unbounded Config
func DefaultConfig() *Config {
	return &Config{
		Workers:   defaultWorkers,
		BatchSize: defaultBatchSize,
	}
}
