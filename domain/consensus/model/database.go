package model

// DBReader defines a proxy over domain data access
type DBReader interface {
	// Get gets the value for the given key. It returns
	// ErrNotFound if the given key does not exist.
	Get(key []byte) ([]byte, error)

	// Has returns true if the database does contains the
	// given key.
	Has(key []byte) (bool, error)
}

// DBWriter is an interface to write to the database
type DBWriter interface {
	Put(key []byte, value []byte) error
	PutBatch(pairs map[string][]byte) error
}

// DBManager defines the interface of a database that can begin
// transactions and read data.
type DBManager interface {
	DBReader
	DBWriter
	Close() error
}
