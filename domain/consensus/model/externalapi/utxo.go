package externalapi

import (
	"fmt"

	"github.com/btcsuite/btcutil"
)

// DomainOutpoint identifies a transaction output by the id of the
// transaction that created it and the output's index
type DomainOutpoint struct {
	TransactionID string
	Index         uint32
}

// String stringifies an outpoint.
func (op DomainOutpoint) String() string {
	return fmt.Sprintf("%s:%d", op.TransactionID, op.Index)
}

// ReadOnlyUTXOSet is the view of a UTXO set that validation is allowed to
// consult
type ReadOnlyUTXOSet interface {
	Get(outpoint DomainOutpoint) (btcutil.Amount, bool)
	Contains(outpoint DomainOutpoint) bool
	Len() int
}

// UTXOSet maps outpoints to spendable amounts
type UTXOSet struct {
	entries map[DomainOutpoint]btcutil.Amount
}

// NewUTXOSet returns an empty UTXOSet
func NewUTXOSet() *UTXOSet {
	return &UTXOSet{entries: make(map[DomainOutpoint]btcutil.Amount)}
}

// Add adds an outpoint with the given spendable amount, overwriting any
// previous entry
func (set *UTXOSet) Add(outpoint DomainOutpoint, amount btcutil.Amount) {
	set.entries[outpoint] = amount
}

// Get returns the amount spendable from outpoint, if it exists. A nil set
// is empty.
func (set *UTXOSet) Get(outpoint DomainOutpoint) (btcutil.Amount, bool) {
	if set == nil {
		return 0, false
	}
	amount, ok := set.entries[outpoint]
	return amount, ok
}

// Contains returns whether outpoint is in the set
func (set *UTXOSet) Contains(outpoint DomainOutpoint) bool {
	if set == nil {
		return false
	}
	_, ok := set.entries[outpoint]
	return ok
}

// Len returns the number of entries in the set
func (set *UTXOSet) Len() int {
	if set == nil {
		return 0
	}
	return len(set.entries)
}
