package externalapi

import (
	"fmt"

	"github.com/btcsuite/btcutil"
)

// DomainTransaction represents a transaction record as it arrives from the
// transaction source. Version and LockTime are pointers so that a record
// missing either field can be told apart from one carrying a zero.
type DomainTransaction struct {
	Version  *int64                     `json:"version,omitempty"`
	LockTime *int64                     `json:"locktime,omitempty"`
	Inputs   []*DomainTransactionInput  `json:"vin"`
	Outputs  []*DomainTransactionOutput `json:"vout"`
	Witness  []string                   `json:"witness,omitempty"`

	serializedSize    uint64
	hasSerializedSize bool
}

// DomainTransactionInput represents a transaction input
type DomainTransactionInput struct {
	TransactionID string         `json:"txid"`
	Index         uint32         `json:"vout"`
	Prevout       *DomainPrevout `json:"prevout,omitempty"`
	ScriptSig     string         `json:"scriptsig,omitempty"`
	Witness       []string       `json:"witness,omitempty"`
	IsCoinbase    bool           `json:"is_coinbase"`
	Sequence      uint32         `json:"sequence,omitempty"`
}

// DomainPrevout is the output an input spends, as embedded in the record
type DomainPrevout struct {
	ScriptPublicKey string         `json:"scriptpubkey,omitempty"`
	Value           btcutil.Amount `json:"value"`
}

// DomainTransactionOutput represents a transaction output
type DomainTransactionOutput struct {
	ScriptPublicKey string         `json:"scriptpubkey,omitempty"`
	Value           btcutil.Amount `json:"value"`
}

// NewDomainTransaction returns a transaction with both its version and its
// lock time set.
func NewDomainTransaction(version int64, lockTime int64,
	inputs []*DomainTransactionInput, outputs []*DomainTransactionOutput) *DomainTransaction {

	return &DomainTransaction{
		Version:  &version,
		LockTime: &lockTime,
		Inputs:   inputs,
		Outputs:  outputs,
	}
}

// ID returns the transaction ID of the transaction's first input.
//
// This is not a hash of the transaction itself: records are identified by
// the outpoint they spend first. A transaction with no inputs has an empty ID.
func (tx *DomainTransaction) ID() string {
	if len(tx.Inputs) == 0 {
		return ""
	}
	return tx.Inputs[0].TransactionID
}

// HasWitness returns whether the transaction or any of its inputs carry
// witness data
func (tx *DomainTransaction) HasWitness() bool {
	if tx.Witness != nil {
		return true
	}
	for _, input := range tx.Inputs {
		if input.Witness != nil {
			return true
		}
	}
	return false
}

// IsCoinbase returns whether any of the transaction's inputs is flagged as
// a coinbase input
func (tx *DomainTransaction) IsCoinbase() bool {
	for _, input := range tx.Inputs {
		if input.IsCoinbase {
			return true
		}
	}
	return false
}

// InputsValue returns the sum of the prevout values of all inputs. Inputs
// without a prevout contribute nothing. The sum is only guaranteed not to
// overflow for transactions that passed validation.
func (tx *DomainTransaction) InputsValue() btcutil.Amount {
	var total btcutil.Amount
	for _, input := range tx.Inputs {
		total += input.PrevoutValue()
	}
	return total
}

// OutputsValue returns the sum of the values of all outputs. Like
// InputsValue, it may overflow on unvalidated transactions.
func (tx *DomainTransaction) OutputsValue() btcutil.Amount {
	var total btcutil.Amount
	for _, output := range tx.Outputs {
		total += output.Value
	}
	return total
}

// SetSerializedSize records the serialized size of the full record tx was
// decoded from, including the fields DomainTransaction doesn't model
func (tx *DomainTransaction) SetSerializedSize(size uint64) {
	tx.serializedSize = size
	tx.hasSerializedSize = true
}

// SerializedSize returns the size set by SetSerializedSize, if any
func (tx *DomainTransaction) SerializedSize() (uint64, bool) {
	return tx.serializedSize, tx.hasSerializedSize
}

// String stringifies a transaction.
func (tx *DomainTransaction) String() string {
	return fmt.Sprintf("tx %s (%d inputs, %d outputs)", tx.ID(), len(tx.Inputs), len(tx.Outputs))
}

// Outpoint returns the outpoint this input spends
func (input *DomainTransactionInput) Outpoint() DomainOutpoint {
	return DomainOutpoint{TransactionID: input.TransactionID, Index: input.Index}
}

// PrevoutValue returns the value of the output this input spends, or zero
// if the input carries no prevout
func (input *DomainTransactionInput) PrevoutValue() btcutil.Amount {
	if input.Prevout == nil {
		return 0
	}
	return input.Prevout.Value
}
