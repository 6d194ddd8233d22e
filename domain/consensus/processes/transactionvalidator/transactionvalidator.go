package transactionvalidator

import (
	"github.com/kaspanet/blockminer/domain/consensus/model"
	"github.com/kaspanet/blockminer/domain/consensus/model/externalapi"
	"github.com/kaspanet/blockminer/domain/consensus/ruleerrors"
)

// transactionValidator exposes a set of validation classes, after which
// it's possible to determine whether either a transaction is valid
type transactionValidator struct {
	maxTransactionSize uint64
	witnessValidator   model.WitnessValidator
}

// New instantiates a new TransactionValidator
func New(maxTransactionSize uint64, witnessValidator model.WitnessValidator) model.TransactionValidator {
	if witnessValidator == nil {
		witnessValidator = NewAcceptAllWitnessValidator()
	}
	return &transactionValidator{
		maxTransactionSize: maxTransactionSize,
		witnessValidator:   witnessValidator,
	}
}

// IsValid returns whether tx passes ValidateTransactionInIsolation.
// Rejections are logged with the violated rule and otherwise swallowed.
func (v *transactionValidator) IsValid(tx *externalapi.DomainTransaction, utxoSet externalapi.ReadOnlyUTXOSet) bool {
	err := v.ValidateTransactionInIsolation(tx, utxoSet)
	if err != nil {
		log.Debugf("Rejected %s (%s): %s", tx, ruleerrors.Reason(err), err)
		return false
	}
	return true
}
