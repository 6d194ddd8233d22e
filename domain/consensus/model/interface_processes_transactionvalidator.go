package model

import "github.com/kaspanet/blockminer/domain/consensus/model/externalapi"

// TransactionValidator exposes a set of validation classes, after which
// it's possible to determine whether a transaction is valid
type TransactionValidator interface {
	ValidateTransactionInIsolation(transaction *externalapi.DomainTransaction, utxoSet externalapi.ReadOnlyUTXOSet) error
	IsValid(transaction *externalapi.DomainTransaction, utxoSet externalapi.ReadOnlyUTXOSet) bool
}
