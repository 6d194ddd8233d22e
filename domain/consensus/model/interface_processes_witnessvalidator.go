package model

import "github.com/kaspanet/blockminer/domain/consensus/model/externalapi"

// WitnessValidator verifies the witness data of a transaction. It is only
// consulted for transactions that carry witness data.
type WitnessValidator interface {
	ValidateWitness(transaction *externalapi.DomainTransaction) error
}
