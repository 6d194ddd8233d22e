package transactionvalidator

import (
	"github.com/kaspanet/blockminer/domain/consensus/model"
	"github.com/kaspanet/blockminer/domain/consensus/model/externalapi"
)

type acceptAllWitnessValidator struct{}

// NewAcceptAllWitnessValidator returns a WitnessValidator that accepts any
// witness data. Script and signature verification are not implemented.
func NewAcceptAllWitnessValidator() model.WitnessValidator {
	return acceptAllWitnessValidator{}
}

func (acceptAllWitnessValidator) ValidateWitness(*externalapi.DomainTransaction) error {
	return nil
}
