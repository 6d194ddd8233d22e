package transactionvalidator

import (
	"github.com/btcsuite/btcutil"
	"github.com/kaspanet/blockminer/domain/consensus/model/externalapi"
	"github.com/kaspanet/blockminer/domain/consensus/ruleerrors"
	"github.com/kaspanet/blockminer/domain/consensus/utils/constants"
	"github.com/kaspanet/blockminer/domain/consensus/utils/estimatedsize"
	"github.com/pkg/errors"
)

// ValidateTransactionInIsolation validates tx on its own and against a
// read-only view of the UTXO set. It returns the RuleError of the first
// check that fails. Neither tx nor utxoSet are modified.
func (v *transactionValidator) ValidateTransactionInIsolation(tx *externalapi.DomainTransaction,
	utxoSet externalapi.ReadOnlyUTXOSet) error {

	err := v.checkTransactionVersion(tx)
	if err != nil {
		return err
	}
	err = v.checkTransactionLockTime(tx)
	if err != nil {
		return err
	}
	err = v.checkTransactionInputsAndOutputsExist(tx)
	if err != nil {
		return err
	}
	err = v.checkTransactionSize(tx)
	if err != nil {
		return err
	}
	err = v.checkDuplicateTransactionInputs(tx)
	if err != nil {
		return err
	}
	err = v.checkTransactionInputsNotInUTXOSet(tx, utxoSet)
	if err != nil {
		return err
	}
	err = v.checkTransactionOutputValues(tx)
	if err != nil {
		return err
	}
	err = v.checkTransactionInputValues(tx)
	if err != nil {
		return err
	}
	err = v.checkTransactionAmounts(tx)
	if err != nil {
		return err
	}
	err = v.checkCoinbaseTransaction(tx)
	if err != nil {
		return err
	}
	return v.checkTransactionWitness(tx)
}

func (v *transactionValidator) checkTransactionVersion(tx *externalapi.DomainTransaction) error {
	if tx.Version == nil {
		return errors.Wrap(ruleerrors.ErrTransactionVersionIsUnknown, "transaction has no version")
	}
	version := *tx.Version
	if version < constants.MinTransactionVersion || version > constants.MaxTransactionVersion {
		return errors.Wrapf(ruleerrors.ErrTransactionVersionIsUnknown, "transaction version %d is not "+
			"between %d and %d", version, constants.MinTransactionVersion, constants.MaxTransactionVersion)
	}
	return nil
}

func (v *transactionValidator) checkTransactionLockTime(tx *externalapi.DomainTransaction) error {
	if tx.LockTime == nil {
		return errors.Wrap(ruleerrors.ErrBadLockTime, "transaction has no lock time")
	}
	if *tx.LockTime < 0 {
		return errors.Wrapf(ruleerrors.ErrBadLockTime, "transaction lock time %d is negative", *tx.LockTime)
	}
	return nil
}

func (v *transactionValidator) checkTransactionInputsAndOutputsExist(tx *externalapi.DomainTransaction) error {
	if len(tx.Inputs) == 0 {
		return errors.WithStack(ruleerrors.ErrNoTxInputs)
	}
	if len(tx.Outputs) == 0 {
		return errors.WithStack(ruleerrors.ErrNoTxOutputs)
	}
	return nil
}

func (v *transactionValidator) checkTransactionSize(tx *externalapi.DomainTransaction) error {
	size, err := estimatedsize.TransactionSerializedSize(tx)
	if err != nil {
		return errors.Wrap(ruleerrors.ErrTxTooBig, err.Error())
	}
	if size > v.maxTransactionSize {
		return errors.Wrapf(ruleerrors.ErrTxTooBig, "serialized transaction is %d bytes, "+
			"while the maximum allowed is %d", size, v.maxTransactionSize)
	}
	return nil
}

func (v *transactionValidator) checkDuplicateTransactionInputs(tx *externalapi.DomainTransaction) error {
	existingOutpoints := make(map[externalapi.DomainOutpoint]struct{}, len(tx.Inputs))
	for _, input := range tx.Inputs {
		outpoint := input.Outpoint()
		if _, exists := existingOutpoints[outpoint]; exists {
			return errors.Wrapf(ruleerrors.ErrDuplicateTxInputs, "transaction "+
				"contains duplicate inputs spending %s", outpoint)
		}
		existingOutpoints[outpoint] = struct{}{}
	}
	return nil
}

// checkTransactionInputsNotInUTXOSet rejects any input whose outpoint is
// already present in the UTXO set. This is a presence check, not a
// double-spend check against spent outputs.
func (v *transactionValidator) checkTransactionInputsNotInUTXOSet(tx *externalapi.DomainTransaction,
	utxoSet externalapi.ReadOnlyUTXOSet) error {

	if utxoSet == nil {
		return nil
	}
	for _, input := range tx.Inputs {
		outpoint := input.Outpoint()
		if utxoSet.Contains(outpoint) {
			return errors.Wrapf(ruleerrors.ErrInputInUTXOSet, "input %s is already in the UTXO set", outpoint)
		}
	}
	return nil
}

// checkTransactionOutputValues ensures every output value and the total of
// all of them are between 0 and btcutil.MaxSatoshi, which also keeps the
// total from overflowing.
func (v *transactionValidator) checkTransactionOutputValues(tx *externalapi.DomainTransaction) error {
	var totalSatoshi btcutil.Amount
	for i, output := range tx.Outputs {
		satoshi := output.Value
		if satoshi < 0 {
			return errors.Wrapf(ruleerrors.ErrBadTxOutValue, "transaction output %d "+
				"has negative value of %d", i, int64(satoshi))
		}
		if satoshi > btcutil.MaxSatoshi {
			return errors.Wrapf(ruleerrors.ErrBadTxOutValue, "transaction output value of %d is "+
				"higher than max allowed value of %d", int64(satoshi), int64(btcutil.MaxSatoshi))
		}
		totalSatoshi += satoshi
		if totalSatoshi > btcutil.MaxSatoshi {
			return errors.Wrapf(ruleerrors.ErrBadTxOutValue, "total value of all transaction "+
				"outputs is %d which is higher than max allowed value of %d",
				int64(totalSatoshi), int64(btcutil.MaxSatoshi))
		}
	}
	return nil
}

// checkTransactionInputValues applies the output value range rules to the
// prevout values of the inputs
func (v *transactionValidator) checkTransactionInputValues(tx *externalapi.DomainTransaction) error {
	var totalSatoshi btcutil.Amount
	for i, input := range tx.Inputs {
		satoshi := input.PrevoutValue()
		if satoshi < 0 {
			return errors.Wrapf(ruleerrors.ErrBadTxInValue, "transaction input %d "+
				"spends a negative value of %d", i, int64(satoshi))
		}
		if satoshi > btcutil.MaxSatoshi {
			return errors.Wrapf(ruleerrors.ErrBadTxInValue, "transaction input value of %d is "+
				"higher than max allowed value of %d", int64(satoshi), int64(btcutil.MaxSatoshi))
		}
		totalSatoshi += satoshi
		if totalSatoshi > btcutil.MaxSatoshi {
			return errors.Wrapf(ruleerrors.ErrBadTxInValue, "total value of all transaction "+
				"inputs is %d which is higher than max allowed value of %d",
				int64(totalSatoshi), int64(btcutil.MaxSatoshi))
		}
	}
	return nil
}

// checkTransactionAmounts must only run after the input and output values
// were range checked, so that their sums can't overflow
func (v *transactionValidator) checkTransactionAmounts(tx *externalapi.DomainTransaction) error {
	totalIn := tx.InputsValue()
	totalOut := tx.OutputsValue()
	if totalIn < totalOut {
		return errors.Wrapf(ruleerrors.ErrSpendTooHigh, "total value of all transaction "+
			"outputs is %s which is higher than the input amount of %s", totalOut, totalIn)
	}
	return nil
}

func (v *transactionValidator) checkCoinbaseTransaction(tx *externalapi.DomainTransaction) error {
	if !tx.IsCoinbase() {
		return nil
	}
	if len(tx.Inputs) != 1 {
		return errors.Wrapf(ruleerrors.ErrBadCoinbaseTransaction, "coinbase transaction has %d inputs "+
			"while exactly one is allowed", len(tx.Inputs))
	}
	if tx.Inputs[0].Prevout != nil {
		return errors.Wrap(ruleerrors.ErrBadCoinbaseTransaction, "coinbase input spends a prevout")
	}
	return nil
}

func (v *transactionValidator) checkTransactionWitness(tx *externalapi.DomainTransaction) error {
	if !tx.HasWitness() {
		return nil
	}
	err := v.witnessValidator.ValidateWitness(tx)
	if err != nil {
		return errors.Wrap(ruleerrors.ErrWitnessValidation, err.Error())
	}
	return nil
}
