package ruleerrors

import (
	"github.com/pkg/errors"
)

// These constants are used to identify a specific RuleError.
var (
	// ErrTransactionVersionIsUnknown indicates that the transaction version
	// is missing or is neither 1 nor 2.
	ErrTransactionVersionIsUnknown = newRuleError("ErrTransactionVersionIsUnknown")

	// ErrBadLockTime indicates that the transaction lock time is missing
	// or negative.
	ErrBadLockTime = newRuleError("ErrBadLockTime")

	// ErrNoTxInputs indicates a transaction does not have any inputs. A
	// valid transaction must have at least one input.
	ErrNoTxInputs = newRuleError("ErrNoTxInputs")

	// ErrNoTxOutputs indicates a transaction does not have any outputs.
	ErrNoTxOutputs = newRuleError("ErrNoTxOutputs")

	// ErrTxTooBig indicates the serialized transaction is larger than
	// the maximum allowed size.
	ErrTxTooBig = newRuleError("ErrTxTooBig")

	// ErrInputInUTXOSet indicates that an input references an outpoint
	// that is already present in the UTXO set.
	ErrInputInUTXOSet = newRuleError("ErrInputInUTXOSet")

	// ErrDuplicateTxInputs indicates a transaction references the same
	// input more than once.
	ErrDuplicateTxInputs = newRuleError("ErrDuplicateTxInputs")

	// ErrBadTxOutValue indicates an output value for a transaction is
	// invalid in some way such as being out of range.
	ErrBadTxOutValue = newRuleError("ErrBadTxOutValue")

	// ErrBadTxInValue indicates the prevout value an input spends is
	// invalid in some way such as being out of range.
	ErrBadTxInValue = newRuleError("ErrBadTxInValue")

	// ErrSpendTooHigh indicates a transaction is attempting to spend more
	// value than the sum of all of its inputs.
	ErrSpendTooHigh = newRuleError("ErrSpendTooHigh")

	// ErrBadCoinbaseTransaction indicates a coinbase transaction with more
	// than one input, or whose input spends a prevout.
	ErrBadCoinbaseTransaction = newRuleError("ErrBadCoinbaseTransaction")

	// ErrWitnessValidation indicates the witness validator rejected the
	// transaction's witness data.
	ErrWitnessValidation = newRuleError("ErrWitnessValidation")
)

// RuleError identifies a rule violation. It is used to indicate that
// validation of a transaction failed due to one of the many validation
// rules. The caller can use errors.Is or errors.As to determine if a failure
// was specifically due to a rule violation.
type RuleError struct {
	message string
	inner   error
}

// Error satisfies the error interface and prints human-readable errors.
func (e RuleError) Error() string {
	if e.inner != nil {
		return e.message + ": " + e.inner.Error()
	}
	return e.message
}

// Unwrap satisfies the errors.Unwrap interface
func (e RuleError) Unwrap() error {
	return e.inner
}

// Cause satisfies the github.com/pkg/errors.Cause interface
func (e RuleError) Cause() error {
	return e.inner
}

// Reason returns the name of the violated rule, without any inner error
func (e RuleError) Reason() string {
	return e.message
}

func newRuleError(message string) RuleError {
	return RuleError{message: message, inner: nil}
}

// Reason extracts the name of the violated rule from err, or returns
// "Unknown" if err is not a RuleError.
func Reason(err error) string {
	var ruleErr RuleError
	if errors.As(err, &ruleErr) {
		return ruleErr.Reason()
	}
	return "Unknown"
}
