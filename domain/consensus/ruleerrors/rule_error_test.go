package ruleerrors

import (
	"testing"

	"github.com/pkg/errors"
)

func TestRuleErrorIs(t *testing.T) {
	wrapped := errors.Wrapf(ErrSpendTooHigh, "inputs %d < outputs %d", 1, 2)
	if !errors.Is(wrapped, ErrSpendTooHigh) {
		t.Fatalf("wrapped rule error does not match its sentinel: %+v", wrapped)
	}
	if errors.Is(wrapped, ErrBadTxOutValue) {
		t.Fatalf("wrapped rule error matched a different sentinel: %+v", wrapped)
	}

	var ruleErr RuleError
	if !errors.As(wrapped, &ruleErr) {
		t.Fatalf("errors.As could not extract a RuleError from %+v", wrapped)
	}
}

func TestReason(t *testing.T) {
	tests := []struct {
		err      error
		expected string
	}{
		{ErrNoTxInputs, "ErrNoTxInputs"},
		{errors.WithStack(ErrTxTooBig), "ErrTxTooBig"},
		{errors.Wrap(ErrWitnessValidation, "bad witness"), "ErrWitnessValidation"},
		{errors.New("not a rule error"), "Unknown"},
	}
	for _, test := range tests {
		reason := Reason(test.err)
		if reason != test.expected {
			t.Errorf("Reason(%v): expected %s, got %s", test.err, test.expected, reason)
		}
	}
}

func TestRuleErrorMessage(t *testing.T) {
	err := RuleError{message: "ErrSomething", inner: errors.New("inner")}
	if err.Error() != "ErrSomething: inner" {
		t.Fatalf("unexpected message %q", err.Error())
	}
	if ErrNoTxOutputs.Error() != "ErrNoTxOutputs" {
		t.Fatalf("unexpected message %q", ErrNoTxOutputs.Error())
	}
}
