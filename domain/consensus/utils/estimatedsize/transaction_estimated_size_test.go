package estimatedsize

import (
	"strings"
	"testing"

	"github.com/kaspanet/blockminer/domain/consensus/model/externalapi"
)

func TestTransactionSerializedSize(t *testing.T) {
	tx := externalapi.NewDomainTransaction(1, 0,
		[]*externalapi.DomainTransactionInput{{TransactionID: "aa", Index: 1}},
		[]*externalapi.DomainTransactionOutput{{Value: 5}})

	expected := `{"version":1,"locktime":0,"vin":[{"txid":"aa","vout":1,"is_coinbase":false}],"vout":[{"value":5}]}`
	size, err := TransactionSerializedSize(tx)
	if err != nil {
		t.Fatalf("TransactionSerializedSize: %+v", err)
	}
	if size != uint64(len(expected)) {
		t.Fatalf("expected %d bytes, got %d", len(expected), size)
	}
}

func TestTransactionSerializedSizeGrowsWithScripts(t *testing.T) {
	tx := externalapi.NewDomainTransaction(1, 0,
		[]*externalapi.DomainTransactionInput{{TransactionID: "aa"}},
		[]*externalapi.DomainTransactionOutput{{Value: 5}})
	small, err := TransactionSerializedSize(tx)
	if err != nil {
		t.Fatalf("TransactionSerializedSize: %+v", err)
	}

	tx.Outputs[0].ScriptPublicKey = strings.Repeat("ab", 1000)
	large, err := TransactionSerializedSize(tx)
	if err != nil {
		t.Fatalf("TransactionSerializedSize: %+v", err)
	}
	if large <= small+2000 {
		t.Fatalf("expected the script to add at least 2000 bytes: %d -> %d", small, large)
	}
}

func TestRecordSerializedSize(t *testing.T) {
	tests := []struct {
		name     string
		record   string
		expected string
	}{
		{
			name:     "whitespace is not counted",
			record:   "{\n\t\"version\": 1,\n\t\"vout\": [ {\"value\": 5} ]\n}",
			expected: `{"version":1,"vout":[{"value":5}]}`,
		},
		{
			name:     "unmodeled fields are counted",
			record:   `{"vout": [{"value": 5, "scriptpubkey_asm": "OP_DUP OP_HASH160", "scriptpubkey_type": "p2pkh"}]}`,
			expected: `{"vout":[{"scriptpubkey_asm":"OP_DUP OP_HASH160","scriptpubkey_type":"p2pkh","value":5}]}`,
		},
		{
			name:     "number literals are kept",
			record:   `{"value": 1.50, "big": 123456789012345678901234567890}`,
			expected: `{"big":123456789012345678901234567890,"value":1.50}`,
		},
	}

	for _, test := range tests {
		size, err := RecordSerializedSize([]byte(test.record))
		if err != nil {
			t.Fatalf("TestRecordSerializedSize: '%s': %+v", test.name, err)
		}
		if size != uint64(len(test.expected)) {
			t.Errorf("TestRecordSerializedSize: '%s': expected %d bytes, got %d",
				test.name, len(test.expected), size)
		}
	}

	_, err := RecordSerializedSize([]byte(`{"version": `))
	if err == nil {
		t.Fatalf("TestRecordSerializedSize: expected an error for a malformed record")
	}
}

func TestTransactionSerializedSizePrefersRecordSize(t *testing.T) {
	tx := externalapi.NewDomainTransaction(1, 0,
		[]*externalapi.DomainTransactionInput{{TransactionID: "aa"}},
		[]*externalapi.DomainTransactionOutput{{Value: 5}})
	tx.SetSerializedSize(123_456)

	size, err := TransactionSerializedSize(tx)
	if err != nil {
		t.Fatalf("TransactionSerializedSize: %+v", err)
	}
	if size != 123_456 {
		t.Fatalf("expected the recorded size of 123456 bytes, got %d", size)
	}
}
