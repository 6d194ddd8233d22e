package estimatedsize

import (
	jsoniter "github.com/json-iterator/go"
	"github.com/kaspanet/blockminer/domain/consensus/model/externalapi"
	"github.com/pkg/errors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// canonicalJSON keeps number literals and non-ASCII text as they appear in
// the record, and drops insignificant whitespace
var canonicalJSON = jsoniter.Config{
	EscapeHTML:  false,
	SortMapKeys: true,
	UseNumber:   true,
}.Froze()

// TransactionSerializedSize returns the size in bytes of the canonical JSON
// encoding of the record tx was decoded from. Transactions that weren't
// decoded from a record are measured by encoding tx itself.
func TransactionSerializedSize(tx *externalapi.DomainTransaction) (uint64, error) {
	if size, ok := tx.SerializedSize(); ok {
		return size, nil
	}
	serialized, err := json.Marshal(tx)
	if err != nil {
		return 0, errors.Wrapf(err, "failed serializing %s", tx)
	}
	return uint64(len(serialized)), nil
}

// RecordSerializedSize returns the size in bytes of the canonical JSON
// encoding of record, counting every field it holds
func RecordSerializedSize(record []byte) (uint64, error) {
	var document interface{}
	err := canonicalJSON.Unmarshal(record, &document)
	if err != nil {
		return 0, errors.Wrap(err, "malformed record")
	}
	serialized, err := canonicalJSON.Marshal(document)
	if err != nil {
		return 0, errors.Wrap(err, "failed serializing record")
	}
	return uint64(len(serialized)), nil
}
