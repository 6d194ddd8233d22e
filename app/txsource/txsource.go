package txsource

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/kaspanet/blockminer/domain/consensus/model/externalapi"
	"github.com/kaspanet/blockminer/domain/consensus/utils/estimatedsize"
	"github.com/pkg/errors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const transactionFileExtension = ".json"

// LoadTransactions reads every JSON file in dir, in file name order, into a
// transaction record. Files that can't be read or decoded are skipped with
// a warning. An error is returned only if dir itself can't be listed.
func LoadTransactions(dir string) ([]*externalapi.DomainTransaction, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "failed listing transaction directory %s", dir)
	}

	fileNames := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), transactionFileExtension) {
			continue
		}
		fileNames = append(fileNames, entry.Name())
	}
	sort.Strings(fileNames)

	transactions := make([]*externalapi.DomainTransaction, 0, len(fileNames))
	for _, fileName := range fileNames {
		path := filepath.Join(dir, fileName)
		transaction, err := LoadTransaction(path)
		if err != nil {
			log.Warnf("Skipping transaction file %s: %s", path, err)
			continue
		}
		transactions = append(transactions, transaction)
	}
	log.Infof("Loaded %d transactions out of %d files in %s", len(transactions), len(fileNames), dir)
	return transactions, nil
}

// LoadTransaction reads a single transaction record from the JSON file at
// path. The size of the full record, unmodeled fields included, is kept on
// the transaction for validation.
func LoadTransaction(path string) (*externalapi.DomainTransaction, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	transaction := &externalapi.DomainTransaction{}
	err = json.Unmarshal(data, transaction)
	if err != nil {
		return nil, errors.Wrapf(err, "malformed transaction record")
	}
	size, err := estimatedsize.RecordSerializedSize(data)
	if err != nil {
		return nil, err
	}
	transaction.SetSerializedSize(size)
	return transaction, nil
}
