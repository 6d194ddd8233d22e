package merkle

import (
	"sort"

	"github.com/kaspanet/blockminer/domain/consensus/model/externalapi"
	"github.com/kaspanet/blockminer/domain/consensus/utils/hashes"
)

// CalculateMerkleRoot returns the merkle root of the given transactions.
//
// This is not a merkle tree: the transaction IDs are sorted, concatenated
// and hashed once. The result is independent of the order of transactions
// but every occurrence of an ID, duplicates included, contributes to it.
func CalculateMerkleRoot(transactions []*externalapi.DomainTransaction) string {
	ids := make([]string, len(transactions))
	for i, tx := range transactions {
		ids[i] = tx.ID()
	}
	return CalculateMerkleRootFromIDs(ids)
}

// CalculateMerkleRootFromIDs returns the merkle root of the given
// transaction IDs. ids is not modified.
func CalculateMerkleRootFromIDs(ids []string) string {
	sorted := make([]string, len(ids))
	copy(sorted, ids)
	sort.Strings(sorted)

	writer := hashes.NewHashWriter()
	for _, id := range sorted {
		writer.WriteString(id)
	}
	return writer.Finalize()
}
