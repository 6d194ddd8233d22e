package merkle

import (
	"testing"

	"github.com/kaspanet/blockminer/domain/consensus/model/externalapi"
	"github.com/kaspanet/blockminer/domain/consensus/utils/hashes"
)

func transactionsWithIDs(ids ...string) []*externalapi.DomainTransaction {
	transactions := make([]*externalapi.DomainTransaction, len(ids))
	for i, id := range ids {
		transactions[i] = externalapi.NewDomainTransaction(1, 0,
			[]*externalapi.DomainTransactionInput{{TransactionID: id}},
			[]*externalapi.DomainTransactionOutput{{Value: 1}})
	}
	return transactions
}

func TestCalculateMerkleRootEmpty(t *testing.T) {
	root := CalculateMerkleRoot(nil)
	if root != hashes.HashString("") {
		t.Fatalf("expected the hash of the empty string, got %s", root)
	}
}

func TestCalculateMerkleRootIsSortedConcatenation(t *testing.T) {
	root := CalculateMerkleRoot(transactionsWithIDs("cc", "aa", "bb"))
	expected := hashes.HashString("aabbcc")
	if root != expected {
		t.Fatalf("expected %s, got %s", expected, root)
	}
}

func TestCalculateMerkleRootPermutationInvariance(t *testing.T) {
	permutations := [][]string{
		{"a1", "b2", "c3", "d4"},
		{"d4", "c3", "b2", "a1"},
		{"b2", "a1", "d4", "c3"},
		{"c3", "d4", "a1", "b2"},
	}
	expected := CalculateMerkleRoot(transactionsWithIDs(permutations[0]...))
	for _, permutation := range permutations[1:] {
		root := CalculateMerkleRoot(transactionsWithIDs(permutation...))
		if root != expected {
			t.Errorf("root of %v is %s, expected %s", permutation, root, expected)
		}
	}
}

func TestCalculateMerkleRootSensitivity(t *testing.T) {
	base := CalculateMerkleRoot(transactionsWithIDs("a1", "b2", "c3"))

	changed := CalculateMerkleRoot(transactionsWithIDs("a1", "b2", "c4"))
	if changed == base {
		t.Fatalf("changing a single ID did not change the merkle root")
	}

	duplicated := CalculateMerkleRoot(transactionsWithIDs("a1", "b2", "c3", "c3"))
	if duplicated == base {
		t.Fatalf("a duplicated ID must contribute to the merkle root")
	}
}

func TestCalculateMerkleRootFromIDsDoesNotReorderInput(t *testing.T) {
	ids := []string{"b", "a"}
	CalculateMerkleRootFromIDs(ids)
	if ids[0] != "b" || ids[1] != "a" {
		t.Fatalf("input slice was reordered: %v", ids)
	}
}
