package pow

import (
	"math/big"
	"strconv"

	"github.com/kaspanet/blockminer/domain/consensus/model/externalapi"
	"github.com/kaspanet/blockminer/domain/consensus/utils/hashes"
	"github.com/kaspanet/blockminer/domain/consensus/utils/merkle"
	"github.com/pkg/errors"
)

// ErrMalformedTarget indicates a difficulty target that isn't exactly
// 64 hex digits
var ErrMalformedTarget = errors.New("malformed difficulty target")

// ParseTarget converts a difficulty target given as 64 hex digits into the
// integer a block hash must stay below
func ParseTarget(difficulty string) (*big.Int, error) {
	if len(difficulty) != externalapi.HashStringLength {
		return nil, errors.Wrapf(ErrMalformedTarget, "expected %d hex digits but got %d",
			externalapi.HashStringLength, len(difficulty))
	}
	target, err := hashes.ToBig(difficulty)
	if err != nil {
		return nil, errors.Wrapf(ErrMalformedTarget, "%s", err)
	}
	return target, nil
}

// CalculateBlockHash returns the hash of the block identified by the given
// previous hash, nonce and merkle root
func CalculateBlockHash(previousHash string, nonce uint64, merkleRoot string) string {
	writer := hashes.NewHashWriter()
	writer.WriteString(previousHash)
	writer.WriteString(strconv.FormatUint(nonce, 10))
	writer.WriteString(merkleRoot)
	return writer.Finalize()
}

// CheckProofOfWorkWithTarget returns whether hash, read as an integer, is
// strictly below target
func CheckProofOfWorkWithTarget(hash string, target *big.Int) bool {
	hashNum, err := hashes.ToBig(hash)
	if err != nil {
		return false
	}
	return hashNum.Cmp(target) < 0
}

// CheckProofOfWork re-derives a sealed block's merkle root and hash from its
// contents and checks that they match the block and satisfy target
func CheckProofOfWork(block *externalapi.DomainBlock, target *big.Int) bool {
	if !block.IsSealed() {
		return false
	}
	merkleRoot := merkle.CalculateMerkleRoot(block.Transactions)
	if merkleRoot != block.MerkleRoot {
		return false
	}
	hash := CalculateBlockHash(block.PreviousHash, block.Nonce, merkleRoot)
	if hash != block.Hash {
		return false
	}
	return CheckProofOfWorkWithTarget(hash, target)
}
