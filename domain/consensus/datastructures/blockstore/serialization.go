package blockstore

import (
	jsoniter "github.com/json-iterator/go"
	"github.com/kaspanet/blockminer/domain/consensus/model/externalapi"
	"github.com/pkg/errors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// dbBlock is the on-disk representation of a sealed block
type dbBlock struct {
	Hash         string                            `json:"hash"`
	PreviousHash string                            `json:"previous_hash"`
	MerkleRoot   string                            `json:"merkle_root"`
	Nonce        uint64                            `json:"nonce"`
	Transactions []*externalapi.DomainTransaction `json:"transactions"`
}

func (bs *blockStore) serializeBlock(block *externalapi.DomainBlock) ([]byte, error) {
	blockBytes, err := json.Marshal(&dbBlock{
		Hash:         block.Hash,
		PreviousHash: block.PreviousHash,
		MerkleRoot:   block.MerkleRoot,
		Nonce:        block.Nonce,
		Transactions: block.Transactions,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed serializing block")
	}
	return blockBytes, nil
}

func (bs *blockStore) deserializeBlock(blockBytes []byte) (*externalapi.DomainBlock, error) {
	stored := &dbBlock{}
	err := json.Unmarshal(blockBytes, stored)
	if err != nil {
		return nil, errors.Wrap(err, "failed deserializing block")
	}
	return &externalapi.DomainBlock{
		Transactions: stored.Transactions,
		PreviousHash: stored.PreviousHash,
		MerkleRoot:   stored.MerkleRoot,
		Nonce:        stored.Nonce,
		Hash:         stored.Hash,
	}, nil
}
