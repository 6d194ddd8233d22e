package model

import "github.com/kaspanet/blockminer/domain/consensus/model/externalapi"

// BlockStore persists the blocks of a ledger by height
type BlockStore interface {
	StoreBlock(height uint64, block *externalapi.DomainBlock) error
	Block(height uint64) (*externalapi.DomainBlock, error)
	Count() (uint64, error)
	Close() error
}
