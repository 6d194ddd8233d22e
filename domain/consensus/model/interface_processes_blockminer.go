package model

import (
	"context"
	"math/big"

	"github.com/kaspanet/blockminer/domain/consensus/model/externalapi"
)

// BlockMiner searches for a nonce that seals a block template under a
// difficulty target
type BlockMiner interface {
	Mine(ctx context.Context, template *externalapi.BlockTemplate,
		target *big.Int) (*externalapi.DomainBlock, error)
	HashesTried() uint64
}
