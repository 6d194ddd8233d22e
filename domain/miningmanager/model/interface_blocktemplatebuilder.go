package model

import (
	"github.com/kaspanet/blockminer/domain/consensus/model/externalapi"
)

// BlockTemplateBuilder builds block templates for miners to consume
type BlockTemplateBuilder interface {
	GetBlockTemplate(previousHash string) *externalapi.BlockTemplate
}
