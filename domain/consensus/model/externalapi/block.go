package externalapi

// BlockTemplate is an unsealed block: its transactions and previous hash are
// fixed, while its nonce changes as it is being mined.
type BlockTemplate struct {
	Transactions []*DomainTransaction
	PreviousHash string
	Nonce        uint64

	sealed bool
}

// NewBlockTemplate returns an unsealed block that spends the given
// transactions on top of previousHash
func NewBlockTemplate(previousHash string, transactions []*DomainTransaction) *BlockTemplate {
	return &BlockTemplate{
		Transactions: transactions,
		PreviousHash: previousHash,
	}
}

// IsSealed returns whether a block was already mined out of this template
func (template *BlockTemplate) IsSealed() bool {
	return template.sealed
}

// Seal marks the template as mined and returns the resulting block
func (template *BlockTemplate) Seal(merkleRoot string, nonce uint64, hash string) *DomainBlock {
	template.Nonce = nonce
	template.sealed = true
	return &DomainBlock{
		Transactions: template.Transactions,
		PreviousHash: template.PreviousHash,
		MerkleRoot:   merkleRoot,
		Nonce:        nonce,
		Hash:         hash,
	}
}

// DomainBlock is a sealed block
type DomainBlock struct {
	Transactions []*DomainTransaction
	PreviousHash string
	MerkleRoot   string
	Nonce        uint64
	Hash         string
}

// IsSealed returns whether the block carries a hash
func (block *DomainBlock) IsSealed() bool {
	return block != nil && block.Hash != ""
}

// TransactionIDs returns the IDs of the block's transactions in block order
func (block *DomainBlock) TransactionIDs() []string {
	ids := make([]string, len(block.Transactions))
	for i, tx := range block.Transactions {
		ids[i] = tx.ID()
	}
	return ids
}
