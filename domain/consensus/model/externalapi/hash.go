package externalapi

// HashStringLength is the length of a hex-encoded 256-bit digest
const HashStringLength = 64

// GenesisHash is the previous hash of the first block in a ledger
const GenesisHash = "0000000000000000000000000000000000000000000000000000000000000000"
