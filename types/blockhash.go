package types

import "github.com/gagliardetto/solana-go"

// BlockhashWithExpiry is the recent blockhash a transaction was signed
// against together with the last block height at which it stays valid.
type BlockhashWithExpiry struct {
	Blockhash            solana.Hash
	LastValidBlockHeight uint64
}

// WithMargin returns a copy whose LastValidBlockHeight is lowered by margin,
// saturating at zero.
func (b BlockhashWithExpiry) WithMargin(margin uint64) BlockhashWithExpiry {
	if margin >= b.LastValidBlockHeight {
		b.LastValidBlockHeight = 0
		return b
	}
	b.LastValidBlockHeight -= margin
	return b
}

// Expired reports whether height is past the validity window.
func (b BlockhashWithExpiry) Expired(height uint64) bool {
	return height > b.LastValidBlockHeight
}
