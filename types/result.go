package types

import (
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
)

// SendResult describes a submitted transaction and how its wait ended.
type SendResult struct {
	Signature solana.Signature
	Outcome   Outcome
	// Strategy names the confirmation strategy that resolved first.
	Strategy string
	// FetchAttempts is the number of GetTransaction calls made after confirmation.
	FetchAttempts int
	// Transaction is nil when the transaction expired or could not be fetched.
	Transaction *rpc.GetTransactionResult
}

// Found reports whether the final transaction record was retrieved.
func (r SendResult) Found() bool {
	return r.Transaction != nil
}
