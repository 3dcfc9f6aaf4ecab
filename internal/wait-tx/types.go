package waittx

import (
	"context"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"

	"github.com/swapkit-labs/sdk-go/types"
)

// Connection is the subset of a Solana RPC connection the waiter drives.
// Implementations must be safe for concurrent use and honour ctx.
type Connection interface {
	SendRawTransaction(ctx context.Context, raw []byte, opts rpc.TransactionOpts) (solana.Signature, error)
	// ConfirmTransaction blocks until sig reaches commitment. It returns an error
	// wrapping types.ErrBlockHeightExceeded once the window has elapsed.
	ConfirmTransaction(ctx context.Context, sig solana.Signature, window types.BlockhashWithExpiry, commitment rpc.CommitmentType) (types.ConfirmationStatus, error)
	// GetSignatureStatus returns nil when the node has no status for sig.
	GetSignatureStatus(ctx context.Context, sig solana.Signature, searchHistory bool) (*rpc.SignatureStatusesResult, error)
	GetTransaction(ctx context.Context, sig solana.Signature, opts *rpc.GetTransactionOpts) (*rpc.GetTransactionResult, error)
}

// Source abstracts a confirmation strategy (subscriber, poller).
type Source interface {
	Wait(ctx context.Context, sig solana.Signature, window types.BlockhashWithExpiry) (types.Outcome, error)
}

// Backoff controls retry cadence.
type Backoff interface {
	Next(attempt int) time.Duration
}
