package waittx

import (
	"context"
	"errors"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"go.uber.org/zap"

	"github.com/swapkit-labs/sdk-go/types"
)

// subscriber delegates to the connection's push confirmation with a block
// height window tightened by margin, so the local wait gives up before the
// cluster's own expiry.
type subscriber struct {
	conn       Connection
	commitment rpc.CommitmentType
	threshold  types.ConfirmationStatus
	margin     uint64
	logger     *zap.Logger
}

func newSubscriber(conn Connection, commitment rpc.CommitmentType, margin uint64, logger *zap.Logger) *subscriber {
	return &subscriber{
		conn:       conn,
		commitment: commitment,
		threshold:  types.ParseConfirmationStatus(string(commitment)),
		margin:     margin,
		logger:     logger,
	}
}

func (s *subscriber) Wait(ctx context.Context, sig solana.Signature, window types.BlockhashWithExpiry) (types.Outcome, error) {
	tightened := window.WithMargin(s.margin)
	s.logger.Debug("confirming via subscription",
		zap.Uint64("last_valid_block_height", tightened.LastValidBlockHeight))

	status, err := s.conn.ConfirmTransaction(ctx, sig, tightened, s.commitment)
	switch {
	case err == nil && status.AtLeast(s.threshold):
		return types.OutcomeConfirmed, nil
	case err == nil:
		return types.OutcomeUnknown, fmt.Errorf("confirm transaction: reached %s, want %s", status, s.threshold)
	case errors.Is(err, types.ErrBlockHeightExceeded):
		return types.OutcomeExpired, nil
	case ctx.Err() != nil:
		return types.OutcomeUnknown, ctx.Err()
	default:
		return types.OutcomeUnknown, fmt.Errorf("confirm transaction: %w", err)
	}
}
