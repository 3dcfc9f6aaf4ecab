package waittx

import (
	"context"
	"fmt"
	"time"

	"github.com/gagliardetto/solana-go"
	"go.uber.org/zap"

	"github.com/swapkit-labs/sdk-go/types"
)

// poller checks signature status on a fixed interval. It covers a websocket
// subscription that died without reporting an error.
type poller struct {
	conn      Connection
	interval  time.Duration
	threshold types.ConfirmationStatus
	logger    *zap.Logger
}

func newPoller(conn Connection, interval time.Duration, threshold types.ConfirmationStatus, logger *zap.Logger) *poller {
	return &poller{
		conn:      conn,
		interval:  interval,
		threshold: threshold,
		logger:    logger,
	}
}

// Wait polls until the signature reaches the threshold or ctx ends. Status
// lookups skip the transaction history to keep each call cheap. RPC errors
// are returned as is.
func (p *poller) Wait(ctx context.Context, sig solana.Signature, _ types.BlockhashWithExpiry) (types.Outcome, error) {
	for {
		if err := wait(ctx, p.interval); err != nil {
			return types.OutcomeUnknown, err
		}

		st, err := p.conn.GetSignatureStatus(ctx, sig, false)
		if err != nil {
			if ctx.Err() != nil {
				return types.OutcomeUnknown, ctx.Err()
			}
			return types.OutcomeUnknown, fmt.Errorf("get signature status: %w", err)
		}
		if st == nil {
			continue
		}

		status := types.ParseConfirmationStatus(string(st.ConfirmationStatus))
		p.logger.Debug("signature status", zap.Stringer("status", status), zap.Uint64("slot", st.Slot))
		if status.AtLeast(p.threshold) {
			return types.OutcomeConfirmed, nil
		}
	}
}
