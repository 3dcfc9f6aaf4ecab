package waittx

import (
	"context"
	"time"

	"github.com/gagliardetto/solana-go/rpc"
	"go.uber.org/zap"

	"github.com/swapkit-labs/sdk-go/internal/metrics"
)

// resender re-broadcasts the same signed bytes until its context ends.
// Failures are logged and counted, never returned.
type resender struct {
	conn      Connection
	interval  time.Duration
	opts      rpc.TransactionOpts
	warnLimit int
	logger    *zap.Logger
	metrics   *metrics.Collector
}

// Run blocks until ctx is done.
func (r *resender) Run(ctx context.Context, raw []byte) {
	failures := 0
	for {
		if err := wait(ctx, r.interval); err != nil {
			return
		}

		_, err := r.conn.SendRawTransaction(ctx, raw, r.opts)
		if ctx.Err() != nil {
			return
		}
		r.metrics.Resend(err != nil)
		if err == nil {
			continue
		}

		failures++
		if r.warnLimit < 0 || failures <= r.warnLimit {
			r.logger.Warn("failed to resend transaction", zap.Int("failures", failures), zap.Error(err))
		} else {
			r.logger.Debug("failed to resend transaction", zap.Int("failures", failures), zap.Error(err))
		}
	}
}
