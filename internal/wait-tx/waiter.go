package waittx

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"go.uber.org/zap"

	clientconfig "github.com/swapkit-labs/sdk-go/client/config"
	"github.com/swapkit-labs/sdk-go/internal/metrics"
	"github.com/swapkit-labs/sdk-go/types"
)

const (
	strategySubscriber = "subscriber"
	strategyPoller     = "poller"
)

// Waiter submits a signed transaction, keeps re-broadcasting it, races a
// subscription against status polling and fetches the final record.
type Waiter struct {
	conn         Connection
	cfg          clientconfig.SendTxConfig
	subscriber   Source
	poller       Source
	resender     *resender
	fetchBackoff Backoff
	logger       *zap.Logger
	metrics      *metrics.Collector
}

// New creates a waiter based on the provided config and connection. logger
// and m may be nil.
func New(cfg clientconfig.SendTxConfig, conn Connection, logger *zap.Logger, m *metrics.Collector) (*Waiter, error) {
	if conn == nil {
		return nil, fmt.Errorf("connection is required")
	}

	normalized := cfg
	clientconfig.ApplySendTxDefaults(&normalized)
	if err := normalized.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrInvalidConfig, err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	threshold := types.ParseConfirmationStatus(string(normalized.Commitment))
	return &Waiter{
		conn:       conn,
		cfg:        normalized,
		subscriber: newSubscriber(conn, normalized.Commitment, normalized.BlockHeightMargin, logger.Named(strategySubscriber)),
		poller:     newPoller(conn, normalized.PollInterval, threshold, logger.Named(strategyPoller)),
		resender: &resender{
			conn:      conn,
			interval:  normalized.ResendInterval,
			opts:      sendOptions(normalized),
			warnLimit: normalized.ResendWarnLimit,
			logger:    logger.Named("resender"),
			metrics:   m,
		},
		fetchBackoff: NewFetchBackoff(normalized),
		logger:       logger,
		metrics:      m,
	}, nil
}

func sendOptions(cfg clientconfig.SendTxConfig) rpc.TransactionOpts {
	return rpc.TransactionOpts{
		SkipPreflight:       !cfg.EnablePreflight,
		PreflightCommitment: cfg.Commitment,
	}
}

// SendAndConfirm submits raw and waits for it. It returns the confirmed
// transaction, or nil with a nil error when the block height window elapsed
// or the record could not be fetched in time.
func (w *Waiter) SendAndConfirm(ctx context.Context, raw []byte, blockhash types.BlockhashWithExpiry) (*rpc.GetTransactionResult, error) {
	res, err := w.SendAndConfirmDetailed(ctx, raw, blockhash)
	if err != nil {
		return nil, err
	}
	return res.Transaction, nil
}

// SendAndConfirmDetailed is SendAndConfirm with details on how the wait ended.
func (w *Waiter) SendAndConfirmDetailed(ctx context.Context, raw []byte, blockhash types.BlockhashWithExpiry) (types.SendResult, error) {
	if len(raw) == 0 {
		return types.SendResult{}, fmt.Errorf("empty transaction payload")
	}
	payload := bytes.Clone(raw)

	sig, err := w.conn.SendRawTransaction(ctx, payload, sendOptions(w.cfg))
	if err != nil {
		w.metrics.Submission("error")
		return types.SendResult{}, fmt.Errorf("send transaction: %w", err)
	}
	logger := w.logger.With(zap.Stringer("signature", sig))
	logger.Debug("transaction submitted",
		zap.Uint64("last_valid_block_height", blockhash.LastValidBlockHeight))

	result := types.SendResult{Signature: sig}

	race := w.confirm(ctx, payload, sig, blockhash)
	result.Strategy = race.Source
	if race.Err != nil {
		w.metrics.Submission("error")
		return result, race.Err
	}
	w.metrics.RaceWin(race.Source)
	result.Outcome = race.Outcome

	if race.Outcome == types.OutcomeExpired {
		logger.Info("block height exceeded before confirmation")
		w.metrics.Submission(types.OutcomeExpired.String())
		return result, nil
	}

	got, err := w.fetch(ctx, sig)
	result.FetchAttempts = got.Attempts
	w.metrics.FetchAttempts(got.Attempts)
	if err != nil {
		w.metrics.Submission("error")
		return result, err
	}
	if !got.Found {
		logger.Warn("confirmed transaction not returned by rpc node", zap.Int("attempts", got.Attempts))
		w.metrics.Submission("not_found")
		return result, nil
	}

	result.Transaction = got.Value
	logger.Info("transaction confirmed",
		zap.String("strategy", race.Source),
		zap.Uint64("slot", got.Value.Slot))
	w.metrics.Submission(types.OutcomeConfirmed.String())
	return result, nil
}

// confirm runs the resender alongside the confirmation race. Everything it
// spawns shares one context, cancelled on every return path; the resender
// has exited by the time confirm returns.
func (w *Waiter) confirm(ctx context.Context, payload []byte, sig solana.Signature, blockhash types.BlockhashWithExpiry) raceResult {
	confirmCtx, cancel := context.WithCancel(ctx)
	var wg sync.WaitGroup
	defer func() {
		cancel()
		wg.Wait()
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		w.resender.Run(confirmCtx, payload)
	}()

	return raceConfirmation(confirmCtx, sig, blockhash,
		strategy{name: strategySubscriber, src: w.subscriber},
		strategy{name: strategyPoller, src: w.poller},
	)
}

// fetch retrieves the confirmed transaction, tolerating nodes that lag the
// notification that reported it.
func (w *Waiter) fetch(ctx context.Context, sig solana.Signature) (fetched[*rpc.GetTransactionResult], error) {
	maxVersion := w.cfg.MaxSupportedTransactionVersion
	opts := &rpc.GetTransactionOpts{
		Encoding:                       solana.EncodingBase64,
		Commitment:                     w.cfg.Commitment,
		MaxSupportedTransactionVersion: &maxVersion,
	}
	return fetchWithRetry(ctx, w.cfg.FetchMaxAttempts, w.fetchBackoff,
		func(ctx context.Context) (*rpc.GetTransactionResult, bool, error) {
			tx, err := w.conn.GetTransaction(ctx, sig, opts)
			if errors.Is(err, rpc.ErrNotFound) || errors.Is(err, types.ErrNotFound) {
				return nil, false, nil
			}
			if err != nil {
				return nil, false, fmt.Errorf("get transaction: %w", err)
			}
			return tx, tx != nil, nil
		})
}
