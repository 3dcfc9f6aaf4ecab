package blockchain

import (
	"context"
	"fmt"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/gagliardetto/solana-go/rpc/ws"
	"go.uber.org/zap"

	"github.com/swapkit-labs/sdk-go/types"
)

type signatureSubscription interface {
	Recv(ctx context.Context) (*ws.SignatureResult, error)
	Unsubscribe()
}

// signatureSubscriber opens a push notification for one signature.
type signatureSubscriber interface {
	Subscribe(ctx context.Context, sig solana.Signature, commitment rpc.CommitmentType) (signatureSubscription, error)
}

type wsSubscriber struct {
	endpoint string
}

func (s *wsSubscriber) Subscribe(ctx context.Context, sig solana.Signature, commitment rpc.CommitmentType) (signatureSubscription, error) {
	client, err := ws.Connect(ctx, s.endpoint)
	if err != nil {
		return nil, fmt.Errorf("ws connect: %w", err)
	}
	sub, err := client.SignatureSubscribe(sig, commitment)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("signature subscribe: %w", err)
	}
	return &wsSubscription{client: client, sub: sub}, nil
}

// wsSubscription owns its websocket connection.
type wsSubscription struct {
	client *ws.Client
	sub    *ws.SignatureSubscription
}

func (s *wsSubscription) Recv(ctx context.Context) (*ws.SignatureResult, error) {
	return s.sub.Recv(ctx)
}

func (s *wsSubscription) Unsubscribe() {
	s.sub.Unsubscribe()
	s.client.Close()
}

type confirmation struct {
	status types.ConfirmationStatus
	err    error
}

// ConfirmTransaction waits for a signature notification at commitment while
// watching block height. Once the height passes window.LastValidBlockHeight
// it returns an error wrapping types.ErrBlockHeightExceeded. A websocket that
// cannot be opened or drops leaves only the height watch running.
func (c *Client) ConfirmTransaction(ctx context.Context, sig solana.Signature, window types.BlockhashWithExpiry, commitment rpc.CommitmentType) (types.ConfirmationStatus, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	logger := c.logger.With(zap.Stringer("signature", sig))
	done := make(chan confirmation, 2)
	go func() {
		done <- c.watchSignature(ctx, sig, commitment, logger)
	}()
	go func() {
		done <- confirmation{err: c.watchBlockHeight(ctx, sig, window, commitment, logger)}
	}()

	select {
	case res := <-done:
		return res.status, res.err
	case <-ctx.Done():
		return types.ConfirmationNone, ctx.Err()
	}
}

func (c *Client) watchSignature(ctx context.Context, sig solana.Signature, commitment rpc.CommitmentType, logger *zap.Logger) confirmation {
	sub, err := c.subscriber.Subscribe(ctx, sig, commitment)
	if err != nil {
		if ctx.Err() == nil {
			logger.Warn("signature subscription unavailable", zap.Error(err))
		}
		<-ctx.Done()
		return confirmation{err: ctx.Err()}
	}
	defer sub.Unsubscribe()

	res, err := sub.Recv(ctx)
	if err != nil || res == nil {
		if ctx.Err() == nil {
			logger.Warn("signature subscription closed", zap.Error(err))
		}
		<-ctx.Done()
		return confirmation{err: ctx.Err()}
	}

	if res.Value.Err != nil {
		logger.Warn("transaction failed on chain",
			zap.Uint64("slot", res.Context.Slot),
			zap.Any("err", res.Value.Err))
	}
	return confirmation{status: types.ParseConfirmationStatus(string(commitment))}
}

func (c *Client) watchBlockHeight(ctx context.Context, sig solana.Signature, window types.BlockhashWithExpiry, commitment rpc.CommitmentType, logger *zap.Logger) error {
	ticker := time.NewTicker(c.config.SendTx.BlockHeightPollInterval)
	defer ticker.Stop()

	for {
		height, err := c.rpc.GetBlockHeight(ctx, commitment)
		switch {
		case err != nil && ctx.Err() == nil:
			logger.Debug("get block height", zap.Error(err))
		case err == nil && window.Expired(height):
			return fmt.Errorf("signature %s: block height %d exceeds %d: %w",
				sig, height, window.LastValidBlockHeight, types.ErrBlockHeightExceeded)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
