package blockchain

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/gagliardetto/solana-go/rpc"
	"github.com/gagliardetto/solana-go/rpc/ws"
	"github.com/stretchr/testify/require"

	"github.com/swapkit-labs/sdk-go/types"
)

var testWindow = types.BlockhashWithExpiry{LastValidBlockHeight: 1000}

func TestConfirmTransactionViaSubscription(t *testing.T) {
	_, endpoint := newRPCServer(t, map[string]rpcHandler{
		"getBlockHeight": blockHeight(10),
	})
	sub := &stubSubscription{result: &ws.SignatureResult{}, delay: 10 * time.Millisecond}
	c := newTestClient(t, endpoint, &stubSubscriber{sub: sub})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	status, err := c.ConfirmTransaction(ctx, testSignature(), testWindow, rpc.CommitmentConfirmed)
	require.NoError(t, err)
	require.Equal(t, types.ConfirmationConfirmed, status)
	require.True(t, sub.wasUnsubscribed())
}

func TestConfirmTransactionReportsOnChainFailureAsConfirmed(t *testing.T) {
	_, endpoint := newRPCServer(t, map[string]rpcHandler{
		"getBlockHeight": blockHeight(10),
	})
	res := &ws.SignatureResult{}
	res.Value.Err = map[string]interface{}{"InstructionError": []interface{}{0, "Custom"}}
	c := newTestClient(t, endpoint, &stubSubscriber{sub: &stubSubscription{result: res}})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	status, err := c.ConfirmTransaction(ctx, testSignature(), testWindow, rpc.CommitmentFinalized)
	require.NoError(t, err)
	require.Equal(t, types.ConfirmationFinalized, status)
}

func TestConfirmTransactionExpiresWhenBlockHeightPassesWindow(t *testing.T) {
	srv, endpoint := newRPCServer(t, map[string]rpcHandler{
		"getBlockHeight": func(call int, _ json.RawMessage) (interface{}, *rpcError) {
			if call < 3 {
				return uint64(999), nil
			}
			return uint64(1001), nil
		},
	})
	c := newTestClient(t, endpoint, &stubSubscriber{sub: &stubSubscription{}})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	_, err := c.ConfirmTransaction(ctx, testSignature(), testWindow, rpc.CommitmentConfirmed)
	require.ErrorIs(t, err, types.ErrBlockHeightExceeded)
	require.GreaterOrEqual(t, srv.callCount("getBlockHeight"), 3)
}

func TestConfirmTransactionHeightEqualToWindowIsNotExpired(t *testing.T) {
	_, endpoint := newRPCServer(t, map[string]rpcHandler{
		"getBlockHeight": blockHeight(1000),
	})
	c := newTestClient(t, endpoint, &stubSubscriber{err: errors.New("dial refused")})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := c.ConfirmTransaction(ctx, testSignature(), testWindow, rpc.CommitmentConfirmed)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestConfirmTransactionSwallowsBlockHeightErrors(t *testing.T) {
	srv, endpoint := newRPCServer(t, map[string]rpcHandler{
		"getBlockHeight": func(int, json.RawMessage) (interface{}, *rpcError) {
			return nil, &rpcError{Code: -32005, Message: "node is behind"}
		},
	})
	sub := &stubSubscription{result: &ws.SignatureResult{}, delay: 30 * time.Millisecond}
	c := newTestClient(t, endpoint, &stubSubscriber{sub: sub})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	status, err := c.ConfirmTransaction(ctx, testSignature(), testWindow, rpc.CommitmentConfirmed)
	require.NoError(t, err)
	require.Equal(t, types.ConfirmationConfirmed, status)
	require.Greater(t, srv.callCount("getBlockHeight"), 1)
}

func TestConfirmTransactionDegradesToHeightWatchWithoutWebsocket(t *testing.T) {
	_, endpoint := newRPCServer(t, map[string]rpcHandler{
		"getBlockHeight": blockHeight(5000),
	})
	c := newTestClient(t, endpoint, &stubSubscriber{err: errors.New("dial refused")})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	_, err := c.ConfirmTransaction(ctx, testSignature(), testWindow, rpc.CommitmentConfirmed)
	require.ErrorIs(t, err, types.ErrBlockHeightExceeded)
}
