package blockchain

import (
	"context"
	"errors"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"

	"github.com/swapkit-labs/sdk-go/types"
)

// SendRawTransaction broadcasts already signed transaction bytes.
func (c *Client) SendRawTransaction(ctx context.Context, raw []byte, opts rpc.TransactionOpts) (solana.Signature, error) {
	sig, err := c.rpc.SendRawTransactionWithOpts(ctx, raw, opts)
	if err != nil {
		return solana.Signature{}, fmt.Errorf("send raw transaction: %w", err)
	}
	return sig, nil
}

// GetSignatureStatus returns the status of a single signature, or nil when
// the node does not know it.
func (c *Client) GetSignatureStatus(ctx context.Context, sig solana.Signature, searchHistory bool) (*rpc.SignatureStatusesResult, error) {
	resp, err := c.rpc.GetSignatureStatuses(ctx, searchHistory, sig)
	if err != nil {
		return nil, fmt.Errorf("get signature statuses: %w", err)
	}
	if resp == nil || len(resp.Value) == 0 {
		return nil, nil
	}
	return resp.Value[0], nil
}

// GetTransaction fetches a transaction by signature. A missing transaction
// is reported as types.ErrNotFound.
func (c *Client) GetTransaction(ctx context.Context, sig solana.Signature, opts *rpc.GetTransactionOpts) (*rpc.GetTransactionResult, error) {
	tx, err := c.rpc.GetTransaction(ctx, sig, opts)
	if errors.Is(err, rpc.ErrNotFound) || (err == nil && tx == nil) {
		return nil, fmt.Errorf("transaction %s: %w", sig, types.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get transaction: %w", err)
	}
	return tx, nil
}

// GetTx fetches a transaction at the client's send commitment, accepting
// versioned transactions.
func (c *Client) GetTx(ctx context.Context, sig solana.Signature) (*rpc.GetTransactionResult, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	maxVersion := c.config.SendTx.MaxSupportedTransactionVersion
	return c.GetTransaction(ctx, sig, &rpc.GetTransactionOpts{
		Encoding:                       solana.EncodingBase64,
		Commitment:                     c.config.SendTx.Commitment,
		MaxSupportedTransactionVersion: &maxVersion,
	})
}

// LatestBlockhash returns the latest blockhash and its expiry height.
func (c *Client) LatestBlockhash(ctx context.Context) (types.BlockhashWithExpiry, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	resp, err := c.rpc.GetLatestBlockhash(ctx, c.config.Commitment)
	if err != nil {
		return types.BlockhashWithExpiry{}, fmt.Errorf("get latest blockhash: %w", err)
	}
	if resp == nil || resp.Value == nil {
		return types.BlockhashWithExpiry{}, fmt.Errorf("empty latest blockhash response")
	}
	return types.BlockhashWithExpiry{
		Blockhash:            resp.Value.Blockhash,
		LastValidBlockHeight: resp.Value.LastValidBlockHeight,
	}, nil
}

// SendAndConfirmRawTransaction submits raw, re-broadcasting it until it is
// confirmed or blockhash expires, then returns the confirmed transaction.
// A nil transaction with a nil error means expiry, or a confirmed
// transaction the node did not return in time.
func (c *Client) SendAndConfirmRawTransaction(ctx context.Context, raw []byte, blockhash types.BlockhashWithExpiry) (*rpc.GetTransactionResult, error) {
	return c.waiter.SendAndConfirm(ctx, raw, blockhash)
}

// SendAndConfirmRawTransactionDetailed is SendAndConfirmRawTransaction reporting how
// the wait ended.
func (c *Client) SendAndConfirmRawTransactionDetailed(ctx context.Context, raw []byte, blockhash types.BlockhashWithExpiry) (types.SendResult, error) {
	return c.waiter.SendAndConfirmDetailed(ctx, raw, blockhash)
}
