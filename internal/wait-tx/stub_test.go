package waittx

import (
	"bytes"
	"context"
	"sync"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"

	clientconfig "github.com/swapkit-labs/sdk-go/client/config"
	"github.com/swapkit-labs/sdk-go/types"
)

type txStep struct {
	tx  *rpc.GetTransactionResult
	err error
}

type stubConn struct {
	mu sync.Mutex

	sig       solana.Signature
	sendErr   error
	resendErr error
	sent      [][]byte

	confirm func(ctx context.Context, window types.BlockhashWithExpiry) (types.ConfirmationStatus, error)
	windows []types.BlockhashWithExpiry

	status      func(call int) (*rpc.SignatureStatusesResult, error)
	statusCalls int

	txSteps []txStep
	txCalls int
}

func (s *stubConn) SendRawTransaction(ctx context.Context, raw []byte, opts rpc.TransactionOpts) (solana.Signature, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, bytes.Clone(raw))
	if len(s.sent) == 1 {
		return s.sig, s.sendErr
	}
	return s.sig, s.resendErr
}

func (s *stubConn) ConfirmTransaction(ctx context.Context, sig solana.Signature, window types.BlockhashWithExpiry, commitment rpc.CommitmentType) (types.ConfirmationStatus, error) {
	s.mu.Lock()
	s.windows = append(s.windows, window)
	confirm := s.confirm
	s.mu.Unlock()
	if confirm == nil {
		<-ctx.Done()
		return types.ConfirmationNone, ctx.Err()
	}
	return confirm(ctx, window)
}

func (s *stubConn) GetSignatureStatus(ctx context.Context, sig solana.Signature, searchHistory bool) (*rpc.SignatureStatusesResult, error) {
	s.mu.Lock()
	s.statusCalls++
	call := s.statusCalls
	status := s.status
	s.mu.Unlock()
	if status == nil {
		return nil, nil
	}
	return status(call)
}

func (s *stubConn) GetTransaction(ctx context.Context, sig solana.Signature, opts *rpc.GetTransactionOpts) (*rpc.GetTransactionResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.txCalls
	s.txCalls++
	if len(s.txSteps) == 0 {
		return nil, rpc.ErrNotFound
	}
	if idx >= len(s.txSteps) {
		idx = len(s.txSteps) - 1
	}
	return s.txSteps[idx].tx, s.txSteps[idx].err
}

func (s *stubConn) sendCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sent)
}

func (s *stubConn) txCallCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.txCalls
}

func confirmedStatus() (*rpc.SignatureStatusesResult, error) {
	return &rpc.SignatureStatusesResult{Slot: 42, ConfirmationStatus: rpc.ConfirmationStatusConfirmed}, nil
}

func blockUntilDone(ctx context.Context, _ types.BlockhashWithExpiry) (types.ConfirmationStatus, error) {
	<-ctx.Done()
	return types.ConfirmationNone, ctx.Err()
}

// fastConfig keeps every timer in the millisecond range.
func fastConfig() clientconfig.SendTxConfig {
	cfg := clientconfig.DefaultSendTxConfig()
	cfg.ResendInterval = 5 * time.Millisecond
	cfg.PollInterval = 5 * time.Millisecond
	cfg.FetchMinBackoff = time.Millisecond
	cfg.FetchBackoffMaxInterval = -1
	return cfg
}

func testSig() solana.Signature {
	var sig solana.Signature
	for i := range sig {
		sig[i] = byte(i + 1)
	}
	return sig
}
