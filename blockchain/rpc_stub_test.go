package blockchain

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/gagliardetto/solana-go/rpc/ws"
	"github.com/stretchr/testify/require"

	clientconfig "github.com/swapkit-labs/sdk-go/client/config"
)

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// rpcHandler answers one JSON-RPC method. call counts from 1.
type rpcHandler func(call int, params json.RawMessage) (interface{}, *rpcError)

type rpcServer struct {
	mu       sync.Mutex
	handlers map[string]rpcHandler
	calls    map[string]int
}

func newRPCServer(t *testing.T, handlers map[string]rpcHandler) (*rpcServer, string) {
	t.Helper()
	s := &rpcServer{handlers: handlers, calls: map[string]int{}}
	srv := httptest.NewServer(s)
	t.Cleanup(srv.Close)
	return s, srv.URL
}

func (s *rpcServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID     json.RawMessage `json:"id"`
		Method string          `json:"method"`
		Params json.RawMessage `json:"params"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	s.calls[req.Method]++
	call := s.calls[req.Method]
	handler := s.handlers[req.Method]
	s.mu.Unlock()

	resp := map[string]interface{}{"jsonrpc": "2.0", "id": req.ID}
	if handler == nil {
		resp["error"] = rpcError{Code: -32601, Message: "method not found"}
	} else if result, rpcErr := handler(call, req.Params); rpcErr != nil {
		resp["error"] = rpcErr
	} else {
		resp["result"] = result
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

func (s *rpcServer) callCount(method string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[method]
}

func blockHeight(h uint64) rpcHandler {
	return func(int, json.RawMessage) (interface{}, *rpcError) {
		return h, nil
	}
}

func signatureStatus(status rpc.ConfirmationStatusType) rpcHandler {
	return func(int, json.RawMessage) (interface{}, *rpcError) {
		return map[string]interface{}{
			"context": map[string]interface{}{"slot": 5},
			"value": []interface{}{map[string]interface{}{
				"slot":               5,
				"confirmations":      nil,
				"err":                nil,
				"confirmationStatus": status,
			}},
		}, nil
	}
}

func echoSignature(sig solana.Signature) rpcHandler {
	return func(int, json.RawMessage) (interface{}, *rpcError) {
		return sig.String(), nil
	}
}

type stubSubscription struct {
	result *ws.SignatureResult
	delay  time.Duration

	mu           sync.Mutex
	unsubscribed bool
}

func (s *stubSubscription) Recv(ctx context.Context) (*ws.SignatureResult, error) {
	if s.result == nil {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(s.delay):
		return s.result, nil
	}
}

func (s *stubSubscription) Unsubscribe() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.unsubscribed = true
}

func (s *stubSubscription) wasUnsubscribed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.unsubscribed
}

type stubSubscriber struct {
	sub *stubSubscription
	err error
}

func (s *stubSubscriber) Subscribe(ctx context.Context, sig solana.Signature, commitment rpc.CommitmentType) (signatureSubscription, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.sub, nil
}

func fastSendTxConfig() clientconfig.SendTxConfig {
	cfg := clientconfig.DefaultSendTxConfig()
	cfg.ResendInterval = 5 * time.Millisecond
	cfg.PollInterval = 5 * time.Millisecond
	cfg.BlockHeightPollInterval = 5 * time.Millisecond
	cfg.FetchMinBackoff = time.Millisecond
	cfg.FetchBackoffMaxInterval = -1
	return cfg
}

func newTestClient(t *testing.T, endpoint string, sub signatureSubscriber) *Client {
	t.Helper()
	c, err := New(context.Background(), Config{
		RPCEndpoint: endpoint,
		Timeout:     time.Second,
		SendTx:      fastSendTxConfig(),
	}, nil, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	c.subscriber = sub
	return c
}

func testSignature() solana.Signature {
	var sig solana.Signature
	for i := range sig {
		sig[i] = byte(64 - i)
	}
	return sig
}
