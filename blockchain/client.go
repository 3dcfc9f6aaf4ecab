package blockchain

import (
	"context"
	"fmt"
	"time"

	"github.com/gagliardetto/solana-go/rpc"
	"go.uber.org/zap"

	clientconfig "github.com/swapkit-labs/sdk-go/client/config"
	"github.com/swapkit-labs/sdk-go/internal/metrics"
	waittx "github.com/swapkit-labs/sdk-go/internal/wait-tx"
)

// Config for blockchain client
type Config struct {
	RPCEndpoint string
	WSEndpoint  string
	Commitment  rpc.CommitmentType
	Timeout     time.Duration
	SendTx      clientconfig.SendTxConfig
}

// Client provides access to cluster RPC and transaction submission.
type Client struct {
	rpc        *rpc.Client
	subscriber signatureSubscriber
	waiter     *waittx.Waiter
	config     Config
	logger     *zap.Logger
}

// New creates a new blockchain client. logger and m may be nil.
func New(ctx context.Context, cfg Config, logger *zap.Logger, m *metrics.Collector) (*Client, error) {
	if cfg.RPCEndpoint == "" {
		return nil, fmt.Errorf("rpc endpoint is required")
	}
	if cfg.Commitment == "" {
		cfg.Commitment = rpc.CommitmentConfirmed
	}
	clientconfig.ApplySendTxDefaults(&cfg.SendTx)

	wsEndpoint := cfg.WSEndpoint
	if wsEndpoint == "" {
		derived, err := WebsocketURL(cfg.RPCEndpoint)
		if err != nil {
			return nil, err
		}
		wsEndpoint = derived
	}
	cfg.WSEndpoint = wsEndpoint

	if logger == nil {
		logger = zap.NewNop()
	}

	c := &Client{
		rpc:        rpc.New(cfg.RPCEndpoint),
		subscriber: &wsSubscriber{endpoint: wsEndpoint},
		config:     cfg,
		logger:     logger,
	}

	waiter, err := waittx.New(cfg.SendTx, c, logger.Named("waittx"), m)
	if err != nil {
		return nil, fmt.Errorf("init waiter: %w", err)
	}
	c.waiter = waiter
	return c, nil
}

// Close closes the blockchain client connection
func (c *Client) Close() error {
	if c.rpc != nil {
		return c.rpc.Close()
	}
	return nil
}

// RPC exposes the underlying RPC client for specialized queries.
func (c *Client) RPC() *rpc.Client {
	return c.rpc
}

// Config returns the normalized client configuration.
func (c *Client) Config() Config {
	return c.config
}

func (c *Client) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.config.Timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, c.config.Timeout)
}
