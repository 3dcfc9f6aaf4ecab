package client

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/swapkit-labs/sdk-go/blockchain"
	"github.com/swapkit-labs/sdk-go/internal/metrics"
	sdklog "github.com/swapkit-labs/sdk-go/pkg/log"
)

// Client provides unified access to a Solana cluster
type Client struct {
	// High-level modules
	Blockchain *blockchain.Client

	// Configuration
	config *Config
	logger *zap.Logger
}

// New creates a new unified client
func New(ctx context.Context, cfg Config, opts ...Option) (*Client, error) {
	// Apply options
	for _, opt := range opts {
		opt(&cfg)
	}

	// Validate config
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	collector, err := metrics.New(cfg.Metrics)
	if err != nil {
		return nil, fmt.Errorf("failed to register metrics: %w", err)
	}

	blockchainClient, err := blockchain.New(ctx, blockchain.Config{
		RPCEndpoint: cfg.RPCEndpoint,
		WSEndpoint:  cfg.WSEndpoint,
		Commitment:  cfg.Commitment,
		Timeout:     cfg.RequestTimeout,
		SendTx:      cfg.SendTx,
	}, sdklog.Named(cfg.Logger, "blockchain"), collector)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize blockchain client: %w", err)
	}

	return &Client{
		Blockchain: blockchainClient,
		config:     &cfg,
		logger:     sdklog.Named(cfg.Logger, "client"),
	}, nil
}

// Close releases all resources
func (c *Client) Close() error {
	if c.Blockchain != nil {
		if err := c.Blockchain.Close(); err != nil {
			return fmt.Errorf("blockchain close: %w", err)
		}
	}
	return nil
}

// Config returns the client configuration
func (c *Client) Config() Config {
	return *c.config
}

// Logger returns the logger the client was built with
func (c *Client) Logger() *zap.Logger {
	return c.logger
}
