package client

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// Option is a function that modifies Config
type Option func(*Config)

// WithRPCEndpoint sets the JSON-RPC endpoint
func WithRPCEndpoint(endpoint string) Option {
	return func(c *Config) {
		c.RPCEndpoint = endpoint
	}
}

// WithWSEndpoint sets the websocket endpoint
func WithWSEndpoint(endpoint string) Option {
	return func(c *Config) {
		c.WSEndpoint = endpoint
	}
}

// WithRequestTimeout sets the timeout for single RPC requests
func WithRequestTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		c.RequestTimeout = timeout
	}
}

// WithLogger sets the logger used by every module
func WithLogger(logger *zap.Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// WithMetrics registers submission metrics on reg
func WithMetrics(reg prometheus.Registerer) Option {
	return func(c *Config) {
		c.Metrics = reg
	}
}

// WithSendTxConfig replaces the submission settings
func WithSendTxConfig(cfg SendTxConfig) Option {
	return func(c *Config) {
		c.SendTx = cfg
	}
}

// WithBlockHeightMargin sets how many blocks before expiry the wait gives up
func WithBlockHeightMargin(margin uint64) Option {
	return func(c *Config) {
		c.SendTx.BlockHeightMargin = margin
	}
}
