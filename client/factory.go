package client

import (
	"context"
	"fmt"
)

// Factory keeps a base configuration so callers can create per-cluster
// clients without re-specifying shared settings.
type Factory struct {
	baseCfg Config
	opts    []Option
}

// NewFactory captures the shared configuration. The base config may omit
// endpoints; they are supplied when creating cluster-specific clients.
func NewFactory(cfg Config, opts ...Option) *Factory {
	return &Factory{
		baseCfg: cfg,
		opts:    append([]Option{}, opts...),
	}
}

// ForCluster returns a Client bound to the provided RPC endpoint. An empty
// wsEndpoint is derived from rpcEndpoint. Extra options override/extend the
// factory defaults for this instance.
func (f *Factory) ForCluster(ctx context.Context, rpcEndpoint, wsEndpoint string, extraOpts ...Option) (*Client, error) {
	if rpcEndpoint == "" {
		return nil, fmt.Errorf("rpc endpoint is required")
	}

	cfg := f.baseCfg
	cfg.RPCEndpoint = rpcEndpoint
	cfg.WSEndpoint = wsEndpoint

	opts := append([]Option{}, f.opts...)
	opts = append(opts, extraOpts...)

	return New(ctx, cfg, opts...)
}
