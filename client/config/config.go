package config

import (
	"fmt"
	"time"

	"github.com/gagliardetto/solana-go/rpc"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// Config holds all configuration for the client.
type Config struct {
	// Cluster connection
	RPCEndpoint string `split_words:"true"` // JSON-RPC HTTP endpoint
	WSEndpoint  string `split_words:"true"` // websocket endpoint; derived from RPCEndpoint when empty

	// Commitment used for reads such as the latest blockhash.
	Commitment rpc.CommitmentType

	// RequestTimeout bounds single RPC calls made outside of SendTx waits.
	RequestTimeout time.Duration `split_words:"true"`

	// SendTx controls submission and confirmation behaviour.
	SendTx SendTxConfig `split_words:"true"`

	// Logger is optional; when set, SDK operations emit diagnostics.
	Logger *zap.Logger `ignored:"true"`

	// Metrics is optional; when set, submission collectors are registered on it.
	Metrics prometheus.Registerer `ignored:"true"`
}

// SendTxConfig configures how the SDK submits and confirms transactions.
type SendTxConfig struct {
	// ResendInterval is how often the signed payload is re-broadcast until an outcome is known.
	ResendInterval time.Duration `split_words:"true"`
	// ResendWarnLimit caps warn-level logs for failed resends; later failures log at debug
	// (0 => default, negative => unlimited).
	ResendWarnLimit int `split_words:"true"`

	// PollInterval controls how often signature status is polled alongside the websocket subscription.
	PollInterval time.Duration `split_words:"true"`

	// BlockHeightMargin is subtracted from the last valid block height so the
	// local wait expires before the cluster stops accepting the transaction.
	BlockHeightMargin uint64 `split_words:"true"`
	// BlockHeightPollInterval controls how often block height is checked while
	// waiting on the subscription.
	BlockHeightPollInterval time.Duration `split_words:"true"`

	// Commitment is the level treated as success.
	Commitment rpc.CommitmentType

	// EnablePreflight runs preflight simulation on every send. Off by default.
	EnablePreflight bool `split_words:"true"`

	// FetchMaxAttempts bounds GetTransaction calls once confirmation is observed.
	FetchMaxAttempts int `split_words:"true"`
	// FetchMinBackoff is the delay between fetch attempts.
	FetchMinBackoff time.Duration `split_words:"true"`
	// FetchBackoffMultiplier > 1 enables exponential growth for fetch delays.
	FetchBackoffMultiplier float64 `split_words:"true"`
	// FetchBackoffMaxInterval caps the exponential fetch delay (0 => default, negative => no cap).
	FetchBackoffMaxInterval time.Duration `split_words:"true"`
	// FetchBackoffJitter randomizes fetch delays (0..1) to avoid synced retries.
	FetchBackoffJitter float64 `split_words:"true"`

	// MaxSupportedTransactionVersion is passed to GetTransaction.
	MaxSupportedTransactionVersion uint64 `split_words:"true"`
}

// Validate checks if the configuration is valid and populates defaults.
func (c *Config) Validate() error {
	if c.RPCEndpoint == "" {
		return fmt.Errorf("rpc_endpoint is required")
	}
	if c.Commitment == "" {
		c.Commitment = rpc.CommitmentConfirmed
	}
	if c.RequestTimeout == 0 {
		c.RequestTimeout = 10 * time.Second
	}
	ApplySendTxDefaults(&c.SendTx)

	return c.SendTx.Validate()
}

// Validate rejects values that defaults cannot repair.
func (c SendTxConfig) Validate() error {
	switch c.Commitment {
	case rpc.CommitmentProcessed, rpc.CommitmentConfirmed, rpc.CommitmentFinalized:
	default:
		return fmt.Errorf("unsupported send_tx commitment %q", c.Commitment)
	}
	if c.FetchBackoffMaxInterval > 0 && c.FetchBackoffMaxInterval < c.FetchMinBackoff {
		return fmt.Errorf("fetch_backoff_max_interval %s is below fetch_min_backoff %s",
			c.FetchBackoffMaxInterval, c.FetchMinBackoff)
	}
	return nil
}

// Default returns a configuration with sensible defaults for a local validator.
func Default() Config {
	return Config{
		RPCEndpoint:    rpc.LocalNet_RPC,
		Commitment:     rpc.CommitmentConfirmed,
		RequestTimeout: 10 * time.Second,
		SendTx:         DefaultSendTxConfig(),
	}
}

// DefaultSendTxConfig returns recommended defaults for send-tx behaviour.
func DefaultSendTxConfig() SendTxConfig {
	return SendTxConfig{
		ResendInterval:          2 * time.Second,
		ResendWarnLimit:         10,
		PollInterval:            2 * time.Second,
		BlockHeightMargin:       150,
		BlockHeightPollInterval: time.Second,
		Commitment:              rpc.CommitmentConfirmed,
		FetchMaxAttempts:        5,
		FetchMinBackoff:         time.Second,
		FetchBackoffMultiplier:  1,
		FetchBackoffMaxInterval: 10 * time.Second,
		FetchBackoffJitter:      0,
	}
}

// ApplySendTxDefaults normalizes zero or negative values using defaults.
func ApplySendTxDefaults(cfg *SendTxConfig) {
	if cfg == nil {
		return
	}
	def := DefaultSendTxConfig()

	if cfg.ResendInterval <= 0 {
		cfg.ResendInterval = def.ResendInterval
	}
	if cfg.ResendWarnLimit == 0 {
		cfg.ResendWarnLimit = def.ResendWarnLimit
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = def.PollInterval
	}
	if cfg.BlockHeightMargin == 0 {
		cfg.BlockHeightMargin = def.BlockHeightMargin
	}
	if cfg.BlockHeightPollInterval <= 0 {
		cfg.BlockHeightPollInterval = def.BlockHeightPollInterval
	}
	if cfg.Commitment == "" {
		cfg.Commitment = def.Commitment
	}
	if cfg.FetchMaxAttempts <= 0 {
		cfg.FetchMaxAttempts = def.FetchMaxAttempts
	}
	if cfg.FetchMinBackoff <= 0 {
		cfg.FetchMinBackoff = def.FetchMinBackoff
	}
	if cfg.FetchBackoffMultiplier <= 0 {
		cfg.FetchBackoffMultiplier = def.FetchBackoffMultiplier
	}
	if cfg.FetchBackoffMaxInterval == 0 {
		cfg.FetchBackoffMaxInterval = def.FetchBackoffMaxInterval
	}
	if cfg.FetchBackoffJitter < 0 {
		cfg.FetchBackoffJitter = 0
	}
}
