package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// DefaultEnvPrefix is used by FromEnv when prefix is empty.
const DefaultEnvPrefix = "SWAPKIT"

// FromEnv starts from Default and overrides fields from environment
// variables such as SWAPKIT_RPC_ENDPOINT or SWAPKIT_SEND_TX_RESEND_INTERVAL.
func FromEnv(prefix string) (Config, error) {
	if prefix == "" {
		prefix = DefaultEnvPrefix
	}
	cfg := Default()
	if err := envconfig.Process(prefix, &cfg); err != nil {
		return Config{}, fmt.Errorf("load config from env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
