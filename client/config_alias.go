package client

import clientconfig "github.com/swapkit-labs/sdk-go/client/config"

// Config re-exports the config.Config type for convenience.
type Config = clientconfig.Config

// SendTxConfig re-exports the send-tx config type for convenience.
type SendTxConfig = clientconfig.SendTxConfig

// DefaultConfig mirrors config.Default.
func DefaultConfig() Config {
	return clientconfig.Default()
}

// DefaultSendTxConfig mirrors config.DefaultSendTxConfig.
func DefaultSendTxConfig() SendTxConfig {
	return clientconfig.DefaultSendTxConfig()
}

// ApplySendTxDefaults mirrors config.ApplySendTxDefaults.
func ApplySendTxDefaults(cfg *SendTxConfig) {
	clientconfig.ApplySendTxDefaults(cfg)
}

// ConfigFromEnv mirrors config.FromEnv.
func ConfigFromEnv(prefix string) (Config, error) {
	return clientconfig.FromEnv(prefix)
}
