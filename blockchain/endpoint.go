package blockchain

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
)

// WebsocketURL derives the PubSub endpoint from an HTTP RPC endpoint. An
// explicit port is bumped by one, following the validator's default layout
// (8899 for RPC, 8900 for PubSub).
func WebsocketURL(endpoint string) (string, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return "", fmt.Errorf("parse rpc endpoint: %w", err)
	}
	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	case "ws", "wss":
		return u.String(), nil
	default:
		return "", fmt.Errorf("unsupported rpc endpoint scheme %q", u.Scheme)
	}

	if port := u.Port(); port != "" {
		n, err := strconv.Atoi(port)
		if err != nil {
			return "", fmt.Errorf("parse rpc endpoint port: %w", err)
		}
		u.Host = net.JoinHostPort(u.Hostname(), strconv.Itoa(n+1))
	}
	return u.String(), nil
}
