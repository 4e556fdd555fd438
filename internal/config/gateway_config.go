package config

import "time"

type GatewayConfig interface {
	GetRequestTimeout() time.Duration
	GetRefreshTimeout() time.Duration
	GetAllProxy() string
}

type Gateway struct{}

var _ GatewayConfig = Gateway{}

// GetRequestTimeout bounds a single backend round trip, retries included separately.
func (Gateway) GetRequestTimeout() time.Duration {
	return GetEnvDuration("REQUEST_TIMEOUT", 30*time.Second)
}

// GetRefreshTimeout bounds the shared refresh call independently of any waiting caller.
func (Gateway) GetRefreshTimeout() time.Duration {
	return GetEnvDuration("REFRESH_TIMEOUT", 15*time.Second)
}

// GetAllProxy returns an optional proxy URL, e.g. ssh+socks5://user@jump:22?private-key=/path/to/key
func (Gateway) GetAllProxy() string {
	return GetEnv("ALL_PROXY", "")
}
