package config

import (
	"time"

	"github.com/aleister1102/dbreewatch/internal/httpclient"
)

// HTTPClientConfig defines the outbound transport used against the index site
type HTTPClientConfig struct {
	TimeoutSecs        int    `json:"timeout_secs,omitempty" yaml:"timeout_secs,omitempty" toml:"timeout_secs,omitempty" validate:"min=1"`
	MaxRedirects       int    `json:"max_redirects,omitempty" yaml:"max_redirects,omitempty" toml:"max_redirects,omitempty" validate:"min=0"`
	UserAgent          string `json:"user_agent,omitempty" yaml:"user_agent,omitempty" toml:"user_agent,omitempty" env:"DBREEWATCH_USER_AGENT"`
	InsecureSkipVerify bool   `json:"insecure_skip_verify,omitempty" yaml:"insecure_skip_verify,omitempty" toml:"insecure_skip_verify,omitempty"`
}

// NewDefaultHTTPClientConfig creates default transport configuration
func NewDefaultHTTPClientConfig() HTTPClientConfig {
	return HTTPClientConfig{
		TimeoutSecs:        DefaultHTTPTimeoutSecs,
		MaxRedirects:       DefaultHTTPMaxRedirects,
		UserAgent:          DefaultHTTPUserAgent,
		InsecureSkipVerify: false,
	}
}

// ToClientConfig converts the section into the transport settings of the httpclient package
func (c HTTPClientConfig) ToClientConfig() httpclient.HTTPClientConfig {
	clientCfg := httpclient.DefaultHTTPClientConfig()
	if c.TimeoutSecs > 0 {
		clientCfg.Timeout = time.Duration(c.TimeoutSecs) * time.Second
	}
	clientCfg.MaxRedirects = c.MaxRedirects
	clientCfg.FollowRedirects = true
	clientCfg.InsecureSkipVerify = c.InsecureSkipVerify
	if c.UserAgent != "" {
		clientCfg.UserAgent = c.UserAgent
	}
	return clientCfg
}
