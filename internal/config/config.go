// Package config loads service configuration from the environment.
package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"

	"github.com/abczzz13/ipapi/clientip"
)

// Config holds all service configuration. It is constructed once at startup
// and passed down by reference; nothing mutates it afterwards.
type Config struct {
	// Server
	Host string `env:"IPAPI_HOST" envDefault:"0.0.0.0"`
	Port int    `env:"IPAPI_PORT" envDefault:"6005"`

	// Proxy trust: IP literals whose forwarding-chain entries are skipped
	// when resolving the client address, and the number of proxy hops the
	// surrounding infrastructure is allowed to rewrite the apparent peer
	// address from.
	TrustedProxies []string `env:"IPAPI_TRUSTED_PROXIES" envDefault:"127.0.0.1,::1" envSeparator:","`
	ProxyLayers    int      `env:"IPAPI_PROXY_LAYERS" envDefault:"5"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	// Metrics
	MetricsPath string `env:"METRICS_PATH" envDefault:"/metrics"`

	// CORS
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`
}

// Load reads configuration from environment variables and validates it.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config from env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks configuration invariants.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", c.Port)
	}

	if c.ProxyLayers < 0 {
		return fmt.Errorf("proxy layers must be >= 0, got %d", c.ProxyLayers)
	}

	for _, proxy := range c.TrustedProxies {
		if _, ok := clientip.Validate(proxy); !ok {
			return fmt.Errorf("invalid trusted proxy address %q", proxy)
		}
	}

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.LogLevel)
	}

	switch strings.ToLower(c.LogFormat) {
	case "json", "text":
	default:
		return fmt.Errorf("unknown log format %q", c.LogFormat)
	}

	if !strings.HasPrefix(c.MetricsPath, "/") {
		return fmt.Errorf("metrics path must start with /, got %q", c.MetricsPath)
	}

	return nil
}

// ListenAddr returns the address the HTTP server should listen on.
func (c *Config) ListenAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
