package clientip

import (
	"fmt"
	"strings"
)

// Option configures a Resolver.
//
// Construct options using package-provided option builder functions.
type Option func(*config) error

// config holds resolver configuration state. It is mutated by Option
// functions during construction and read-only afterwards.
type config struct {
	trustedProxies map[string]struct{}
	sourcePriority []string

	logger  Logger
	metrics Metrics
}

func defaultConfig() *config {
	return &config{
		trustedProxies: map[string]struct{}{},
		sourcePriority: []string{
			SourceXForwardedFor,
			SourceXRealIP,
			SourceRemoteAddr,
		},
		logger:  noopLogger{},
		metrics: noopMetrics{},
	}
}

func configFromOptions(opts ...Option) (*config, error) {
	cfg := defaultConfig()

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *config) validate() error {
	if len(c.sourcePriority) == 0 {
		return fmt.Errorf("at least one source required in priority list")
	}
	if c.logger == nil {
		return fmt.Errorf("logger cannot be nil")
	}
	if c.metrics == nil {
		return fmt.Errorf("metrics cannot be nil")
	}

	seen := make(map[string]struct{}, len(c.sourcePriority))
	for _, sourceName := range c.sourcePriority {
		name := canonicalSourceName(sourceName)
		if name == "" {
			return fmt.Errorf("source name cannot be empty")
		}
		if _, dup := seen[name]; dup {
			return fmt.Errorf("duplicate source %q in priority list", name)
		}
		seen[name] = struct{}{}
	}

	return nil
}

// isTrustedProxy reports whether candidate is an exact-string member of the
// configured trusted-proxy set. Candidates are expected to be trimmed
// already; no CIDR or zone-aware matching is performed.
func (c *config) isTrustedProxy(candidate string) bool {
	_, ok := c.trustedProxies[candidate]
	return ok
}

// TrustedProxies adds IP literals whose entries in a forwarding chain are
// skipped when hunting for the real client address. Each literal must
// itself validate as an IP address.
func TrustedProxies(addrs ...string) Option {
	return func(c *config) error {
		for _, addr := range addrs {
			trimmed := strings.TrimSpace(addr)
			if _, ok := Validate(trimmed); !ok {
				return fmt.Errorf("invalid trusted proxy address %q", addr)
			}
			c.trustedProxies[trimmed] = struct{}{}
		}
		return nil
	}
}

// Priority sets the source evaluation order. Names that are not one of the
// Source* constants are treated as custom single-value header names.
func Priority(sources ...string) Option {
	return func(c *config) error {
		if len(sources) == 0 {
			return fmt.Errorf("at least one source required")
		}

		priority := make([]string, len(sources))
		for i, s := range sources {
			priority[i] = strings.TrimSpace(s)
		}
		c.sourcePriority = priority
		return nil
	}
}

// WithLogger sets the logger used for resolution debug and warning events.
func WithLogger(logger Logger) Option {
	return func(c *config) error {
		if logger == nil {
			return fmt.Errorf("logger cannot be nil")
		}
		c.logger = logger
		return nil
	}
}

// WithMetrics sets the metrics implementation recording resolution outcomes.
func WithMetrics(metrics Metrics) Option {
	return func(c *config) error {
		if metrics == nil {
			return fmt.Errorf("metrics cannot be nil")
		}
		c.metrics = metrics
		return nil
	}
}
