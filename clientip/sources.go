package clientip

import (
	"context"
	"strings"
)

const (
	// SourceXForwardedFor resolves from the X-Forwarded-For header chain.
	SourceXForwardedFor = "x_forwarded_for"
	// SourceXRealIP resolves from the X-Real-IP header.
	SourceXRealIP = "x_real_ip"
	// SourceRemoteAddr resolves from the socket peer address.
	SourceRemoteAddr = "remote_addr"
)

// source is one step in the resolver's fallback chain. Implementations are
// pure functions of their input: ok == false means the signal is unusable
// and resolution moves on to the next source.
type source interface {
	Resolve(ctx context.Context, req Request) (string, bool)

	Name() string
}

// NormalizeSourceName maps a header name to its source-name form.
func NormalizeSourceName(headerName string) string {
	return strings.ToLower(strings.ReplaceAll(headerName, "-", "_"))
}

func canonicalSourceName(sourceName string) string {
	switch NormalizeSourceName(sourceName) {
	case SourceXForwardedFor:
		return SourceXForwardedFor
	case SourceXRealIP:
		return SourceXRealIP
	case SourceRemoteAddr:
		return SourceRemoteAddr
	default:
		return sourceName
	}
}

// forwardedForSource scans the X-Forwarded-For chain from right to left.
//
// Proxies append their observed peer to the right end of the header, so the
// rightmost entry that validates and is not a configured trusted proxy is
// the most recently seen, least spoofable candidate for the real client.
type forwardedForSource struct {
	resolver *Resolver
}

func (s *forwardedForSource) Name() string {
	return SourceXForwardedFor
}

func (s *forwardedForSource) Resolve(ctx context.Context, req Request) (string, bool) {
	raw := req.headerValue("X-Forwarded-For")
	if raw == "" {
		return "", false
	}

	cfg := s.resolver.cfg
	chain := ParseForwardingChain(raw)

	for i := len(chain) - 1; i >= 0; i-- {
		candidate := chain[i]

		if _, ok := Validate(candidate); !ok {
			cfg.metrics.RecordEvent(eventInvalidChainEntry)
			cfg.logger.DebugContext(ctx, "skipping malformed forwarding chain entry",
				"source", s.Name(),
				"entry", candidate,
				"index", i,
			)
			continue
		}

		if cfg.isTrustedProxy(candidate) {
			continue
		}

		return candidate, true
	}

	cfg.metrics.RecordEvent(eventChainExhausted)
	cfg.logger.DebugContext(ctx, "forwarding chain exhausted, every entry trusted or malformed",
		"source", s.Name(),
		"chain", raw,
		"path", req.Path,
	)

	return "", false
}

// singleHeaderSource resolves from a header expected to carry one IP
// literal, such as X-Real-IP or CDN-specific headers.
type singleHeaderSource struct {
	resolver   *Resolver
	headerName string
	sourceName string
}

func newSingleHeaderSource(resolver *Resolver, headerName string) *singleHeaderSource {
	return &singleHeaderSource{
		resolver:   resolver,
		headerName: headerName,
		sourceName: NormalizeSourceName(headerName),
	}
}

func (s *singleHeaderSource) Name() string {
	return s.sourceName
}

func (s *singleHeaderSource) Resolve(ctx context.Context, req Request) (string, bool) {
	value := req.headerValue(s.headerName)
	if value == "" {
		return "", false
	}

	if _, ok := Validate(value); !ok {
		s.resolver.cfg.metrics.RecordEvent(eventInvalidHeaderValue)
		s.resolver.cfg.logger.DebugContext(ctx, "header present but not a valid IP literal",
			"source", s.Name(),
			"header", s.headerName,
			"value", value,
		)
		return "", false
	}

	return strings.TrimSpace(value), true
}

// remoteAddrSource falls back to the socket peer address.
type remoteAddrSource struct {
	resolver *Resolver
}

func (s *remoteAddrSource) Name() string {
	return SourceRemoteAddr
}

func (s *remoteAddrSource) Resolve(_ context.Context, req Request) (string, bool) {
	host := PeerHost(req.RemoteAddr)
	if host == "" {
		return "", false
	}

	return host, true
}
