package clientip

import (
	"context"
	"fmt"
	"net/http"
)

// Unknown is the sentinel returned when no forwarding header, real-IP
// header, or peer address yields a usable client IP.
const Unknown = "unknown"

// Resolver picks the best-guess client IP for a request.
//
// Resolver instances are immutable after construction and safe for
// concurrent use.
type Resolver struct {
	cfg     *config
	sources []source
}

// New creates a Resolver from one or more Option builders.
func New(opts ...Option) (*Resolver, error) {
	cfg, err := configFromOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	resolver := &Resolver{cfg: cfg}
	resolver.sources = resolver.buildSources(cfg)

	return resolver, nil
}

func (r *Resolver) buildSources(cfg *config) []source {
	sources := make([]source, 0, len(cfg.sourcePriority))
	for _, sourceName := range cfg.sourcePriority {
		var s source
		switch canonicalSourceName(sourceName) {
		case SourceXForwardedFor:
			s = &forwardedForSource{resolver: r}
		case SourceXRealIP:
			s = newSingleHeaderSource(r, "X-Real-IP")
		case SourceRemoteAddr:
			s = &remoteAddrSource{resolver: r}
		default:
			// Assume it's a custom header name.
			s = newSingleHeaderSource(r, sourceName)
		}
		sources = append(sources, s)
	}

	return sources
}

// Resolve evaluates the configured sources in priority order and returns the
// first usable client IP, or Unknown when every source comes up empty.
//
// Resolve never fails: absent or malformed signals are treated as unusable
// and fold into the fallback chain. Identical inputs always produce
// identical output.
func (r *Resolver) Resolve(ctx context.Context, req Request) string {
	if ctx == nil {
		ctx = context.Background()
	}

	for _, s := range r.sources {
		ip, ok := s.Resolve(ctx, req)
		if !ok {
			r.cfg.metrics.RecordMiss(s.Name())
			continue
		}

		r.cfg.metrics.RecordResolution(s.Name())
		return ip
	}

	r.cfg.metrics.RecordEvent(eventUnknownClient)
	r.cfg.logger.WarnContext(ctx, "no usable client IP signal",
		"remote_addr", req.RemoteAddr,
		"path", req.Path,
	)

	return Unknown
}

// ResolveHTTP resolves the client IP for an inbound *http.Request.
func (r *Resolver) ResolveHTTP(req *http.Request) string {
	if req == nil {
		return r.Resolve(context.Background(), Request{})
	}

	return r.Resolve(req.Context(), FromHTTP(req))
}
