// Package clientip resolves the perceived client IP address of an HTTP
// request from proxy forwarding headers and the socket peer address.
//
// # Resolution
//
// A Resolver evaluates an ordered list of sources until one yields a usable
// address:
//
//  1. X-Forwarded-For: the chain is scanned from right to left, skipping
//     entries that do not validate as IP literals or that match the
//     configured trusted-proxy set.
//  2. X-Real-IP: used when it validates as an IP literal.
//  3. RemoteAddr: the socket peer, with any port suffix removed.
//
// When every source comes up empty, Resolve returns the Unknown sentinel.
// Resolution never fails: absent or malformed signals fall through to the
// next source instead of surfacing as errors.
//
// # Basic Usage
//
//	resolver, err := clientip.New(
//	    clientip.TrustedProxies("127.0.0.1", "::1"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	ip := resolver.ResolveHTTP(req)
//
// # Custom Headers
//
// Source priority is configurable, and unknown source names are treated as
// single-value headers, which covers CDN-specific headers:
//
//	resolver, _ := clientip.New(
//	    clientip.TrustedProxies("10.0.0.1"),
//	    clientip.Priority(
//	        "CF-Connecting-IP",
//	        clientip.SourceXForwardedFor,
//	        clientip.SourceRemoteAddr,
//	    ),
//	)
//
// # Validation
//
// Validate parses a string into a structured address carrying the IP
// version and whether the address is publicly routable:
//
//	addr, ok := clientip.Validate("203.0.113.5")
//	// ok == true, addr.Version == clientip.V4, addr.Global == false
//
// # Observability
//
// Resolvers accept an optional structured logger and a pluggable metrics
// sink. The logger interface matches *slog.Logger, so one can be passed
// directly. A Prometheus adapter lives in
// github.com/abczzz13/ipapi/clientip/prometheus.
//
// # Thread Safety
//
// Resolver instances are immutable after construction and safe for
// concurrent use. They are typically created once at startup and shared
// across all requests.
package clientip
