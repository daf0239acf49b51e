package clientip

import (
	"net"
	"net/http"
	"strings"
)

// Request provides framework-agnostic resolver input.
//
// Header may be nil when no headers are available. RemoteAddr is the socket
// peer address as recorded by the transport, typically in host:port form.
type Request struct {
	Header     http.Header
	RemoteAddr string
	Path       string
}

// FromHTTP adapts an *http.Request into resolver input.
func FromHTTP(r *http.Request) Request {
	if r == nil {
		return Request{}
	}

	req := Request{
		Header:     r.Header,
		RemoteAddr: r.RemoteAddr,
	}
	if r.URL != nil {
		req.Path = r.URL.Path
	}

	return req
}

func (r Request) headerValue(name string) string {
	if r.Header == nil {
		return ""
	}
	return r.Header.Get(name)
}

// ParseForwardingChain splits an X-Forwarded-For value into its ordered
// entries. Entries are split on commas and trimmed; empty entries are
// dropped. Leftmost entries are closest to the original client, rightmost
// entries closest to the receiving server.
func ParseForwardingChain(value string) []string {
	if value == "" {
		return nil
	}

	chain := make([]string, 0, typicalChainCapacity)
	for part := range strings.SplitSeq(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			chain = append(chain, trimmed)
		}
	}

	return chain
}

// PeerHost strips the port suffix from a socket peer address. Addresses that
// are not in host:port form are returned trimmed but otherwise unchanged.
func PeerHost(remoteAddr string) string {
	s := strings.TrimSpace(remoteAddr)
	if s == "" {
		return ""
	}

	if host, _, err := net.SplitHostPort(s); err == nil {
		return host
	}

	return strings.Trim(s, "[]")
}

// typicalChainCapacity is the initial capacity used when parsing forwarding
// chains. Most deployments have short chains of one to five hops.
const typicalChainCapacity = 8
