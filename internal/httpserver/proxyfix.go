package httpserver

import (
	"net/http"

	"github.com/abczzz13/ipapi/clientip"
)

// ProxyFix rewrites the apparent peer address from the X-Forwarded-For
// chain, standing in for upstream infrastructure that terminates a known
// number of proxy hops.
//
// With layers = N, a chain carrying at least N entries rewrites RemoteAddr
// to the Nth entry from the right. Shorter chains leave the peer address
// untouched, and layers <= 0 disables rewriting entirely.
func ProxyFix(layers int) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if layers <= 0 {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			chain := clientip.ParseForwardingChain(r.Header.Get("X-Forwarded-For"))
			if len(chain) >= layers {
				r.RemoteAddr = chain[len(chain)-layers]
			}
			next.ServeHTTP(w, r)
		})
	}
}
