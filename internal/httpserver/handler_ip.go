package httpserver

import (
	"net/http"

	"github.com/abczzz13/ipapi/clientip"
)

// ipResponse is the JSON shape returned by the /ip endpoint.
type ipResponse struct {
	IP      string      `json:"ip"`
	Network networkInfo `json:"network"`
	Meta    requestMeta `json:"meta"`
}

type networkInfo struct {
	IsGlobal bool   `json:"is_global"`
	Version  string `json:"version"`
}

// requestMeta echoes the raw forwarding signals for observability. Fields
// are null when the corresponding signal is absent.
type requestMeta struct {
	ForwardedFor *string `json:"forwarded_for"`
	RealIP       *string `json:"real_ip"`
	RemoteAddr   *string `json:"remote_addr"`
}

// handleIP resolves the client IP and reports it together with its network
// classification and the raw signals it was derived from.
//
// The resolved string is validated again here rather than reusing the
// resolver's internal result; the Unknown sentinel deliberately classifies
// as version "invalid" with is_global false.
func (s *Server) handleIP(w http.ResponseWriter, r *http.Request) {
	ip := s.Resolver.Resolve(r.Context(), clientip.FromHTTP(r))

	network := networkInfo{IsGlobal: false, Version: clientip.VersionInvalid.String()}
	if addr, ok := clientip.Validate(ip); ok {
		network = networkInfo{IsGlobal: addr.Global, Version: addr.Version.String()}
	}

	Respond(w, http.StatusOK, ipResponse{
		IP:      ip,
		Network: network,
		Meta: requestMeta{
			ForwardedFor: headerOrNil(r, "X-Forwarded-For"),
			RealIP:       headerOrNil(r, "X-Real-IP"),
			RemoteAddr:   peerOrNil(r.RemoteAddr),
		},
	})
}

func headerOrNil(r *http.Request, name string) *string {
	values := r.Header.Values(name)
	if len(values) == 0 {
		return nil
	}
	return &values[0]
}

func peerOrNil(remoteAddr string) *string {
	host := clientip.PeerHost(remoteAddr)
	if host == "" {
		return nil
	}
	return &host
}
