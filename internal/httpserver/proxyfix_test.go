package httpserver

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestProxyFix(t *testing.T) {
	tests := []struct {
		name         string
		layers       int
		forwardedFor string
		remoteAddr   string
		wantPeer     string
	}{
		{
			name:         "disabled leaves peer untouched",
			layers:       0,
			forwardedFor: "203.0.113.5",
			remoteAddr:   "127.0.0.1:45678",
			wantPeer:     "127.0.0.1:45678",
		},
		{
			name:         "single layer takes rightmost entry",
			layers:       1,
			forwardedFor: "10.0.0.1, 203.0.113.5",
			remoteAddr:   "127.0.0.1:45678",
			wantPeer:     "203.0.113.5",
		},
		{
			name:         "two layers take second entry from the right",
			layers:       2,
			forwardedFor: "10.0.0.1, 203.0.113.5, 127.0.0.1",
			remoteAddr:   "127.0.0.1:45678",
			wantPeer:     "203.0.113.5",
		},
		{
			name:         "chain shorter than layer count leaves peer untouched",
			layers:       5,
			forwardedFor: "203.0.113.5",
			remoteAddr:   "127.0.0.1:45678",
			wantPeer:     "127.0.0.1:45678",
		},
		{
			name:       "no forwarding header leaves peer untouched",
			layers:     5,
			remoteAddr: "198.51.100.7:1234",
			wantPeer:   "198.51.100.7:1234",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotPeer string
			handler := ProxyFix(tt.layers)(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
				gotPeer = r.RemoteAddr
			}))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.forwardedFor != "" {
				req.Header.Set("X-Forwarded-For", tt.forwardedFor)
			}
			req.RemoteAddr = tt.remoteAddr

			handler.ServeHTTP(httptest.NewRecorder(), req)

			if gotPeer != tt.wantPeer {
				t.Errorf("peer after ProxyFix = %q, want %q", gotPeer, tt.wantPeer)
			}
		})
	}
}
