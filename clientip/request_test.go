package clientip

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseForwardingChain(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  []string
	}{
		{
			name:  "single entry",
			value: "203.0.113.5",
			want:  []string{"203.0.113.5"},
		},
		{
			name:  "multiple entries trimmed",
			value: "10.0.0.1, 203.0.113.5 ,127.0.0.1",
			want:  []string{"10.0.0.1", "203.0.113.5", "127.0.0.1"},
		},
		{
			name:  "empty entries dropped",
			value: ",203.0.113.5,, ,",
			want:  []string{"203.0.113.5"},
		},
		{
			name:  "malformed entries preserved",
			value: "garbage, 203.0.113.5",
			want:  []string{"garbage", "203.0.113.5"},
		},
		{
			name:  "empty value",
			value: "",
			want:  nil,
		},
		{
			name:  "only separators",
			value: " , , ",
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseForwardingChain(tt.value)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ParseForwardingChain(%q) mismatch (-want +got):\n%s", tt.value, diff)
			}
		})
	}
}

func TestPeerHost(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		want       string
	}{
		{"host and port", "198.51.100.7:1234", "198.51.100.7"},
		{"bare IPv4", "198.51.100.7", "198.51.100.7"},
		{"bracketed IPv6 with port", "[2001:db8::1]:8080", "2001:db8::1"},
		{"bracketed IPv6 without port", "[2001:db8::1]", "2001:db8::1"},
		{"bare IPv6", "2001:db8::1", "2001:db8::1"},
		{"surrounding whitespace", "  198.51.100.7:80  ", "198.51.100.7"},
		{"empty", "", ""},
		{"whitespace only", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PeerHost(tt.remoteAddr); got != tt.want {
				t.Errorf("PeerHost(%q) = %q, want %q", tt.remoteAddr, got, tt.want)
			}
		})
	}
}

func TestFromHTTP(t *testing.T) {
	header := http.Header{"X-Real-Ip": []string{"203.0.113.9"}}
	httpReq := &http.Request{
		Header:     header,
		RemoteAddr: "10.0.0.9:443",
		URL:        &url.URL{Path: "/ip"},
	}

	req := FromHTTP(httpReq)

	if req.RemoteAddr != "10.0.0.9:443" {
		t.Errorf("RemoteAddr = %q, want %q", req.RemoteAddr, "10.0.0.9:443")
	}
	if req.Path != "/ip" {
		t.Errorf("Path = %q, want %q", req.Path, "/ip")
	}
	if got := req.headerValue("X-Real-IP"); got != "203.0.113.9" {
		t.Errorf("headerValue(X-Real-IP) = %q, want %q", got, "203.0.113.9")
	}

	// nil request and nil headers are tolerated.
	if got := FromHTTP(nil); got.RemoteAddr != "" || got.Header != nil {
		t.Errorf("FromHTTP(nil) = %+v, want zero value", got)
	}
	if got := (Request{}).headerValue("X-Real-IP"); got != "" {
		t.Errorf("headerValue on nil header = %q, want empty", got)
	}
}
