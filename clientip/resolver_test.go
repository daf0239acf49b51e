package clientip

import (
	"context"
	"net/http"
	"testing"
)

func newTestRequest(headers map[string]string, remoteAddr string) Request {
	h := make(http.Header, len(headers))
	for name, value := range headers {
		h.Set(name, value)
	}
	return Request{Header: h, RemoteAddr: remoteAddr}
}

func TestResolver_Resolve(t *testing.T) {
	tests := []struct {
		name       string
		opts       []Option
		headers    map[string]string
		remoteAddr string
		want       string
	}{
		{
			name:       "rightmost untrusted chain entry wins",
			opts:       []Option{TrustedProxies("127.0.0.1")},
			headers:    map[string]string{"X-Forwarded-For": "10.0.0.1, 203.0.113.5, 127.0.0.1"},
			remoteAddr: "127.0.0.1:45678",
			want:       "203.0.113.5",
		},
		{
			name:       "rightmost valid untrusted entry regardless of earlier garbage",
			headers:    map[string]string{"X-Forwarded-For": "garbage, not-an-ip, 198.51.100.7"},
			remoteAddr: "127.0.0.1:45678",
			want:       "198.51.100.7",
		},
		{
			name: "all chain entries trusted falls through to real IP",
			opts: []Option{TrustedProxies("127.0.0.1", "::1")},
			headers: map[string]string{
				"X-Forwarded-For": "127.0.0.1, ::1",
				"X-Real-IP":       "203.0.113.9",
			},
			remoteAddr: "127.0.0.1:45678",
			want:       "203.0.113.9",
		},
		{
			name:       "all chain entries invalid falls through to peer",
			headers:    map[string]string{"X-Forwarded-For": "one, two, three"},
			remoteAddr: "198.51.100.7:1234",
			want:       "198.51.100.7",
		},
		{
			name:       "no headers uses peer address",
			headers:    map[string]string{},
			remoteAddr: "198.51.100.7",
			want:       "198.51.100.7",
		},
		{
			name:    "invalid real IP and no peer yields unknown",
			headers: map[string]string{"X-Real-IP": "not-an-ip"},
			want:    Unknown,
		},
		{
			name: "nothing usable at all yields unknown",
			want: Unknown,
		},
		{
			name:       "real IP preferred over peer",
			headers:    map[string]string{"X-Real-IP": "2606:4700:4700::1111"},
			remoteAddr: "10.0.0.9:9999",
			want:       "2606:4700:4700::1111",
		},
		{
			name: "forwarded chain preferred over real IP",
			headers: map[string]string{
				"X-Forwarded-For": "203.0.113.5",
				"X-Real-IP":       "198.51.100.7",
			},
			remoteAddr: "10.0.0.9:9999",
			want:       "203.0.113.5",
		},
		{
			name:       "trusted proxy never returned as result",
			opts:       []Option{TrustedProxies("203.0.113.5")},
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.5"},
			remoteAddr: "192.0.2.10:443",
			want:       "192.0.2.10",
		},
		{
			name:       "bracketed IPv6 peer",
			remoteAddr: "[2001:db8::1]:8080",
			want:       "2001:db8::1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolver, err := New(tt.opts...)
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}

			got := resolver.Resolve(context.Background(), newTestRequest(tt.headers, tt.remoteAddr))
			if got != tt.want {
				t.Errorf("Resolve() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResolver_Resolve_Idempotent(t *testing.T) {
	resolver, err := New(TrustedProxies("127.0.0.1"))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	req := newTestRequest(map[string]string{
		"X-Forwarded-For": "10.0.0.1, 203.0.113.5, 127.0.0.1",
	}, "127.0.0.1:45678")

	first := resolver.Resolve(context.Background(), req)
	second := resolver.Resolve(context.Background(), req)

	if first != second {
		t.Errorf("Resolve() not idempotent: first = %q, second = %q", first, second)
	}
}

func TestResolver_Resolve_CustomHeaderSource(t *testing.T) {
	resolver, err := New(
		Priority("CF-Connecting-IP", SourceXForwardedFor, SourceRemoteAddr),
	)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	req := newTestRequest(map[string]string{
		"CF-Connecting-IP": "203.0.113.77",
		"X-Forwarded-For":  "198.51.100.7",
	}, "10.0.0.9:443")

	if got, want := resolver.Resolve(context.Background(), req), "203.0.113.77"; got != want {
		t.Errorf("Resolve() = %q, want %q", got, want)
	}
}

func TestResolver_Resolve_PriorityReordering(t *testing.T) {
	resolver, err := New(
		Priority(SourceRemoteAddr, SourceXForwardedFor),
	)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	req := newTestRequest(map[string]string{
		"X-Forwarded-For": "203.0.113.5",
	}, "198.51.100.7:1234")

	if got, want := resolver.Resolve(context.Background(), req), "198.51.100.7"; got != want {
		t.Errorf("Resolve() = %q, want %q", got, want)
	}
}

func TestResolver_ResolveHTTP(t *testing.T) {
	resolver, err := New(TrustedProxies("127.0.0.1"))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	req := &http.Request{
		Header:     http.Header{"X-Forwarded-For": []string{"203.0.113.5, 127.0.0.1"}},
		RemoteAddr: "127.0.0.1:45678",
	}

	if got, want := resolver.ResolveHTTP(req), "203.0.113.5"; got != want {
		t.Errorf("ResolveHTTP() = %q, want %q", got, want)
	}

	if got := resolver.ResolveHTTP(nil); got != Unknown {
		t.Errorf("ResolveHTTP(nil) = %q, want %q", got, Unknown)
	}
}

func BenchmarkResolve(b *testing.B) {
	resolver, err := New(TrustedProxies("127.0.0.1", "::1"))
	if err != nil {
		b.Fatalf("New() error = %v", err)
	}

	req := newTestRequest(map[string]string{
		"X-Forwarded-For": "10.0.0.1, 203.0.113.5, 127.0.0.1",
	}, "127.0.0.1:45678")

	b.ReportAllocs()
	for b.Loop() {
		resolver.Resolve(context.Background(), req)
	}
}
