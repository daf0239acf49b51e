package clientip

import (
	"fmt"
	"net/netip"
)

var (
	specialUseIPv4Prefixes = []netip.Prefix{
		mustParsePrefix("0.0.0.0/8"),
		mustParsePrefix("100.64.0.0/10"),
		mustParsePrefix("192.0.0.0/24"),
		mustParsePrefix("192.0.2.0/24"),
		mustParsePrefix("198.18.0.0/15"),
		mustParsePrefix("198.51.100.0/24"),
		mustParsePrefix("203.0.113.0/24"),
		mustParsePrefix("240.0.0.0/4"),
	}

	specialUseIPv6Prefixes = []netip.Prefix{
		mustParsePrefix("64:ff9b::/96"),
		mustParsePrefix("64:ff9b:1::/48"),
		mustParsePrefix("100::/64"),
		mustParsePrefix("2001:2::/48"),
		mustParsePrefix("2001:db8::/32"),
		mustParsePrefix("2001:20::/28"),
	}
)

func mustParsePrefix(cidr string) netip.Prefix {
	prefix, err := netip.ParsePrefix(cidr)
	if err != nil {
		panic(fmt.Sprintf("invalid built-in CIDR %q: %v", cidr, err))
	}
	return prefix
}

// isGlobal reports whether ip is valid for routing on the public internet,
// per the IANA special-purpose address registries.
func isGlobal(ip netip.Addr) bool {
	if !ip.IsValid() {
		return false
	}

	if ip.Is4In6() {
		ip = ip.Unmap()
	}

	if ip.IsLoopback() || ip.IsLinkLocalUnicast() || ip.IsMulticast() ||
		ip.IsUnspecified() || ip.IsPrivate() {
		return false
	}

	prefixes := specialUseIPv6Prefixes
	if ip.Is4() {
		prefixes = specialUseIPv4Prefixes
	}

	for _, prefix := range prefixes {
		if prefix.Contains(ip) {
			return false
		}
	}

	return true
}
