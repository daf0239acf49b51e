package clientip

import (
	"net/netip"
	"strings"
)

// Version identifies the IP protocol version of a validated address.
type Version int

const (
	// VersionInvalid is the zero value, reported for strings that do not
	// validate as IP literals.
	VersionInvalid Version = iota
	// V4 identifies an IPv4 dotted-quad address.
	V4
	// V6 identifies an IPv6 address in any standard textual form.
	V6
)

// String returns the canonical text representation of v.
func (v Version) String() string {
	switch v {
	case V4:
		return "v4"
	case V6:
		return "v6"
	default:
		return "invalid"
	}
}

// Addr is a validated IP literal. It is immutable once constructed and is
// created only by Validate.
type Addr struct {
	// IP is the parsed address.
	IP netip.Addr
	// Version is V4 or V6.
	Version Version
	// Global reports whether the address is publicly routable. Private,
	// loopback, link-local, and special-use ranges are not global.
	Global bool
}

// Validate parses raw as an IPv4 dotted-quad or IPv6 literal.
//
// Surrounding whitespace is trimmed before parsing. Anything that matches
// neither grammar (empty strings, hostnames, octets above 255, zone-qualified
// IPv6 addresses) reports ok == false. Validate never panics and has no side
// effects.
func Validate(raw string) (Addr, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Addr{}, false
	}

	ip, err := netip.ParseAddr(s)
	if err != nil || ip.Zone() != "" {
		return Addr{}, false
	}

	version := V6
	if ip.Is4() {
		version = V4
	}

	return Addr{
		IP:      ip,
		Version: version,
		Global:  isGlobal(ip),
	}, true
}
