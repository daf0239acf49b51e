// Package version holds build identification reported by the health
// endpoint.
package version

// Version is the service release version. Overridable at build time via
// -ldflags "-X github.com/abczzz13/ipapi/internal/version.Version=...".
var Version = "1.2.0"

// Commit is the VCS revision the binary was built from, set via ldflags.
var Commit = ""
