// Package version carries build information stamped in by the linker.
package version

import "fmt"

// Name is the binary name reported in logs and the User-Agent header.
const Name = "insights-build-reporter"

// These variables are populated by the Go linker (LDFLAGS) at build time.
var (
	Version    = "dev"     // Default value if not built with LDFLAGS
	CommitHash = "unknown" // Default value
	BuildDate  = "unknown" // Default value
)

// Banner returns name@version, logged at startup.
func Banner() string {
	return Name + "@" + Version
}

// UserAgent identifies outbound HTTP requests.
func UserAgent() string {
	return Name + "/" + Version
}

// Detail is the multi-field form printed by the version command.
func Detail() string {
	return fmt.Sprintf("%s %s (commit %s, built %s)", Name, Version, CommitHash, BuildDate)
}
