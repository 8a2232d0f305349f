// Package version holds build information for the buildstamp binary
// itself. The variables pair with the `buildstamp ldflags` subcommand:
//
//	go build -ldflags "$(buildstamp ldflags --package github.com/buildstamp/buildstamp/pkg/version)"
package version

import "fmt"

var (
	// Version is the semantic version of the binary.
	Version = "0.1.0"
	// GitCommit is populated via -ldflags at build time.
	GitCommit = "dev"
	// BuildDate is injected at build time, YYYY-MM-DDTHH:MM:SSZ.
	BuildDate = "unknown"
	// GoVersion is the toolchain version injected at build time.
	GoVersion = "unknown"
)

// String returns a human-friendly version string.
func String() string {
	return fmt.Sprintf("buildstamp %s (commit: %s, built: %s, go: %s)", Version, GitCommit, BuildDate, GoVersion)
}
