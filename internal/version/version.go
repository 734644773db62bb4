// Package version carries the build metadata stamped into the paperdex
// binary by the release target.
package version

import "fmt"

// Overridden at build time, for example:
//
//	go build -ldflags "-X github.com/paperdex/paperdex/internal/version.Version=v1.2.0"
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// String renders the stamped metadata as a single log-friendly line.
func String() string {
	return fmt.Sprintf("%s (commit %s, built %s)", Version, Commit, Date)
}
