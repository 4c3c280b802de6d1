// Package version holds build metadata injected at link time.
package version

import "fmt"

// Populated via -ldflags at build time.
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// String returns a human readable one-line version summary.
func String() string {
	return fmt.Sprintf("verdant %s (commit %s, built %s)", Version, Commit, BuildTime)
}
