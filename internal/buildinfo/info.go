// Package buildinfo carries the version stamped into the trekcalc binary.
package buildinfo

import "fmt"

// Set with -ldflags "-X github.com/trekcalc/trekcalc/internal/buildinfo.Version=..." at release time.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Summary is the version line printed by --version.
func Summary() string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date)
}
