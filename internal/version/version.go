// Package version carries build identification, injected at link time.
package version

import "fmt"

// Set via -ldflags "-X github.com/MeKo-Tech/paperforge/internal/version.Version=..."
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// String returns a single-line version description.
func String() string {
	return fmt.Sprintf("%s (commit %s, built %s)", Version, GitCommit, BuildDate)
}
