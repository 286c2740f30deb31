package version

import "fmt"

// Build information set by ldflags
var (
	Version = "dev"     // -X github.com/arthur-debert/templating/internal/version.Version={{.Version}}
	Commit  = "unknown" // -X github.com/arthur-debert/templating/internal/version.Commit={{.Commit}}
	Date    = "unknown" // -X github.com/arthur-debert/templating/internal/version.Date={{.Date}}
)

// String formats the build information for `templating version`
func String() string {
	return fmt.Sprintf("templating version %s\n  commit: %s\n  built:  %s\n", Version, Commit, Date)
}
