package version

import "fmt"

// values are set via ldflags on release builds
var (
	Version   = "dev"
	GitCommit = "none"
	BuildDate = "unknown"
)

var FullVersion = fmt.Sprintf("%s (%s, %s)", Version, GitCommit, BuildDate)
