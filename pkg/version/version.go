// Package version exposes build-time metadata injected via -ldflags.
package version

// Version, CommitHash, and BuildDate are set at build time:
//
//	go build -ldflags "-X github.com/momo-sh/mom/pkg/version.Version=1.2.3 ..."
var (
	Version    = "dev"
	CommitHash = "none"
	BuildDate  = "unknown"
)

// Info is a snapshot of the build-time version metadata.
type Info struct {
	Version    string
	CommitHash string
	BuildDate  string
}

// Get returns the current build's version Info.
func Get() Info {
	return Info{Version: Version, CommitHash: CommitHash, BuildDate: BuildDate}
}
