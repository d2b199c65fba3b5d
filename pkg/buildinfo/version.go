// Package buildinfo holds version information stamped in at link time:
//
//	go build -ldflags "-X github.com/matzehuels/autofeyn/pkg/buildinfo.Version=v0.3.0 \
//	    -X github.com/matzehuels/autofeyn/pkg/buildinfo.Commit=$(git rev-parse --short HEAD) \
//	    -X github.com/matzehuels/autofeyn/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
package buildinfo

import "fmt"

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// String describes the build on three lines.
func String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s", Version, Commit, Date)
}

// Template is the cobra version template: the command name, then [String].
func Template() string {
	return "{{.Name}}\n" + String() + "\n"
}

// CacheScope returns a cache key prefix tied to this build. Development
// builds share one scope.
func CacheScope() string {
	return Version + ":"
}
