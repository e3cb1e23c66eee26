// Package version provides build information for the stagegate binary.
package version

import "runtime/debug"

// Set by ldflags during a release build. When built with plain 'go install'
// the module build info is used as a fallback.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Get returns the version string.
func Get() string {
	if Version != "dev" {
		return Version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return Version
}
