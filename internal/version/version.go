// Package version exposes the build version of the stratapad binaries.
package version

// Version is set at build time via
// go build -ldflags "-X github.com/zane-programs/helldivers-stratagem-pad/internal/version.Version=x.y.z".
var Version string

// String returns the injected version, or a placeholder for local builds.
func String() string {
	if Version == "" {
		return "0.0.1-dev"
	}
	return Version
}
