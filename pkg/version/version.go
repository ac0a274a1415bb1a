// Package version exposes build information injected through -ldflags.
package version

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Set at build time, e.g.
//
//	go build -ldflags "-X github.com/rshade/vlist/pkg/version.version=1.2.0"
//
//nolint:gochecknoglobals // Overwritten by the linker.
var (
	version   = "0.0.0-dev"
	gitCommit = "unknown"
	buildDate = "unknown"
)

// GetVersion returns the build version without a leading "v".
func GetVersion() string {
	return strings.TrimPrefix(version, "v")
}

// GetGitCommit returns the commit the binary was built from.
func GetGitCommit() string {
	return gitCommit
}

// GetBuildDate returns the build timestamp.
func GetBuildDate() string {
	return buildDate
}

// Semver parses the build version.
func Semver() (*semver.Version, error) {
	v, err := semver.NewVersion(GetVersion())
	if err != nil {
		return nil, fmt.Errorf("invalid build version %q: %w", version, err)
	}
	return v, nil
}

// IsRelease reports whether the build version is a valid non-prerelease semver.
func IsRelease() bool {
	v, err := Semver()
	return err == nil && v.Prerelease() == ""
}

// String renders the full version line.
func String() string {
	return fmt.Sprintf("vlist %s (commit %s, built %s, %s/%s)",
		GetVersion(), gitCommit, buildDate, runtime.GOOS, runtime.GOARCH)
}
