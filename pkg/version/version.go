// Package version reports the herdcarbon build version.
//
// The values are injected at build time:
//
//	go build -ldflags "-X github.com/rshade/herdcarbon/pkg/version.version=1.2.3 \
//	    -X github.com/rshade/herdcarbon/pkg/version.commit=$(git rev-parse --short HEAD)"
package version

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// Name is the program name.
const Name = "herdcarbon"

// devVersion is reported when no version was injected.
const devVersion = "0.0.0-dev"

//nolint:gochecknoglobals // Set via -ldflags at build time.
var (
	version = devVersion
	commit  = "none"
)

// GetVersion returns the build version. An injected value that is not a
// semantic version is replaced by the development version.
func GetVersion() string {
	if !IsValid(version) {
		return devVersion
	}
	return version
}

// GetCommit returns the commit the binary was built from.
func GetCommit() string {
	return commit
}

// String returns the version line printed by --version.
func String() string {
	return fmt.Sprintf("%s (commit %s)", GetVersion(), GetCommit())
}

// IsValid reports whether v parses as a semantic version. A leading "v" is
// accepted.
func IsValid(v string) bool {
	_, err := semver.NewVersion(v)
	return err == nil
}

// IsDevelopment reports whether v is a pre-release build.
func IsDevelopment(v string) bool {
	sv, err := semver.NewVersion(v)
	if err != nil {
		return true
	}
	return sv.Prerelease() != ""
}
