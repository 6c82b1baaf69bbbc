// Package version reports build information for the timecode library.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

const modulePath = "github.com/zsiec/timecode"

// Set at build time using ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

// Info contains version information.
type Info struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	BuildTime string `json:"build_time"`
	GoVersion string `json:"go_version"`
}

// GetInfo returns the version information. When the library is imported by
// another binary and no ldflags were given, the module version recorded in
// the binary's build info is used instead.
func GetInfo() Info {
	info := Info{
		Version:   Version,
		GitCommit: GitCommit,
		BuildTime: BuildTime,
		GoVersion: runtime.Version(),
	}

	if info.Version == "dev" {
		if v := moduleVersion(); v != "" {
			info.Version = v
		}
	}

	return info
}

func moduleVersion() string {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	if bi.Main.Path == modulePath && bi.Main.Version != "(devel)" {
		return bi.Main.Version
	}
	for _, dep := range bi.Deps {
		if dep.Path == modulePath {
			return dep.Version
		}
	}
	return ""
}

func (i Info) String() string {
	return fmt.Sprintf("Timecode %s (commit: %s, built: %s, go: %s)",
		i.Version, i.GitCommit, i.BuildTime, i.GoVersion)
}

// Short returns a short version string.
func (i Info) Short() string {
	return fmt.Sprintf("Timecode %s", i.Version)
}
