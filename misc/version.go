// Package misc keeps program identity helpers in one place so they could be
// used everywhere without creating import cycles.
package misc

import (
	"runtime/debug"
)

// set by the linker during official builds, see Taskfile
var (
	appName = "htmlfix"
	version = ""
	gitHash = ""
)

// GetAppName returns canonical program name.
func GetAppName() string {
	return appName
}

// GetVersion returns program version, falling back to module build info when
// the linker did not set one.
func GetVersion() string {
	if len(version) != 0 {
		return version
	}
	if bi, ok := debug.ReadBuildInfo(); ok && len(bi.Main.Version) != 0 {
		return bi.Main.Version
	}
	return "unknown"
}

// GetGitHash returns VCS revision recorded in the binary.
func GetGitHash() string {
	if len(gitHash) != 0 {
		return gitHash
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		for _, s := range bi.Settings {
			if s.Key == "vcs.revision" {
				return s.Value
			}
		}
	}
	return "unknown"
}
