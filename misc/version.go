// Package misc keeps build time information.
package misc

import (
	"runtime/debug"
)

const appName = "docx2html"

// Set by linker flags (-X docx2html/misc.version=... -X docx2html/misc.gitHash=...).
var (
	version = "dev"
	gitHash = ""
)

func GetAppName() string {
	return appName
}

func GetVersion() string {
	return version
}

// GetGitHash returns commit hash the program was built from, falling back to
// VCS information recorded by the go toolchain.
func GetGitHash() string {
	if gitHash != "" {
		return gitHash
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, s := range info.Settings {
			if s.Key == "vcs.revision" {
				return s.Value
			}
		}
	}
	return "unknown"
}
