// Where: cli/internal/version/version.go
// What: Version information retrieval.
// Why: Provide build-time version information (Git commit, state) to the CLI.
package version

import (
	"fmt"
	"runtime/debug"
)

// GetVersion returns the version derived from build info: the VCS revision,
// shortened, with a dirty marker when the tree was modified. Falls back to
// "dev" when build info is unavailable.
func GetVersion() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "dev"
	}

	var revision string
	var modified bool

	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			revision = setting.Value
			if len(revision) > 7 {
				revision = revision[:7]
			}
		case "vcs.modified":
			if setting.Value == "true" {
				modified = true
			}
		}
	}

	if revision == "" {
		return "dev"
	}
	if modified {
		return fmt.Sprintf("%s (dirty)", revision)
	}
	return revision
}
