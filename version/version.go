// Package version exposes build metadata embedded by the Go toolchain.
package version

import "runtime/debug"

var (
	// GitRelease is the release tag, set via -ldflags at build time.
	GitRelease = "dev"

	// GitCommit is the VCS revision the binary was built from.
	GitCommit = "unknown"

	// GitCommitDate is the commit timestamp.
	GitCommitDate = "unknown"

	// GoInfo is the Go toolchain version.
	GoInfo = "unknown"
)

func init() {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}
	GoInfo = info.GoVersion
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			GitCommit = setting.Value
		case "vcs.time":
			GitCommitDate = setting.Value
		}
	}
}
