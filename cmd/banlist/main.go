package main

import (
	"os"
	"runtime/debug"

	"github.com/jokarl/banlist/internal/cli"
)

// Version information (set via ldflags during build, or read from build info)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if info, ok := debug.ReadBuildInfo(); ok {
		// go install module@version records the module version
		if version == "dev" && info.Main.Version != "" && info.Main.Version != "(devel)" {
			version = info.Main.Version
		}
		if commit == "none" {
			commit, date = vcsInfo(info, date)
		}
	}

	cli.SetVersionInfo(version, commit, date)
	os.Exit(cli.ExitCode(cli.Execute()))
}

// vcsInfo returns the short revision and commit time stamped by the go tool
func vcsInfo(info *debug.BuildInfo, fallbackDate string) (string, string) {
	commit, date := "none", fallbackDate
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			commit = setting.Value
			if len(commit) > 7 {
				commit = commit[:7]
			}
		case "vcs.time":
			date = setting.Value
		}
	}
	return commit, date
}
