package main

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// Set by the release build with -ldflags "-X main.version=...".
var (
	version = ""
	commit  = ""
	date    = ""
)

type buildInfo struct {
	version   string
	commit    string
	date      string
	goVersion string
}

// currentBuildInfo prefers linker-set values and falls back to the module and
// VCS data the Go toolchain embeds in the binary.
func currentBuildInfo() buildInfo {
	info := buildInfo{version: version, commit: commit, date: date}
	if bi, ok := debug.ReadBuildInfo(); ok {
		info.goVersion = bi.GoVersion
		if info.version == "" && bi.Main.Version != "" {
			info.version = bi.Main.Version
		}
		for _, setting := range bi.Settings {
			switch {
			case setting.Key == "vcs.revision" && info.commit == "":
				info.commit = setting.Value
			case setting.Key == "vcs.time" && info.date == "":
				info.date = setting.Value
			}
		}
	}

	info.version = valueOrFallback(info.version, "(devel)")
	info.commit = valueOrFallback(info.commit, "unknown")
	info.date = valueOrFallback(info.date, "unknown")
	if len(info.commit) > 12 {
		info.commit = info.commit[:12]
	}
	return info
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the blueprint release and the toolchain it was built with",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := currentBuildInfo()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s\n", styles.heading.Render("blueprint"), info.version)
			fmt.Fprintf(out, "  %-8s %s\n", "commit", info.commit)
			fmt.Fprintf(out, "  %-8s %s\n", "built", info.date)
			if info.goVersion != "" {
				fmt.Fprintf(out, "  %-8s %s\n", "go", info.goVersion)
			}
			return nil
		},
	}
}
