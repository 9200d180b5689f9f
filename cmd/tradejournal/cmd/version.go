package cmd

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// version is stamped at release time with
// -ldflags "-X github.com/rustyeddy/tradejournal/cmd/tradejournal/cmd.version=v1.2.0".
var version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version and build details",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), versionLine(version, readBuild()))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

type buildDetails struct {
	GoVersion string
	Module    string
	Revision  string
	Modified  bool
}

func readBuild() buildDetails {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return buildDetails{}
	}
	b := buildDetails{GoVersion: info.GoVersion, Module: info.Main.Version}
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			b.Revision = s.Value
		case "vcs.modified":
			b.Modified = s.Value == "true"
		}
	}
	return b
}

// versionLine prefers the stamped version, then the module version from
// `go install`, and appends the short commit when the binary was built
// from a checkout.
func versionLine(v string, b buildDetails) string {
	if v == "dev" && b.Module != "" && b.Module != "(devel)" {
		v = b.Module
	}
	line := "tradejournal " + v
	if b.Revision != "" {
		rev := b.Revision
		if len(rev) > 12 {
			rev = rev[:12]
		}
		if b.Modified {
			rev += "-dirty"
		}
		line += " (" + rev + ")"
	}
	if b.GoVersion != "" {
		line += " " + b.GoVersion
	}
	return line
}
