package main

import (
	"fmt"
	"runtime/debug"

	"github.com/fatih/color"
	"github.com/katalvlaran/seqgram/archive"
	"github.com/spf13/cobra"
)

// Version is stamped at build time with -ldflags "-X main.Version=...".
var Version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show the seqz version",
	RunE: func(cmd *cobra.Command, args []string) error {
		v := Version
		if v == "dev" {
			if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
				v = info.Main.Version
			}
		}
		name := color.New(color.FgYellow, color.Bold)
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s (archive schema %d)\n", name.Sprint("seqz"), v, archive.SchemaVersion)
		return nil
	},
}
