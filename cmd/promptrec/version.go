package main

import (
	"runtime"

	"github.com/spf13/cobra"
	"promptrec/pkg/ui"
)

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ui.PrintBanner()
		ui.PrintInfo("Version", version)
		ui.PrintInfo("Commit", gitCommit)
		ui.PrintInfo("Built", buildDate)
		ui.PrintInfo("Go", runtime.Version())
		ui.PrintInfo("OS/Arch", runtime.GOOS+"/"+runtime.GOARCH)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
