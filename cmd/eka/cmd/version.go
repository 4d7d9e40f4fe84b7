package cmd

import (
	"fmt"

	"github.com/eka-lang/eka/internal/runtime"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Display the interpreter version, commit, build date, and whether this binary's garbage collector was built with its internal consistency checks (eka_debug tag) enabled.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("eka version %s\n", Version)
		fmt.Printf("Git Commit: %s\n", GitCommit)
		fmt.Printf("Build Date: %s\n", BuildDate)
		fmt.Printf("GC debug assertions: %s\n", debugStatus(runtime.DebugBuild))
	},
}

func debugStatus(enabled bool) string {
	if enabled {
		return "enabled"
	}
	return "disabled"
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
