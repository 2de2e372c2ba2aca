package diary

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// Set at build time with -ldflags "-X github.com/saadjs/fooddiary/cmd/diary.version=...".
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version/build metadata",
	Run: func(cmd *cobra.Command, args []string) {
		printVersion(cmd)
	},
}

func printVersion(cmd *cobra.Command) {
	fmt.Fprintf(cmd.OutOrStdout(), "diary %s\ncommit: %s\nbuilt: %s\ngo: %s\n", version, commit, date, runtime.Version())
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
