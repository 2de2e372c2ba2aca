package diary

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	dbPath         string
	logLevel       string
	onParseError   string
	storeNamespace string
)

var rootCmd = &cobra.Command{
	Use:           "diary",
	Short:         "diary keeps a local food diary from your terminal",
	Long:          "diary is a local-first food diary: log products and recipes, keep quick-add products, set a daily calorie goal and track progress.",
	SilenceErrors: true,
	SilenceUsage:  true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, describeError(err))
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to SQLite database (env DIARY_DB)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level: debug, info, warn or error")
	rootCmd.PersistentFlags().StringVar(&onParseError, "on-parse-error", "reset", "What to do with unreadable stored data: reset or skip")
	rootCmd.PersistentFlags().StringVar(&storeNamespace, "namespace", "", "Preferences namespace inside the database (default FoodDiary)")
}
