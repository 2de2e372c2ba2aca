package diary

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/saadjs/fooddiary/internal/ledger"
)

var goalCmd = &cobra.Command{
	Use:   "goal",
	Short: "Manage the daily calorie goal",
}

var goalSetCmd = &cobra.Command{
	Use:   "set <kcal>",
	Short: "Set the daily calorie goal (0 clears it)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		calories, err := ledger.ParseDailyGoal(args[0])
		if err != nil {
			return err
		}
		return withLedger(cmd, func(ctx context.Context, l *ledger.Ledger) error {
			if err := l.SetDailyGoal(ctx, calories); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Daily goal set to %d kcal\n", calories)
			return nil
		})
	},
}

var goalShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the daily calorie goal",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withLedger(cmd, func(ctx context.Context, l *ledger.Ledger) error {
			goal, err := l.DailyGoal(ctx)
			if err != nil {
				return err
			}
			if goal == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Goal not set")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Daily goal: %d kcal\n", goal)
			return nil
		})
	},
}

var goalListCmd = &cobra.Command{
	Use:   "list",
	Short: "List named goals",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withLedger(cmd, func(ctx context.Context, l *ledger.Ledger) error {
			goals, err := l.ListGoals(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "NAME\tPROGRESS")
			for _, g := range goals {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d%%\n", g.Name, g.Progress)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(goalCmd)
	goalCmd.AddCommand(goalSetCmd, goalShowCmd, goalListCmd)
}
