package diary

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/saadjs/fooddiary/internal/ledger"
)

var progressJSON bool

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Compare calories logged with the daily goal",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withLedger(cmd, func(ctx context.Context, l *ledger.Ledger) error {
			p, err := l.Progress(ctx)
			if err != nil {
				return err
			}
			if progressJSON {
				b, err := json.MarshalIndent(p, "", "  ")
				if err != nil {
					return fmt.Errorf("marshal progress json: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(b))
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Consumed: %d kcal\n", p.Consumed)
			if !p.HasGoal() {
				fmt.Fprintln(cmd.OutOrStdout(), "Goal not set")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Goal: %d kcal\nRemaining: %d kcal\nProgress: %d%%\n", p.Goal, p.Remaining, *p.Percent)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(progressCmd)
	progressCmd.Flags().BoolVar(&progressJSON, "json", false, "Output JSON")
}
