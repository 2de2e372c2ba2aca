package diary

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/saadjs/fooddiary/internal/ledger"
)

var resetConfirm bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete every diary entry, recipe, product and setting",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !resetConfirm {
			return fmt.Errorf("refusing to reset without --yes")
		}
		return withLedger(cmd, func(ctx context.Context, l *ledger.Ledger) error {
			if err := l.Clear(ctx); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Diary cleared")
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(resetCmd)
	resetCmd.Flags().BoolVar(&resetConfirm, "yes", false, "Confirm deleting all data")
}
