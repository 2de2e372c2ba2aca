package diary

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/saadjs/fooddiary/internal/ledger"
)

var doctorFix bool

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check stored collections for unreadable data",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withLedger(cmd, func(ctx context.Context, l *ledger.Ledger) error {
			check := l.Check
			if doctorFix {
				check = l.Repair
			}
			reports, err := check(ctx)
			if err != nil {
				return err
			}
			printReports(cmd.OutOrStdout(), reports)
			if doctorFix {
				// Re-check after repairing so the exit status reflects the final state.
				if reports, err = l.Check(ctx); err != nil {
					return err
				}
			}
			for _, r := range reports {
				if !r.Healthy() {
					return fmt.Errorf("doctor found unreadable data (run with --fix to repair)")
				}
			}
			return nil
		})
	},
}

func printReports(w io.Writer, reports []ledger.CollectionReport) {
	fmt.Fprintln(w, "KEY\tELEMENTS\tMALFORMED\tCORRUPT")
	for _, r := range reports {
		fmt.Fprintf(w, "%s\t%d\t%d\t%t\n", r.Key, r.Elements, r.Malformed, r.Corrupt)
	}
}

func init() {
	rootCmd.AddCommand(doctorCmd)
	doctorCmd.Flags().BoolVar(&doctorFix, "fix", false, "Drop malformed elements and reset corrupt collections")
}
