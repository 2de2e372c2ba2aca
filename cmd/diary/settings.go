package diary

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/saadjs/fooddiary/internal/ledger"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage display settings",
}

var settingsColorCmd = &cobra.Command{
	Use:   "color [name]",
	Short: "Show or set the background color",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return withLedger(cmd, func(ctx context.Context, l *ledger.Ledger) error {
				c, err := l.BackgroundColor(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Background color: %s\n", ledger.ThemeName(c))
				return nil
			})
		}
		color, ok := ledger.ThemeColor(args[0])
		if !ok {
			return fmt.Errorf("unknown color %q (use %s)", args[0], strings.Join(ledger.ThemeNames(), ", "))
		}
		return withLedger(cmd, func(ctx context.Context, l *ledger.Ledger) error {
			if err := l.SetBackgroundColor(ctx, color); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Background color set to %s\n", ledger.ThemeName(color))
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(settingsCmd)
	settingsCmd.AddCommand(settingsColorCmd)
}
