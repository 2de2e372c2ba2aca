package diary

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/saadjs/fooddiary/internal/ledger"
)

var productCmd = &cobra.Command{
	Use:   "product",
	Short: "Manage saved quick-add products",
}

var (
	productName     string
	productCalories string
)

var productAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Save a product for quick logging",
	RunE: func(cmd *cobra.Command, args []string) error {
		in := ledger.SavedProductInput{Name: productName, Calories: productCalories}
		return withLedger(cmd, func(ctx context.Context, l *ledger.Ledger) error {
			p, err := l.AddSavedProduct(ctx, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved product %s (%d kcal)\n", p.Name, p.Calories)
			return nil
		})
	},
}

var productListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved products",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withLedger(cmd, func(ctx context.Context, l *ledger.Ledger) error {
			products, err := l.ListSavedProducts(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "NAME\tKCAL")
			for _, p := range products {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\n", p.Name, p.Calories)
			}
			return nil
		})
	},
}

var productLogCmd = &cobra.Command{
	Use:   "log <name>",
	Short: "Log a saved product into the diary",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := strings.Join(args, " ")
		return withLedger(cmd, func(ctx context.Context, l *ledger.Ledger) error {
			e, err := l.LogSavedProduct(ctx, name)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged %s (%d kcal) at %s\n", e.Name, e.Calories, e.Time.Format(ledger.TimeLayout))
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(productCmd)
	productCmd.AddCommand(productAddCmd, productListCmd, productLogCmd)

	productAddCmd.Flags().StringVar(&productName, "name", "", "Product name")
	productAddCmd.Flags().StringVar(&productCalories, "calories", "", "Calories (non-negative integer)")
}
