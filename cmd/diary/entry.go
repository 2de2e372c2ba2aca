package diary

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/saadjs/fooddiary/internal/ledger"
	"github.com/saadjs/fooddiary/internal/model"
)

var entryCmd = &cobra.Command{
	Use:   "entry",
	Short: "Log and list diary entries",
}

var (
	entryName        string
	entryCalories    string
	entryRecipe      bool
	entryIngredients string
)

var entryAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Log a product or recipe into the diary",
	RunE: func(cmd *cobra.Command, args []string) error {
		in := ledger.EntryInput{
			Kind:        model.KindProduct,
			Name:        entryName,
			Calories:    entryCalories,
			Ingredients: entryIngredients,
		}
		if entryRecipe {
			in.Kind = model.KindRecipe
		}
		return withLedger(cmd, func(ctx context.Context, l *ledger.Ledger) error {
			e, err := l.AppendEntry(ctx, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged %s (%d kcal) at %s\n", e.Name, e.Calories, e.Time.Format(ledger.TimeLayout))
			return nil
		})
	},
}

var entryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List diary entries, most recent first",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withLedger(cmd, func(ctx context.Context, l *ledger.Ledger) error {
			entries, err := l.ListEntries(ctx)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Diary is empty")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), "TIME\tKIND\tKCAL\tNAME\tINGREDIENTS")
			for _, e := range entries {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%d\t%s\t%s\n", e.Time.Format(ledger.TimeLayout), e.Kind, e.Calories, e.Name, e.Ingredients)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(entryCmd)
	entryCmd.AddCommand(entryAddCmd, entryListCmd)

	entryAddCmd.Flags().StringVar(&entryName, "name", "", "Product or recipe name")
	entryAddCmd.Flags().StringVar(&entryCalories, "calories", "", "Calories (non-negative integer)")
	entryAddCmd.Flags().BoolVar(&entryRecipe, "recipe", false, "Log a recipe instead of a product")
	entryAddCmd.Flags().StringVar(&entryIngredients, "ingredients", "", "Recipe ingredients (with --recipe)")
}
