package diary

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/saadjs/fooddiary/internal/ledger"
)

var recipeCmd = &cobra.Command{
	Use:   "recipe",
	Short: "Manage recipes",
}

var (
	recipeName        string
	recipeIngredients string
	recipeCalories    string
)

var recipeAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Save a recipe and log it into the diary",
	RunE: func(cmd *cobra.Command, args []string) error {
		in := ledger.RecipeInput{Name: recipeName, Ingredients: recipeIngredients, Calories: recipeCalories}
		return withLedger(cmd, func(ctx context.Context, l *ledger.Ledger) error {
			r, err := l.AddRecipe(ctx, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added recipe %s (%d kcal)\n", r.Name, r.Calories)
			return nil
		})
	},
}

var recipeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recipes",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withLedger(cmd, func(ctx context.Context, l *ledger.Ledger) error {
			recipes, err := l.ListRecipes(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "NAME\tKCAL\tINGREDIENTS")
			for _, r := range recipes {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\t%s\n", r.Name, r.Calories, r.Ingredients)
			}
			return nil
		})
	},
}

var recipeLogCmd = &cobra.Command{
	Use:   "log <name>",
	Short: "Log a stored recipe into the diary",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := strings.Join(args, " ")
		return withLedger(cmd, func(ctx context.Context, l *ledger.Ledger) error {
			e, err := l.LogRecipe(ctx, name)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged %s (%d kcal) at %s\n", e.Name, e.Calories, e.Time.Format(ledger.TimeLayout))
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(recipeCmd)
	recipeCmd.AddCommand(recipeAddCmd, recipeListCmd, recipeLogCmd)

	recipeAddCmd.Flags().StringVar(&recipeName, "name", "", "Recipe name")
	recipeAddCmd.Flags().StringVar(&recipeIngredients, "ingredients", "", "Ingredients, free text")
	recipeAddCmd.Flags().StringVar(&recipeCalories, "calories", "", "Calories for one serving")
}
