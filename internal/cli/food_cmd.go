package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/adriancosta/fitflow/internal/cli/formatter"
	"github.com/adriancosta/fitflow/internal/domain"
	"github.com/spf13/cobra"
)

func newFoodCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "food",
		Short: "Search and maintain the food database",
	}

	cmd.AddCommand(
		newFoodSearchCmd(app),
		newFoodLogCmd(app),
		newFoodImportCmd(app),
	)

	return cmd
}

func newFoodSearchCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "search QUERY",
		Short: "Search the food database by name",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			foods, err := app.Meals.SearchFoods(context.Background(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Println(formatter.FormatFoodList(foods))
			return nil
		},
	}
}

func newFoodLogCmd(app *App) *cobra.Command {
	var grams float64

	cmd := &cobra.Command{
		Use:   "log NAME",
		Short: "Log a portion of a food from the database",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			query := strings.Join(args, " ")

			foods, err := app.Meals.SearchFoods(ctx, query)
			if err != nil {
				return err
			}

			food, err := pickFood(foods, query)
			if err != nil {
				return err
			}

			m, err := app.Meals.LogFood(ctx, food, grams, time.Now())
			if err != nil {
				return err
			}

			fmt.Println(formatter.FormatMealLogged(m))
			return nil
		},
	}

	cmd.Flags().Float64Var(&grams, "grams", 100, "Portion size in grams")

	return cmd
}

// pickFood resolves a search result set to a single food: exact name match
// wins, otherwise the query must be unambiguous.
func pickFood(foods []*domain.Food, query string) (*domain.Food, error) {
	switch len(foods) {
	case 0:
		return nil, fmt.Errorf("no food matching %q, try 'fitflow food search'", query)
	case 1:
		return foods[0], nil
	}

	for _, f := range foods {
		if strings.EqualFold(f.Name, query) {
			return f, nil
		}
	}
	return nil, fmt.Errorf("%q matches %d foods, be more specific", query, len(foods))
}

func newFoodImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Import a food catalog from a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := app.FoodImport.ImportCatalog(context.Background(), args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Imported %d foods from %s\n", result.Imported, result.Source)
			return nil
		},
	}
}
