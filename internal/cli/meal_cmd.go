package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/adriancosta/fitflow/internal/cli/formatter"
	"github.com/adriancosta/fitflow/internal/domain"
	"github.com/spf13/cobra"
)

func newMealCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "meal",
		Short: "Log and review meals",
	}

	cmd.AddCommand(
		newMealLogCmd(app),
		newMealPhotoCmd(app),
		newMealScanCmd(app),
		newMealListCmd(app),
		newMealRemoveCmd(app),
	)

	return cmd
}

func newMealLogCmd(app *App) *cobra.Command {
	var (
		name, note, at           string
		calories, protein, carbs float64
		fat, grams               float64
	)

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Log a meal by hand",
		RunE: func(cmd *cobra.Command, args []string) error {
			loggedAt, err := parseLoggedAt(at)
			if err != nil {
				return err
			}

			m := &domain.MealLog{
				Name:     name,
				Source:   domain.MealManual,
				Calories: calories,
				Macros:   domain.Macros{ProteinG: protein, CarbsG: carbs, FatG: fat},
				Grams:    grams,
				Note:     note,
				LoggedAt: loggedAt,
			}
			if err := app.Meals.LogManual(context.Background(), m); err != nil {
				return err
			}

			fmt.Println(formatter.FormatMealLogged(m))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Meal name")
	cmd.Flags().Float64Var(&calories, "calories", 0, "Energy in kcal")
	cmd.Flags().Float64Var(&protein, "protein", 0, "Protein in grams")
	cmd.Flags().Float64Var(&carbs, "carbs", 0, "Carbohydrates in grams")
	cmd.Flags().Float64Var(&fat, "fat", 0, "Fat in grams")
	cmd.Flags().Float64Var(&grams, "grams", 0, "Portion size in grams")
	cmd.Flags().StringVar(&note, "note", "", "Free-form note")
	cmd.Flags().StringVar(&at, "at", "", "When the meal was eaten (HH:MM or YYYY-MM-DD HH:MM, default now)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("calories")

	return cmd
}

func newMealPhotoCmd(app *App) *cobra.Command {
	var at string

	cmd := &cobra.Command{
		Use:   "photo FILE",
		Short: "Log a meal from a photo",
		Long: "Sends the photo to the analysis endpoint and logs the returned " +
			"estimate. The estimate's confidence is recorded in the meal note.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			loggedAt, err := parseLoggedAt(at)
			if err != nil {
				return err
			}

			image, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading photo: %w", err)
			}

			stop := formatter.StartSpinner("Analyzing photo")
			m, err := app.Meals.LogFromPhoto(context.Background(), image, loggedAt)
			stop()
			if err != nil {
				return err
			}

			fmt.Println(formatter.FormatMealLogged(m))
			return nil
		},
	}

	cmd.Flags().StringVar(&at, "at", "", "When the meal was eaten (HH:MM or YYYY-MM-DD HH:MM, default now)")

	return cmd
}

func newMealScanCmd(app *App) *cobra.Command {
	var grams float64
	var at string

	cmd := &cobra.Command{
		Use:   "scan BARCODE",
		Short: "Log a packaged food by barcode",
		Long: "Resolves the barcode against the local food database first and " +
			"falls back to the remote lookup, caching the result for next time.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			loggedAt, err := parseLoggedAt(at)
			if err != nil {
				return err
			}

			m, err := app.Meals.LogFromBarcode(context.Background(), args[0], grams, loggedAt)
			if err != nil {
				return err
			}

			fmt.Println(formatter.FormatMealLogged(m))
			return nil
		},
	}

	cmd.Flags().Float64Var(&grams, "grams", 100, "Portion size in grams")
	cmd.Flags().StringVar(&at, "at", "", "When the meal was eaten (HH:MM or YYYY-MM-DD HH:MM, default now)")

	return cmd
}

func newMealListCmd(app *App) *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent meals",
		RunE: func(cmd *cobra.Command, args []string) error {
			meals, err := app.Meals.ListRecent(context.Background(), days)
			if err != nil {
				return err
			}
			fmt.Println(formatter.FormatMealList(meals))
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", 7, "How many days back to show")

	return cmd
}

func newMealRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove ID",
		Short: "Remove a logged meal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Meals.Delete(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Printf("Removed meal %s\n", args[0])
			return nil
		},
	}
}

// parseLoggedAt accepts a bare time of day, a full local timestamp, or
// empty for now.
func parseLoggedAt(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Now(), nil
	}

	if t, err := time.ParseInLocation("15:04", s, time.Local); err == nil {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), t.Hour(), t.Minute(), 0, 0, time.Local), nil
	}
	if t, err := time.ParseInLocation("2006-01-02 15:04", s, time.Local); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid time %q, expected HH:MM or YYYY-MM-DD HH:MM", s)
}
