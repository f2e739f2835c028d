package cli

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/adriancosta/fitflow/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newWeightCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "weight",
		Short: "Track body weight",
	}

	cmd.AddCommand(
		newWeightLogCmd(app),
		newWeightListCmd(app),
	)

	return cmd
}

func newWeightLogCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "log KG",
		Short: "Log a weight measurement",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kg, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("invalid weight %q: %w", args[0], err)
			}

			entry, err := app.Progress.LogWeight(context.Background(), kg, time.Now())
			if err != nil {
				return err
			}

			fmt.Printf("Logged %s kg\n", formatter.Bold(fmt.Sprintf("%.1f", entry.WeightKg)))
			return nil
		},
	}
}

func newWeightListCmd(app *App) *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent weight measurements",
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := app.Progress.ListWeights(context.Background(), days)
			if err != nil {
				return err
			}

			if len(entries) == 0 {
				fmt.Println(formatter.Dim("No weight entries yet."))
				return nil
			}

			rows := make([][]string, 0, len(entries))
			for _, e := range entries {
				rows = append(rows, []string{
					formatter.HumanDate(e.RecordedAt),
					fmt.Sprintf("%.1f kg", e.WeightKg),
					formatter.TruncID(e.ID),
				})
			}
			fmt.Println(formatter.RenderTable([]string{"Date", "Weight", "ID"}, rows))
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", 30, "How many days back to show")

	return cmd
}
