package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/adriancosta/fitflow/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newDashboardCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "dashboard",
		Aliases: []string{"today"},
		Short:   "Show today's intake, streak, and weight trend",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := app.Progress.Dashboard(context.Background(), time.Now())
			if err != nil {
				return err
			}

			if data.Profile == nil {
				fmt.Println(formatter.Dim("No profile yet. Run 'fitflow onboard' to get started."))
			}
			fmt.Println(formatter.FormatDashboard(data))
			return nil
		},
	}
}
