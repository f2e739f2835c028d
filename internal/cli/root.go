package cli

import (
	"github.com/adriancosta/fitflow/internal/lock"
	"github.com/adriancosta/fitflow/internal/pipeline"
	"github.com/adriancosta/fitflow/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Onboarding service.OnboardingService
	Meals      service.MealService
	Progress   service.ProgressService
	FoodImport service.FoodImportService
	Planner    *pipeline.Orchestrator
	Events     lock.Signaler

	// IsInteractive reports whether stdin is a terminal. Wizards and the
	// live progress view are only offered when it returns true.
	IsInteractive func() bool
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "fitflow" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "fitflow",
		Short: "Personal nutrition and training companion",
	}

	root.AddCommand(
		newOnboardCmd(app),
		newPlanCmd(app),
		newMealCmd(app),
		newFoodCmd(app),
		newWeightCmd(app),
		newDashboardCmd(app),
	)

	return root
}
