package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/adriancosta/fitflow/internal/cli/formatter"
	"github.com/adriancosta/fitflow/internal/domain"
	"github.com/adriancosta/fitflow/internal/lock"
	"github.com/adriancosta/fitflow/internal/pipeline"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newPlanCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Generate and inspect your program",
	}

	cmd.AddCommand(
		newPlanRunCmd(app),
		newPlanStatusCmd(app),
		newPlanShowCmd(app),
		newPlanRetryCmd(app),
		newPlanContinueCmd(app),
	)

	return cmd
}

func newPlanRunCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run the plan generation pipeline",
		Long: "Generates the nutrition plan, workout plan, and journey stages. " +
			"Re-running a finished session returns the stored program without " +
			"calling the generation server.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return executePlan(app, app.Planner.Run)
		},
	}
}

func newPlanRetryCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "retry",
		Short: "Retry a failed or stuck generation",
		RunE: func(cmd *cobra.Command, args []string) error {
			return executePlan(app, app.Planner.Retry)
		},
	}
}

func newPlanContinueCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "continue",
		Short: "Force-finish a session stuck before completion",
		Long: "Rebuilds the program from whatever the current session already " +
			"holds, even without a nutrition plan. Fails only when nothing " +
			"has been generated at all.",
		RunE: func(cmd *cobra.Command, args []string) error {
			draft, err := app.Planner.Continue(context.Background())
			if err != nil {
				if errors.Is(err, pipeline.ErrNotReady) {
					return fmt.Errorf("nothing generated yet, run 'fitflow plan run' instead")
				}
				return err
			}
			fmt.Println(formatter.FormatDraft(draft, time.Now()))
			return nil
		},
	}
}

func newPlanStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the current generation session",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := app.Planner.Status(context.Background())
			if err != nil {
				return err
			}
			if sess == nil {
				fmt.Println(formatter.Dim("No generation session yet. Run 'fitflow plan run' to start one."))
				return nil
			}
			fmt.Println(formatter.FormatPlanStatus(sess, time.Now()))
			return nil
		},
	}
}

func newPlanShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the generated program",
		RunE: func(cmd *cobra.Command, args []string) error {
			draft, err := app.Planner.Draft(context.Background())
			if err != nil {
				return err
			}
			if draft == nil {
				fmt.Println(formatter.Dim("No program available. Run 'fitflow plan run' to generate one."))
				return nil
			}
			fmt.Println(formatter.FormatDraft(draft, time.Now()))
			return nil
		},
	}
}

// pipelineFunc is either Orchestrator.Run or Orchestrator.Retry.
type pipelineFunc func(ctx context.Context) (*domain.ProgramDraft, error)

// executePlan runs the pipeline with a live TUI on a terminal and a plain
// line-per-event log otherwise.
func executePlan(app *App, run pipelineFunc) error {
	ctx := context.Background()

	var draft *domain.ProgramDraft
	var err error
	if app.interactive() {
		draft, err = runPlanTUI(ctx, app, run)
	} else {
		draft, err = runPlanPlain(ctx, app, run)
	}
	if err != nil {
		return planRunError(err)
	}

	fmt.Println(formatter.FormatDraft(draft, time.Now()))
	return nil
}

// runPlanPlain executes the pipeline while echoing hub events as log lines.
func runPlanPlain(ctx context.Context, app *App, run pipelineFunc) (*domain.ProgramDraft, error) {
	events, cancel := app.Events.Subscribe()
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for ev := range events {
			if line := planEventLine(ev); line != "" {
				fmt.Println(line)
			}
		}
	}()

	draft, err := run(ctx)
	cancel()
	<-done
	return draft, err
}

// Plain-mode printers; fatih/color degrades cleanly when the output is
// piped, unlike the lipgloss styles used by the TUI.
var (
	plainDim  = color.New(color.Faint)
	plainFail = color.New(color.FgRed)
)

func planEventLine(ev lock.Event) string {
	switch ev.Kind {
	case lock.EventProgress:
		return fmt.Sprintf("%3d%%  %s", ev.Progress, ev.Message)
	case lock.EventArtifact:
		return fmt.Sprintf("      %s %s", ev.Artifact, ev.Status)
	case lock.EventStillWorking:
		return plainDim.Sprint("      " + ev.Message)
	case lock.EventFailed:
		return plainFail.Sprint("      generation failed: " + ev.Message)
	default:
		return ""
	}
}

// planRunError translates pipeline sentinels into user-facing guidance.
func planRunError(err error) error {
	switch {
	case errors.Is(err, pipeline.ErrNoProfile):
		return fmt.Errorf("no profile yet, run 'fitflow onboard' first")
	case errors.Is(err, pipeline.ErrLocked):
		return fmt.Errorf("another fitflow process is already generating; check 'fitflow plan status'")
	case errors.Is(err, pipeline.ErrStillWorking):
		return fmt.Errorf("the server is still working on your plan; run 'fitflow plan retry' in a moment")
	case errors.Is(err, pipeline.ErrOffline):
		return fmt.Errorf("generation server unreachable; check your connection and run 'fitflow plan retry'")
	default:
		return err
	}
}
