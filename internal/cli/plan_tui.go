package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/adriancosta/fitflow/internal/cli/formatter"
	"github.com/adriancosta/fitflow/internal/domain"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// planEventMsg wraps a hub event for the TUI update loop.
type planEventMsg struct {
	event planEvent
	ok    bool
}

// planEvent mirrors lock.Event without importing it here; see planModel.
type planEvent struct {
	kind     string
	progress int
	artifact domain.ArtifactKind
	status   domain.SubPlanStatus
	message  string
}

// planDoneMsg reports pipeline completion.
type planDoneMsg struct {
	draft *domain.ProgramDraft
	err   error
}

// planModel is the live generation view: a spinner, the overall progress
// bar, and one status line per artifact.
type planModel struct {
	spinner   spinner.Model
	events    <-chan planEvent
	progress  int
	message   string
	notice    string
	artifacts map[domain.ArtifactKind]domain.SubPlanStatus

	draft *domain.ProgramDraft
	err   error
	done  bool
}

func newPlanModel(events <-chan planEvent) planModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = formatter.StylePurple

	artifacts := make(map[domain.ArtifactKind]domain.SubPlanStatus, len(domain.AllArtifactKinds))
	for _, kind := range domain.AllArtifactKinds {
		artifacts[kind] = domain.SubPlanPending
	}

	return planModel{
		spinner:   sp,
		events:    events,
		message:   "Starting up",
		artifacts: artifacts,
	}
}

func (m planModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, waitForPlanEvent(m.events))
}

func waitForPlanEvent(events <-chan planEvent) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-events
		return planEventMsg{event: ev, ok: ok}
	}
}

func (m planModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case planEventMsg:
		if !msg.ok {
			// Channel closed; the done message carries the outcome.
			return m, nil
		}
		m.apply(msg.event)
		return m, waitForPlanEvent(m.events)

	case planDoneMsg:
		m.draft = msg.draft
		m.err = msg.err
		m.done = true
		return m, tea.Quit

	case tea.KeyMsg:
		// Generation keeps running in the background; ctrl+c only leaves
		// the view.
		if msg.String() == "ctrl+c" {
			m.done = true
			return m, tea.Quit
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *planModel) apply(ev planEvent) {
	switch ev.kind {
	case "progress":
		if ev.progress > m.progress {
			m.progress = ev.progress
		}
		if ev.message != "" {
			m.message = ev.message
		}
		m.notice = ""
	case "artifact":
		m.artifacts[ev.artifact] = ev.status
	case "still_working":
		m.notice = ev.message
	case "done":
		m.progress = 100
	case "failed":
		m.notice = ev.message
	}
}

func (m planModel) View() string {
	if m.done {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n  " + formatter.Header("Generating Your Program") + "\n\n")
	b.WriteString(fmt.Sprintf("  %s %s\n", m.spinner.View(), m.message))
	b.WriteString(fmt.Sprintf("  %s\n", formatter.RenderProgress(float64(m.progress)/100, 28)))
	if m.notice != "" {
		b.WriteString("  " + formatter.Dim(m.notice) + "\n")
	}
	b.WriteString("\n")
	for _, a := range []struct {
		kind  domain.ArtifactKind
		label string
	}{
		{domain.ArtifactNutrition, "Nutrition plan"},
		{domain.ArtifactWorkout, "Workout plan"},
		{domain.ArtifactStages, "Journey stages"},
	} {
		b.WriteString(fmt.Sprintf("  %-16s %s\n", a.label, formatter.ArtifactPill(m.artifacts[a.kind])))
	}
	b.WriteString("\n  " + formatter.Dim("ctrl+c leaves the view, generation keeps running") + "\n")
	return b.String()
}

// runPlanTUI drives the pipeline under a bubbletea progress view.
func runPlanTUI(ctx context.Context, app *App, run pipelineFunc) (*domain.ProgramDraft, error) {
	events, cancel := app.Events.Subscribe()
	defer cancel()

	// Bridge hub events into the model's unexported event type.
	bridged := make(chan planEvent, 64)
	go func() {
		defer close(bridged)
		for ev := range events {
			bridged <- planEvent{
				kind:     string(ev.Kind),
				progress: ev.Progress,
				artifact: ev.Artifact,
				status:   ev.Status,
				message:  ev.Message,
			}
		}
	}()

	prog := tea.NewProgram(newPlanModel(bridged))

	result := make(chan planDoneMsg, 1)
	go func() {
		draft, err := run(ctx)
		msg := planDoneMsg{draft: draft, err: err}
		result <- msg
		prog.Send(msg)
	}()

	if _, err := prog.Run(); err != nil {
		return nil, err
	}

	// The view may have been left early; the pipeline outcome still
	// decides what to report.
	msg := <-result
	return msg.draft, msg.err
}
