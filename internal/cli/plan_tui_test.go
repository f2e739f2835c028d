package cli

import (
	"regexp"
	"testing"

	"github.com/adriancosta/fitflow/internal/domain"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var tuiAnsiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func plainView(m tea.Model) string {
	return tuiAnsiPattern.ReplaceAllString(m.View(), "")
}

func TestPlanModel_ProgressEventsAdvanceView(t *testing.T) {
	var m tea.Model = newPlanModel(make(chan planEvent))

	m, _ = m.Update(planEventMsg{
		event: planEvent{kind: "progress", progress: 30, message: "Crafting your nutrition plan"},
		ok:    true,
	})

	view := plainView(m)
	assert.Contains(t, view, " 30%")
	assert.Contains(t, view, "Crafting your nutrition plan")
}

func TestPlanModel_ProgressNeverRewinds(t *testing.T) {
	events := make(chan planEvent, 8)
	var m tea.Model = newPlanModel(events)

	m, _ = m.Update(planEventMsg{event: planEvent{kind: "progress", progress: 70}, ok: true})
	m, _ = m.Update(planEventMsg{event: planEvent{kind: "progress", progress: 50}, ok: true})

	assert.Contains(t, plainView(m), " 70%")
}

func TestPlanModel_ArtifactEventsUpdateStatusLines(t *testing.T) {
	var m tea.Model = newPlanModel(make(chan planEvent))

	m, _ = m.Update(planEventMsg{
		event: planEvent{kind: "artifact", artifact: domain.ArtifactNutrition, status: domain.SubPlanReady},
		ok:    true,
	})

	view := plainView(m)
	assert.Contains(t, view, "✔ Ready")
	assert.Contains(t, view, "○ Pending") // workout and stages untouched
}

func TestPlanModel_StillWorkingNotice(t *testing.T) {
	var m tea.Model = newPlanModel(make(chan planEvent))

	m, _ = m.Update(planEventMsg{
		event: planEvent{kind: "still_working", message: "Taking a little longer than usual"},
		ok:    true,
	})
	assert.Contains(t, plainView(m), "Taking a little longer than usual")

	// The next progress event clears the notice.
	m, _ = m.Update(planEventMsg{event: planEvent{kind: "progress", progress: 50}, ok: true})
	assert.NotContains(t, plainView(m), "Taking a little longer")
}

func TestPlanModel_DoneQuits(t *testing.T) {
	var m tea.Model = newPlanModel(make(chan planEvent))

	m, cmd := m.Update(planDoneMsg{draft: &domain.ProgramDraft{}})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
	assert.Empty(t, m.View())
}

func TestPlanModel_CtrlCLeavesView(t *testing.T) {
	var m tea.Model = newPlanModel(make(chan planEvent))

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}
