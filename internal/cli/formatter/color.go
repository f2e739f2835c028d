package formatter

import (
	"fmt"
	"strings"

	"github.com/adriancosta/fitflow/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// SessionPill returns a colored status indicator for a plan session.
func SessionPill(status domain.SessionStatus) string {
	switch status {
	case domain.SessionRunning:
		return StyleYellow.Render("● Generating")
	case domain.SessionDone:
		return StyleGreen.Render("✔ Ready")
	case domain.SessionFailed:
		return StyleRed.Render("✖ Failed")
	case domain.SessionIdle:
		return StyleDim.Render("○ Idle")
	default:
		return StyleDim.Render(string(status))
	}
}

// ArtifactPill returns a colored status indicator for one sub-plan.
func ArtifactPill(status domain.SubPlanStatus) string {
	switch status {
	case domain.SubPlanPending:
		return StyleDim.Render("○ Pending")
	case domain.SubPlanGenerating:
		return StyleYellow.Render("◐ Generating")
	case domain.SubPlanReady:
		return StyleGreen.Render("✔ Ready")
	case domain.SubPlanFailed:
		return StyleRed.Render("✖ Failed")
	default:
		return StyleDim.Render(string(status))
	}
}

// SourceBadge returns a short colored label for a meal's capture path.
func SourceBadge(src domain.MealSource) string {
	switch src {
	case domain.MealPhoto:
		return StylePurple.Render("photo")
	case domain.MealBarcode:
		return StyleBlue.Render("scan")
	case domain.MealSearch:
		return StyleBlue.Render("search")
	default:
		return StyleDim.Render("manual")
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
