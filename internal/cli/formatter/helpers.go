package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/adriancosta/fitflow/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		titleRendered := StyleHeader.Render(strings.ToUpper(title))
		inner := titleRendered + "\n\n" + content
		return boxStyle.Render(inner)
	}

	return boxStyle.Render(content)
}

// HumanDate returns a human-friendly absolute date string.
func HumanDate(t time.Time) string {
	return HumanDateFrom(t, time.Now())
}

// HumanDateFrom returns a human-friendly absolute date string relative to now.
func HumanDateFrom(t time.Time, now time.Time) string {
	y1, m1, d1 := now.Date()
	y2, m2, d2 := t.Date()

	if y1 == y2 && m1 == m2 && d1 == d2 {
		return "Today"
	}
	yesterday := now.AddDate(0, 0, -1)
	y3, m3, d3 := yesterday.Date()
	if y2 == y3 && m2 == m3 && d2 == d3 {
		return "Yesterday"
	}
	return t.Format("Jan 2, 2006")
}

// HumanTimestamp returns a human-friendly relative timestamp string.
func HumanTimestamp(t time.Time) string {
	now := time.Now()
	diff := now.Sub(t)

	switch {
	case diff < 0:
		return HumanDate(t)
	case diff < time.Minute:
		return "Just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	default:
		return HumanDate(t)
	}
}

// FormatKcal renders a calorie amount as a whole number with unit.
func FormatKcal(kcal float64) string {
	return fmt.Sprintf("%.0f kcal", kcal)
}

// FormatMacros renders macros as "P 30g · C 45g · F 12g".
func FormatMacros(m domain.Macros) string {
	return fmt.Sprintf("P %.0fg · C %.0fg · F %.0fg", m.ProteinG, m.CarbsG, m.FatG)
}

// FormatGrams renders a portion size, or "--" when unknown.
func FormatGrams(g float64) string {
	if g <= 0 {
		return StyleDim.Render("--")
	}
	return fmt.Sprintf("%.0fg", g)
}

// SignedKg renders a weight delta with an explicit sign and trend color:
// losses green, gains yellow.
func SignedKg(kg float64) string {
	text := fmt.Sprintf("%+.1f kg", kg)
	switch {
	case kg < 0:
		return StyleGreen.Render(text)
	case kg > 0:
		return StyleYellow.Render(text)
	default:
		return StyleDim.Render(text)
	}
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}
