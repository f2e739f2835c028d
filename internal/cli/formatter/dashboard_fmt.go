package formatter

import (
	"fmt"
	"strings"

	"github.com/adriancosta/fitflow/internal/service"
)

// FormatDashboard renders the daily overview screen.
func FormatDashboard(data *service.DashboardData) string {
	var b strings.Builder

	b.WriteString(Header("Today"))
	b.WriteString("\n\n")

	if data.CalorieTarget > 0 {
		pct := data.Today.Calories / float64(data.CalorieTarget)
		b.WriteString(fmt.Sprintf("%s of %s\n%s\n",
			StyleYellow.Render(FormatKcal(data.Today.Calories)),
			FormatKcal(float64(data.CalorieTarget)),
			renderBudget(pct, 24)))
	} else {
		b.WriteString(StyleYellow.Render(FormatKcal(data.Today.Calories)) + "\n")
	}
	b.WriteString(FormatMacros(data.Today.Macros) + "\n")
	b.WriteString(fmt.Sprintf("%d meals logged\n", data.Today.Meals))

	b.WriteString("\n")
	if data.Streak > 0 {
		b.WriteString(fmt.Sprintf("%s %d-day logging streak\n", StyleGreen.Render("▲"), data.Streak))
	} else {
		b.WriteString(Dim("No logging streak yet.") + "\n")
	}

	if data.LatestWeight != nil {
		b.WriteString(fmt.Sprintf("Weight %s kg", Bold(fmt.Sprintf("%.1f", data.LatestWeight.WeightKg))))
		if data.WeightTrend != 0 {
			b.WriteString(fmt.Sprintf("  %s this week", SignedKg(data.WeightTrend)))
		}
		b.WriteString("\n")
	}

	if len(data.Days) > 1 {
		b.WriteString("\n" + Bold("Last days") + "\n")
		rows := make([][]string, 0, len(data.Days))
		for _, day := range data.Days {
			rows = append(rows, []string{
				HumanDate(day.Date),
				FormatKcal(day.Calories),
				FormatMacros(day.Macros),
				fmt.Sprintf("%d meals", day.Meals),
			})
		}
		b.WriteString(RenderTable([]string{"Day", "Energy", "Macros", "Logged"}, rows))
	}

	return strings.TrimRight(b.String(), "\n")
}

// renderBudget colors the bar by how much of the calorie budget is used:
// green inside budget, yellow near the line, red over it. This inverts
// the progress-bar palette, where more filled is better.
func renderBudget(pct float64, width int) string {
	if pct < 0 {
		pct = 0
	}
	display := pct
	if display > 1 {
		display = 1
	}

	filled := int(display * float64(width))
	bar := strings.Repeat(barFilled, filled) + strings.Repeat(barEmpty, width-filled)

	style := StyleGreen
	if pct > 1 {
		style = StyleRed
	} else if pct > 0.85 {
		style = StyleYellow
	}

	return fmt.Sprintf("[%s] %3.0f%%", style.Render(bar), pct*100)
}
