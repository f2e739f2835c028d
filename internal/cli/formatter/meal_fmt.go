package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/adriancosta/fitflow/internal/domain"
)

// FormatMealLogged renders the one-line confirmation after logging a meal.
func FormatMealLogged(m *domain.MealLog) string {
	line := fmt.Sprintf("Logged %s %s %s %s",
		Bold(m.Name),
		SourceBadge(m.Source),
		StyleYellow.Render(FormatKcal(m.Calories)),
		Dim(FormatMacros(m.Macros)))
	if m.Note != "" {
		line += "\n" + Dim(m.Note)
	}
	return line
}

// FormatMealList renders logged meals grouped by day, newest day first.
func FormatMealList(meals []*domain.MealLog) string {
	if len(meals) == 0 {
		return Dim("No meals logged yet.")
	}

	summaries := domain.SummarizeMeals(meals)

	var b strings.Builder
	for i, day := range summaries {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(fmt.Sprintf("%s  %s  %s\n",
			Bold(HumanDate(day.Date)),
			StyleYellow.Render(FormatKcal(day.Calories)),
			Dim(FormatMacros(day.Macros))))

		rows := make([][]string, 0, day.Meals)
		for _, m := range meals {
			if !sameDay(m.LoggedAt, day.Date) {
				continue
			}
			rows = append(rows, []string{
				m.LoggedAt.Format("15:04"),
				m.Name,
				SourceBadge(m.Source),
				FormatGrams(m.Grams),
				FormatKcal(m.Calories),
				TruncID(m.ID),
			})
		}
		b.WriteString(RenderTable([]string{"Time", "Meal", "Via", "Portion", "Energy", "ID"}, rows))
	}

	return strings.TrimRight(b.String(), "\n")
}

// FormatFoodList renders food database search results.
func FormatFoodList(foods []*domain.Food) string {
	if len(foods) == 0 {
		return Dim("No matching foods.")
	}

	rows := make([][]string, 0, len(foods))
	for _, f := range foods {
		brand := f.Brand
		if brand == "" {
			brand = Dim("--")
		}
		barcode := f.Barcode
		if barcode == "" {
			barcode = Dim("--")
		}
		rows = append(rows, []string{
			f.Name,
			brand,
			barcode,
			FormatKcal(f.CaloriesPer100) + Dim("/100g"),
			FormatMacros(f.MacrosPer100),
		})
	}
	return RenderTable([]string{"Food", "Brand", "Barcode", "Energy", "Macros"}, rows)
}

func sameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
