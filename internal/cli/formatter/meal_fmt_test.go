package formatter

import (
	"testing"
	"time"

	"github.com/adriancosta/fitflow/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestFormatMealLogged(t *testing.T) {
	m := &domain.MealLog{
		Name:     "Greek Yogurt 5%",
		Source:   domain.MealBarcode,
		Calories: 194,
		Macros:   domain.Macros{ProteinG: 18, CarbsG: 7.8, FatG: 10},
		Grams:    200,
	}

	out := stripANSI(FormatMealLogged(m))

	assert.Contains(t, out, "Logged Greek Yogurt 5%")
	assert.Contains(t, out, "scan")
	assert.Contains(t, out, "194 kcal")
	assert.Contains(t, out, "P 18g")
}

func TestFormatMealLogged_IncludesNote(t *testing.T) {
	m := &domain.MealLog{
		Name:     "Lunch plate",
		Source:   domain.MealPhoto,
		Calories: 640,
		Note:     "photo estimate, confidence 82%",
	}

	out := stripANSI(FormatMealLogged(m))
	assert.Contains(t, out, "photo estimate, confidence 82%")
}

func TestFormatMealList_GroupsByDay(t *testing.T) {
	today := time.Now()
	yesterday := today.AddDate(0, 0, -1)

	meals := []*domain.MealLog{
		{ID: "m1", Name: "Oatmeal", Source: domain.MealManual, Calories: 420, LoggedAt: today},
		{ID: "m2", Name: "Banana", Source: domain.MealSearch, Calories: 107, Grams: 120, LoggedAt: today},
		{ID: "m3", Name: "Pasta", Source: domain.MealManual, Calories: 700, LoggedAt: yesterday},
	}

	out := stripANSI(FormatMealList(meals))

	assert.Contains(t, out, "Today")
	assert.Contains(t, out, "Yesterday")
	assert.Contains(t, out, "527 kcal") // today's total
	assert.Contains(t, out, "Banana")
	assert.Contains(t, out, "120g")
}

func TestFormatMealList_Empty(t *testing.T) {
	assert.Contains(t, stripANSI(FormatMealList(nil)), "No meals logged yet.")
}

func TestFormatFoodList(t *testing.T) {
	foods := []*domain.Food{
		{
			Name:           "Rolled Oats",
			Brand:          "Quaker",
			Barcode:        "0030000010204",
			CaloriesPer100: 379,
			MacrosPer100:   domain.Macros{ProteinG: 13.2, CarbsG: 67.7, FatG: 6.5},
		},
		{Name: "Banana", CaloriesPer100: 89, MacrosPer100: domain.Macros{ProteinG: 1.1, CarbsG: 22.8, FatG: 0.3}},
	}

	out := stripANSI(FormatFoodList(foods))

	assert.Contains(t, out, "Rolled Oats")
	assert.Contains(t, out, "Quaker")
	assert.Contains(t, out, "0030000010204")
	assert.Contains(t, out, "379 kcal/100g")
	assert.Contains(t, out, "Banana")
}

func TestFormatFoodList_Empty(t *testing.T) {
	assert.Contains(t, stripANSI(FormatFoodList(nil)), "No matching foods.")
}
