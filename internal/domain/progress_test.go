package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	require.NoError(t, err)
	return d
}

func TestSummarizeMeals_BucketsByDay(t *testing.T) {
	meals := []*MealLog{
		{Calories: 400, Macros: Macros{ProteinG: 30}, LoggedAt: day(t, "2026-08-28").Add(8 * time.Hour)},
		{Calories: 600, Macros: Macros{ProteinG: 40}, LoggedAt: day(t, "2026-08-28").Add(13 * time.Hour)},
		{Calories: 500, LoggedAt: day(t, "2026-08-27").Add(19 * time.Hour)},
	}

	summaries := SummarizeMeals(meals)
	require.Len(t, summaries, 2)

	// Newest day first.
	assert.Equal(t, day(t, "2026-08-28"), summaries[0].Date)
	assert.Equal(t, 1000.0, summaries[0].Calories)
	assert.Equal(t, 70.0, summaries[0].Macros.ProteinG)
	assert.Equal(t, 2, summaries[0].Meals)

	assert.Equal(t, day(t, "2026-08-27"), summaries[1].Date)
	assert.Equal(t, 500.0, summaries[1].Calories)
}

func TestLoggingStreak_ConsecutiveDays(t *testing.T) {
	now := day(t, "2026-08-29").Add(10 * time.Hour)
	summaries := []DailySummary{
		{Date: day(t, "2026-08-29"), Meals: 1},
		{Date: day(t, "2026-08-28"), Meals: 2},
		{Date: day(t, "2026-08-27"), Meals: 1},
		{Date: day(t, "2026-08-25"), Meals: 3}, // gap on the 26th
	}

	assert.Equal(t, 3, LoggingStreak(summaries, now))
}

func TestLoggingStreak_SurvivesUntilFullDayMissed(t *testing.T) {
	// Nothing logged today yet; the streak counts from yesterday.
	now := day(t, "2026-08-29").Add(9 * time.Hour)
	summaries := []DailySummary{
		{Date: day(t, "2026-08-28"), Meals: 1},
		{Date: day(t, "2026-08-27"), Meals: 1},
	}

	assert.Equal(t, 2, LoggingStreak(summaries, now))
}

func TestLoggingStreak_EmptyIsZero(t *testing.T) {
	assert.Equal(t, 0, LoggingStreak(nil, time.Now()))
}

func TestWeightTrend_OldestToNewestInWindow(t *testing.T) {
	now := day(t, "2026-08-29")
	entries := []*WeightEntry{
		{WeightKg: 70.0, RecordedAt: now.AddDate(0, 0, -20)}, // outside window
		{WeightKg: 68.5, RecordedAt: now.AddDate(0, 0, -6)},
		{WeightKg: 67.8, RecordedAt: now.AddDate(0, 0, -1)},
	}

	trend := WeightTrend(entries, 7*24*time.Hour, now)
	assert.InDelta(t, -0.7, trend, 0.0001)
}

func TestWeightTrend_SingleEntryIsZero(t *testing.T) {
	now := time.Now()
	entries := []*WeightEntry{{WeightKg: 70, RecordedAt: now}}
	assert.Equal(t, 0.0, WeightTrend(entries, 7*24*time.Hour, now))
}

func TestFoodPortion_ScalesPer100g(t *testing.T) {
	f := Food{
		Name:           "Greek Yogurt",
		Barcode:        "7290004127342",
		CaloriesPer100: 97,
		MacrosPer100:   Macros{ProteinG: 9, CarbsG: 3.9, FatG: 5},
	}

	meal := f.Portion(150, MealBarcode)
	assert.Equal(t, "Greek Yogurt", meal.Name)
	assert.Equal(t, MealBarcode, meal.Source)
	assert.InDelta(t, 145.5, meal.Calories, 0.0001)
	assert.InDelta(t, 13.5, meal.Macros.ProteinG, 0.0001)
	assert.InDelta(t, 5.85, meal.Macros.CarbsG, 0.0001)
	assert.Equal(t, 150.0, meal.Grams)
	assert.Equal(t, "7290004127342", meal.Barcode)
}
