package domain

import (
	"sort"
	"time"
)

// WeightEntry is one logged body-weight measurement.
type WeightEntry struct {
	ID         string
	WeightKg   float64
	RecordedAt time.Time
	CreatedAt  time.Time
}

// DailySummary aggregates one day's logged meals.
type DailySummary struct {
	Date     time.Time // midnight, local
	Calories float64
	Macros   Macros
	Meals    int
}

// SummarizeMeals buckets meals into per-day totals, newest day first.
func SummarizeMeals(meals []*MealLog) []DailySummary {
	byDay := make(map[time.Time]*DailySummary)
	for _, m := range meals {
		day := midnight(m.LoggedAt)
		s, ok := byDay[day]
		if !ok {
			s = &DailySummary{Date: day}
			byDay[day] = s
		}
		s.Calories += m.Calories
		s.Macros.ProteinG += m.Macros.ProteinG
		s.Macros.CarbsG += m.Macros.CarbsG
		s.Macros.FatG += m.Macros.FatG
		s.Meals++
	}

	out := make([]DailySummary, 0, len(byDay))
	for _, s := range byDay {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out
}

// LoggingStreak counts consecutive days with at least one meal logged,
// ending today or yesterday (a streak survives until a full day is missed).
func LoggingStreak(summaries []DailySummary, now time.Time) int {
	logged := make(map[time.Time]bool, len(summaries))
	for _, s := range summaries {
		if s.Meals > 0 {
			logged[midnight(s.Date)] = true
		}
	}

	day := midnight(now)
	if !logged[day] {
		day = day.AddDate(0, 0, -1)
	}

	streak := 0
	for logged[day] {
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}

// WeightTrend returns the kg change between the oldest and newest entry
// within the given window. Returns 0 when fewer than two entries exist.
func WeightTrend(entries []*WeightEntry, window time.Duration, now time.Time) float64 {
	cutoff := now.Add(-window)
	var inWindow []*WeightEntry
	for _, e := range entries {
		if !e.RecordedAt.Before(cutoff) {
			inWindow = append(inWindow, e)
		}
	}
	if len(inWindow) < 2 {
		return 0
	}
	sort.Slice(inWindow, func(i, j int) bool {
		return inWindow[i].RecordedAt.Before(inWindow[j].RecordedAt)
	})
	return inWindow[len(inWindow)-1].WeightKg - inWindow[0].WeightKg
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
