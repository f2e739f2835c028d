package domain

import "time"

// Macros groups the macronutrient totals of one food or meal, in grams.
type Macros struct {
	ProteinG float64
	CarbsG   float64
	FatG     float64
}

// MealLog is one logged meal, whatever the capture path.
type MealLog struct {
	ID        string
	Name      string
	Source    MealSource
	Calories  float64
	Macros    Macros
	Grams     float64 // portion size, 0 when unknown
	Barcode   string  // set only for barcode captures
	Note      string
	LoggedAt  time.Time
	CreatedAt time.Time
}

// Food is one entry in the local food database, with nutrition per 100g.
type Food struct {
	ID             string
	Name           string
	Brand          string
	Barcode        string
	CaloriesPer100 float64
	MacrosPer100   Macros
	CreatedAt      time.Time
}

// Portion scales the food's per-100g nutrition to the given gram amount
// and returns a meal log entry (ID and timestamps left for the caller).
func (f *Food) Portion(grams float64, source MealSource) MealLog {
	factor := grams / 100
	return MealLog{
		Name:     f.Name,
		Source:   source,
		Calories: f.CaloriesPer100 * factor,
		Macros: Macros{
			ProteinG: f.MacrosPer100.ProteinG * factor,
			CarbsG:   f.MacrosPer100.CarbsG * factor,
			FatG:     f.MacrosPer100.FatG * factor,
		},
		Grams:   grams,
		Barcode: f.Barcode,
	}
}
