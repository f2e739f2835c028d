package importer

import (
	"time"

	"github.com/google/uuid"

	"github.com/adriancosta/fitflow/internal/domain"
)

// ToFoods converts a validated import schema into domain food entries.
func ToFoods(schema *ImportSchema, now time.Time) []*domain.Food {
	foods := make([]*domain.Food, 0, len(schema.Foods))
	for _, f := range schema.Foods {
		foods = append(foods, &domain.Food{
			ID:             uuid.New().String(),
			Name:           f.Name,
			Brand:          f.Brand,
			Barcode:        f.Barcode,
			CaloriesPer100: f.CaloriesPer100,
			MacrosPer100: domain.Macros{
				ProteinG: f.ProteinPer100,
				CarbsG:   f.CarbsPer100,
				FatG:     f.FatPer100,
			},
			CreatedAt: now,
		})
	}
	return foods
}
