package importer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToFoods(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	schema := &ImportSchema{Foods: []FoodImport{validFood()}}

	foods := ToFoods(schema, now)
	require.Len(t, foods, 1)

	f := foods[0]
	assert.NotEmpty(t, f.ID)
	assert.Equal(t, "Rolled Oats", f.Name)
	assert.Equal(t, "0030000010204", f.Barcode)
	assert.Equal(t, 379.0, f.CaloriesPer100)
	assert.Equal(t, 13.0, f.MacrosPer100.ProteinG)
	assert.Equal(t, 6.5, f.MacrosPer100.FatG)
	assert.Equal(t, now, f.CreatedAt)
}

func TestToFoods_UniqueIDs(t *testing.T) {
	a := validFood()
	b := validFood()
	b.Name = "Other"
	b.Barcode = ""
	foods := ToFoods(&ImportSchema{Foods: []FoodImport{a, b}}, time.Now())
	require.Len(t, foods, 2)
	assert.NotEqual(t, foods[0].ID, foods[1].ID)
}
