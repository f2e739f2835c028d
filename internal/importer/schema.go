package importer

import (
	"encoding/json"
	"fmt"
	"os"
)

// ImportSchema is the top-level JSON structure for food catalog import.
type ImportSchema struct {
	Source string       `json:"source,omitempty"`
	Foods  []FoodImport `json:"foods"`
}

// FoodImport defines one food entry in the import file, nutrition per 100g.
type FoodImport struct {
	Name           string  `json:"name"`
	Brand          string  `json:"brand,omitempty"`
	Barcode        string  `json:"barcode,omitempty"`
	CaloriesPer100 float64 `json:"calories_per_100"`
	ProteinPer100  float64 `json:"protein_per_100"`
	CarbsPer100    float64 `json:"carbs_per_100"`
	FatPer100      float64 `json:"fat_per_100"`
}

// LoadImportSchema reads and parses a food catalog import JSON file.
func LoadImportSchema(path string) (*ImportSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var schema ImportSchema
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("parsing import file: %w", err)
	}
	return &schema, nil
}
