package importer

import (
	"fmt"
	"regexp"
)

var barcodePattern = regexp.MustCompile(`^[0-9]{8,14}$`)

// kcal per gram of each macronutrient.
const (
	kcalPerGramProtein = 4
	kcalPerGramCarbs   = 4
	kcalPerGramFat     = 9
)

// ValidateImportSchema checks the import schema for errors before conversion.
// Returns a slice of all validation errors found.
func ValidateImportSchema(schema *ImportSchema) []error {
	var errs []error

	if len(schema.Foods) == 0 {
		errs = append(errs, fmt.Errorf("foods is empty"))
	}

	barcodes := make(map[string]int)
	names := make(map[string]int)

	for i, f := range schema.Foods {
		prefix := fmt.Sprintf("foods[%d]", i)

		if f.Name == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", prefix))
		} else {
			key := f.Name + "|" + f.Brand
			if prev, dup := names[key]; dup {
				errs = append(errs, fmt.Errorf("%s: duplicate of foods[%d] (same name and brand)", prefix, prev))
			} else {
				names[key] = i
			}
		}

		if f.Barcode != "" {
			if !barcodePattern.MatchString(f.Barcode) {
				errs = append(errs, fmt.Errorf("%s.barcode: invalid value %q (expected 8-14 digits)", prefix, f.Barcode))
			} else if prev, dup := barcodes[f.Barcode]; dup {
				errs = append(errs, fmt.Errorf("%s.barcode: duplicate of foods[%d] (%q)", prefix, prev, f.Barcode))
			} else {
				barcodes[f.Barcode] = i
			}
		}

		errs = append(errs, validateNutrition(prefix, f)...)
	}

	return errs
}

func validateNutrition(prefix string, f FoodImport) []error {
	var errs []error

	if f.CaloriesPer100 < 0 {
		errs = append(errs, fmt.Errorf("%s.calories_per_100 must not be negative", prefix))
	}
	if f.CaloriesPer100 > 900 {
		errs = append(errs, fmt.Errorf("%s.calories_per_100: %g exceeds the physical maximum of ~900 kcal/100g", prefix, f.CaloriesPer100))
	}
	if f.ProteinPer100 < 0 || f.CarbsPer100 < 0 || f.FatPer100 < 0 {
		errs = append(errs, fmt.Errorf("%s: macros must not be negative", prefix))
	}
	if f.ProteinPer100+f.CarbsPer100+f.FatPer100 > 100 {
		errs = append(errs, fmt.Errorf("%s: macros sum to more than 100g per 100g", prefix))
	}

	// The macro-derived energy must roughly match the stated calories;
	// a large gap means one of the two is wrong.
	derived := f.ProteinPer100*kcalPerGramProtein + f.CarbsPer100*kcalPerGramCarbs + f.FatPer100*kcalPerGramFat
	if f.CaloriesPer100 > 0 && derived > 0 {
		ratio := derived / f.CaloriesPer100
		if ratio < 0.5 || ratio > 1.7 {
			errs = append(errs, fmt.Errorf("%s: calories_per_100 (%g) inconsistent with macros (~%.0f kcal)", prefix, f.CaloriesPer100, derived))
		}
	}

	return errs
}
