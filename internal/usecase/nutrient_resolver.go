package usecase

import (
	"strconv"
	"strings"

	"github.com/renalplate/backend/internal/domain"
)

// nutrientIDs maps USDA FoodData Central nutrient identifiers to canonical keys
var nutrientIDs = map[int]domain.NutrientKey{
	1008: domain.KeyCalories, // Energy (kcal)
	2047: domain.KeyCalories, // Energy (Atwater General Factors)
	2048: domain.KeyCalories, // Energy (Atwater Specific Factors)
	1003: domain.KeyProtein,
	1004: domain.KeyTotalFat,
	1005: domain.KeyCarbohydrates,
	1093: domain.KeySodium,
	1092: domain.KeyPotassium,
	1091: domain.KeyPhosphorus,
	1051: domain.KeyWater,
}

// exactNames are compared case-insensitively against the whole entry name
var exactNames = map[domain.NutrientKey][]string{
	domain.KeyCalories:      {"energy", "calories", "energy (kcal)"},
	domain.KeyProtein:       {"protein", "proteins"},
	domain.KeyTotalFat:      {"total lipid (fat)", "total fat", "fat"},
	domain.KeyCarbohydrates: {"carbohydrate, by difference", "carbohydrates", "carbohydrate", "carbs"},
	domain.KeySodium:        {"sodium, na", "sodium"},
	domain.KeyPotassium:     {"potassium, k", "potassium"},
	domain.KeyPhosphorus:    {"phosphorus, p", "phosphorus"},
	domain.KeyWater:         {"water", "moisture"},
}

// substringNames are only tried once no exact match exists for the key
var substringNames = map[domain.NutrientKey][]string{
	domain.KeyCalories:      {"energy", "calorie"},
	domain.KeyProtein:       {"protein"},
	domain.KeyTotalFat:      {"fat", "lipid"},
	domain.KeyCarbohydrates: {"carbohydrate"},
	domain.KeySodium:        {"sodium"},
	domain.KeyPotassium:     {"potassium"},
	domain.KeyPhosphorus:    {"phosphorus"},
	domain.KeyWater:         {"water", "moisture"},
}

// servingUnits normalises provider unit codes for display
var servingUnits = map[string]string{
	"grm": "g",
	"g":   "g",
	"mlt": "ml",
	"ml":  "ml",
	"mg":  "mg",
	"oz":  "oz",
}

// ResolveNutrients maps a provider payload onto the canonical vocabulary.
//
// For each canonical key the first entry in input order wins within a strategy,
// and strategies are tried in order: identifier table, exact name, substring.
// Substring matching only considers entries not already claimed by an
// identifier or exact-name match, so "Fat" cannot steal an unrelated entry
// that an exact match already resolved.
func ResolveNutrients(food *domain.FoodNutrients) domain.NutrientRecord {
	if food == nil {
		return domain.NewNutrientRecord(nil, domain.DefaultPortionSize)
	}

	entries := food.Entries
	claimed := make([]bool, len(entries))
	values := make(map[domain.NutrientKey]float64, len(domain.NutrientKeys))

	for _, key := range domain.NutrientKeys {
		idx := firstEntry(entries, nil, func(e domain.RawNutrientEntry) bool {
			return e.ID != 0 && nutrientIDs[e.ID] == key && acceptsUnit(key, e)
		})
		if idx < 0 {
			idx = firstEntry(entries, nil, func(e domain.RawNutrientEntry) bool {
				return matchesExact(key, e)
			})
		}
		if idx >= 0 {
			values[key] = entries[idx].Value
			claimed[idx] = true
		}
	}

	for _, key := range domain.NutrientKeys {
		if _, ok := values[key]; ok {
			continue
		}
		idx := firstEntry(entries, claimed, func(e domain.RawNutrientEntry) bool {
			return matchesSubstring(key, e)
		})
		if idx >= 0 {
			values[key] = entries[idx].Value
			claimed[idx] = true
		}
	}

	return domain.NewNutrientRecord(values, FormatPortionSize(food.ServingSize, food.ServingUnit))
}

// FormatPortionSize renders "<amount> <unit>", or the documented default
// when the provider did not expose both parts.
func FormatPortionSize(size *float64, unit string) string {
	unit = strings.TrimSpace(unit)
	if size == nil || *size <= 0 || unit == "" {
		return domain.DefaultPortionSize
	}
	if normalized, ok := servingUnits[strings.ToLower(unit)]; ok {
		unit = normalized
	}
	return strconv.FormatFloat(*size, 'f', -1, 64) + " " + unit
}

func firstEntry(entries []domain.RawNutrientEntry, skip []bool, match func(domain.RawNutrientEntry) bool) int {
	for i, e := range entries {
		if skip != nil && skip[i] {
			continue
		}
		if match(e) {
			return i
		}
	}
	return -1
}

func matchesExact(key domain.NutrientKey, e domain.RawNutrientEntry) bool {
	name := normalizeName(e.Name)
	if name == "" || !acceptsUnit(key, e) {
		return false
	}
	for _, candidate := range exactNames[key] {
		if name == candidate {
			return true
		}
	}
	return false
}

func matchesSubstring(key domain.NutrientKey, e domain.RawNutrientEntry) bool {
	name := normalizeName(e.Name)
	if name == "" || !acceptsUnit(key, e) {
		return false
	}
	for _, candidate := range substringNames[key] {
		if strings.Contains(name, candidate) {
			return true
		}
	}
	return false
}

// acceptsUnit rejects kilojoule energy rows for the kcal-based Calories key
func acceptsUnit(key domain.NutrientKey, e domain.RawNutrientEntry) bool {
	if key != domain.KeyCalories {
		return true
	}
	return !strings.EqualFold(strings.TrimSpace(e.Unit), "kj")
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
