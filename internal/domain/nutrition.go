package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// NutrientKey is one of the canonical nutrient names used regardless of
// the naming scheme of the provider that reported the value.
type NutrientKey string

const (
	KeyCalories      NutrientKey = "Calories"
	KeyProtein       NutrientKey = "Protein (g)"
	KeyTotalFat      NutrientKey = "Total Fat (g)"
	KeyCarbohydrates NutrientKey = "Carbohydrates (g)"
	KeySodium        NutrientKey = "Sodium (mg)"
	KeyPotassium     NutrientKey = "Potassium (mg)"
	KeyPhosphorus    NutrientKey = "Phosphorus (mg)"
	KeyWater         NutrientKey = "Water (g)"
)

// PortionSizeKey is the record field holding the formatted serving size.
const PortionSizeKey = "Portion Size"

// DefaultPortionSize is reported when the provider exposes no serving size.
// Provider values are per 100 g in that case.
const DefaultPortionSize = "100 g (default)"

// NutrientKeys lists the canonical keys in display order.
var NutrientKeys = []NutrientKey{
	KeyCalories,
	KeyProtein,
	KeyTotalFat,
	KeyCarbohydrates,
	KeySodium,
	KeyPotassium,
	KeyPhosphorus,
	KeyWater,
}

var nutrientKeyAliases = map[string]NutrientKey{
	"calories":      KeyCalories,
	"energy":        KeyCalories,
	"protein":       KeyProtein,
	"fat":           KeyTotalFat,
	"total fat":     KeyTotalFat,
	"carbohydrates": KeyCarbohydrates,
	"carbohydrate":  KeyCarbohydrates,
	"carbs":         KeyCarbohydrates,
	"sodium":        KeySodium,
	"potassium":     KeyPotassium,
	"phosphorus":    KeyPhosphorus,
	"water":         KeyWater,
}

// ParseNutrientKey accepts a canonical key or a short alias, case-insensitive.
func ParseNutrientKey(s string) (NutrientKey, error) {
	trimmed := strings.TrimSpace(s)
	for _, key := range NutrientKeys {
		if strings.EqualFold(trimmed, string(key)) {
			return key, nil
		}
	}
	if key, ok := nutrientKeyAliases[strings.ToLower(trimmed)]; ok {
		return key, nil
	}
	return "", fmt.Errorf("unknown nutrient %q", s)
}

// IsCanonical reports whether k is one of NutrientKeys
func (k NutrientKey) IsCanonical() bool {
	for _, key := range NutrientKeys {
		if k == key {
			return true
		}
	}
	return false
}

// Unit returns the measurement unit implied by the canonical key.
func (k NutrientKey) Unit() string {
	switch k {
	case KeyCalories:
		return "kcal"
	case KeySodium, KeyPotassium, KeyPhosphorus:
		return "mg"
	default:
		return "g"
	}
}

// RawNutrientEntry is a single provider nutrient value before resolution.
// ID is zero when the provider keys nutrients by name only.
type RawNutrientEntry struct {
	ID    int     `json:"id,omitempty"`
	Name  string  `json:"name,omitempty"`
	Unit  string  `json:"unit,omitempty"`
	Value float64 `json:"value"`
}

// FoodNutrients is the payload a nutrient provider returns for one food
type FoodNutrients struct {
	Entries     []RawNutrientEntry `json:"entries"`
	ServingSize *float64           `json:"servingSize,omitempty"`
	ServingUnit string             `json:"servingUnit,omitempty"`
}

// Candidate is a single food match returned by a search provider
type Candidate struct {
	ID          string `json:"id"`
	Description string `json:"description"`
}

// NutrientRecord maps every canonical key to an optional value.
// A missing value means the provider did not report it; it is never zero-filled.
// Records are immutable once built.
type NutrientRecord struct {
	values      map[NutrientKey]float64
	portionSize string
}

// NewNutrientRecord copies values so later changes to the map are not observed.
func NewNutrientRecord(values map[NutrientKey]float64, portionSize string) NutrientRecord {
	copied := make(map[NutrientKey]float64, len(values))
	for k, v := range values {
		copied[k] = v
	}
	if portionSize == "" {
		portionSize = DefaultPortionSize
	}
	return NutrientRecord{values: copied, portionSize: portionSize}
}

// Value returns the value for key and whether the provider reported it.
func (r NutrientRecord) Value(key NutrientKey) (float64, bool) {
	v, ok := r.values[key]
	return v, ok
}

// PortionSize returns the formatted serving size
func (r NutrientRecord) PortionSize() string {
	if r.portionSize == "" {
		return DefaultPortionSize
	}
	return r.portionSize
}

// Len returns the number of reported nutrients
func (r NutrientRecord) Len() int {
	return len(r.values)
}

// MarshalJSON encodes every canonical key, using null for unreported values.
func (r NutrientRecord) MarshalJSON() ([]byte, error) {
	out := make(map[string]interface{}, len(NutrientKeys)+1)
	for _, key := range NutrientKeys {
		if v, ok := r.values[key]; ok {
			out[string(key)] = v
		} else {
			out[string(key)] = nil
		}
	}
	out[PortionSizeKey] = r.PortionSize()
	return json.Marshal(out)
}
