package usda

import (
	"strconv"

	"github.com/renalplate/backend/internal/domain"
)

// MapToCandidate converts a search hit to a candidate. The description is
// kept verbatim because it is what users see.
func MapToCandidate(food *Food) domain.Candidate {
	return domain.Candidate{
		ID:          strconv.Itoa(food.FdcID),
		Description: food.Description,
	}
}

// MapToFoodNutrients converts USDA food data to raw nutrient entries.
// Nutrients without a reported amount are dropped rather than zero-filled.
func MapToFoodNutrients(food *Food) *domain.FoodNutrients {
	entries := make([]domain.RawNutrientEntry, 0, len(food.FoodNutrients))
	for _, n := range food.FoodNutrients {
		if entry, ok := toEntry(n); ok {
			entries = append(entries, entry)
		}
	}

	return &domain.FoodNutrients{
		Entries:     entries,
		ServingSize: food.ServingSize,
		ServingUnit: food.ServingSizeUnit,
	}
}

func toEntry(n FoodNutrient) (domain.RawNutrientEntry, bool) {
	if n.Nutrient != nil {
		amount := n.Amount
		if amount == nil {
			amount = n.Value
		}
		if amount == nil {
			return domain.RawNutrientEntry{}, false
		}
		return domain.RawNutrientEntry{
			ID:    n.Nutrient.ID,
			Name:  n.Nutrient.Name,
			Unit:  n.Nutrient.UnitName,
			Value: *amount,
		}, true
	}

	if n.Value == nil {
		return domain.RawNutrientEntry{}, false
	}
	return domain.RawNutrientEntry{
		ID:    n.NutrientID,
		Name:  n.NutrientName,
		Unit:  n.UnitName,
		Value: *n.Value,
	}, true
}
