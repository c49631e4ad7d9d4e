// Package builtin provides a small offline food catalogue with the
// renal-relevant values of a handful of everyday foods.
package builtin

import (
	"context"
	"strconv"
	"strings"

	"github.com/renalplate/backend/internal/domain"
)

// ProviderName identifies this provider in cache keys and logs
const ProviderName = "builtin"

type food struct {
	name        string
	servingSize float64
	servingUnit string
	calories    float64
	sodium      float64
	potassium   float64
	phosphorus  float64
}

// Values are per listed serving, not per 100 g.
var foods = []food{
	{"Boiled Egg", 1, "large", 68, 71, 63, 95},
	{"Apple (1 medium)", 1, "medium", 95, 2, 195, 20},
	{"White Bread (1 slice)", 1, "slice", 66, 134, 37, 25},
	{"Banana (1 medium)", 1, "medium", 105, 1, 422, 22},
	{"Grilled Chicken (3 oz)", 3, "oz", 128, 60, 220, 196},
	{"Brown Rice (1 cup)", 1, "cup", 216, 10, 84, 162},
	{"Broccoli (1/2 cup steamed)", 0.5, "cup steamed", 27, 25, 229, 32},
	{"Milk (1 cup)", 1, "cup", 103, 107, 366, 247},
	{"Oatmeal (1/2 cup cooked)", 0.5, "cup cooked", 83, 2, 61, 77},
}

// Catalog is an in-memory FoodProvider over the fixed food table
type Catalog struct {
	foods []food
}

// NewCatalog returns the built-in catalogue
func NewCatalog() *Catalog {
	return &Catalog{foods: foods}
}

// Name returns the provider name
func (c *Catalog) Name() string {
	return ProviderName
}

// SearchFoods returns foods whose name contains the query, ignoring case,
// in table order.
func (c *Catalog) SearchFoods(ctx context.Context, query string, maxResults int) ([]domain.Candidate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return []domain.Candidate{}, nil
	}

	candidates := make([]domain.Candidate, 0)
	for i, f := range c.foods {
		if maxResults > 0 && len(candidates) >= maxResults {
			break
		}
		if strings.Contains(strings.ToLower(f.name), needle) {
			candidates = append(candidates, domain.Candidate{
				ID:          strconv.Itoa(i + 1),
				Description: f.name,
			})
		}
	}
	return candidates, nil
}

// FetchNutrients returns the name-keyed entries of one catalogue food
func (c *Catalog) FetchNutrients(ctx context.Context, foodID string) (*domain.FoodNutrients, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	idx, err := strconv.Atoi(foodID)
	if err != nil || idx < 1 || idx > len(c.foods) {
		return nil, domain.ErrFoodNotFound
	}
	f := c.foods[idx-1]

	size := f.servingSize
	return &domain.FoodNutrients{
		Entries: []domain.RawNutrientEntry{
			{Name: "Calories", Unit: "kcal", Value: f.calories},
			{Name: "Sodium", Unit: "mg", Value: f.sodium},
			{Name: "Potassium", Unit: "mg", Value: f.potassium},
			{Name: "Phosphorus", Unit: "mg", Value: f.phosphorus},
		},
		ServingSize: &size,
		ServingUnit: f.servingUnit,
	}, nil
}
