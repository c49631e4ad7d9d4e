package domain

import "context"

// SearchProvider finds candidate foods for a free-text query
type SearchProvider interface {
	SearchFoods(ctx context.Context, query string, maxResults int) ([]Candidate, error)
}

// NutrientProvider fetches the raw nutrient entries of one candidate
type NutrientProvider interface {
	FetchNutrients(ctx context.Context, foodID string) (*FoodNutrients, error)
}

// FoodProvider is a data source able to both search and fetch details
type FoodProvider interface {
	SearchProvider
	NutrientProvider
	Name() string
}

// NutrientCache stores fetched nutrient payloads between lookups
type NutrientCache interface {
	Get(ctx context.Context, key string) (*FoodNutrients, error)
	Set(ctx context.Context, key string, value *FoodNutrients) error
	Delete(ctx context.Context, key string) error
}
