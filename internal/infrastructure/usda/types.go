package usda

// SearchResponse represents the response from the FoodData Central search API
type SearchResponse struct {
	Foods       []Food `json:"foods"`
	TotalHits   int    `json:"totalHits"`
	CurrentPage int    `json:"currentPage"`
	TotalPages  int    `json:"totalPages"`
}

// Food is a food item from search results or the details endpoint
type Food struct {
	FdcID           int            `json:"fdcId"`
	Description     string         `json:"description"`
	DataType        string         `json:"dataType,omitempty"`
	BrandOwner      string         `json:"brandOwner,omitempty"`
	ServingSize     *float64       `json:"servingSize,omitempty"`
	ServingSizeUnit string         `json:"servingSizeUnit,omitempty"`
	FoodNutrients   []FoodNutrient `json:"foodNutrients"`
}

// FoodNutrient covers both nutrient shapes the API returns: search results
// and abridged details are flat, full details nest the nutrient definition.
type FoodNutrient struct {
	NutrientID   int      `json:"nutrientId,omitempty"`
	NutrientName string   `json:"nutrientName,omitempty"`
	UnitName     string   `json:"unitName,omitempty"`
	Value        *float64 `json:"value,omitempty"`

	Nutrient *NutrientRef `json:"nutrient,omitempty"`
	Amount   *float64     `json:"amount,omitempty"`
}

// NutrientRef is the nested nutrient definition of the full details shape
type NutrientRef struct {
	ID       int    `json:"id"`
	Number   string `json:"number,omitempty"`
	Name     string `json:"name"`
	UnitName string `json:"unitName,omitempty"`
}
