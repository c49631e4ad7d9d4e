package domain

// ResultKind tags the FoodQueryResult variants
type ResultKind string

const (
	ResultFound    ResultKind = "found"
	ResultNotFound ResultKind = "not_found"
	ResultFailed   ResultKind = "failed"
)

// Reasons reported on not_found and failed results
const (
	ReasonNoResults           = "no results"
	ReasonEmptyQuery          = "empty query"
	ReasonSearchUnavailable   = "search provider unavailable"
	ReasonNutrientUnavailable = "nutrient provider unavailable"
	ReasonNutrientNotFound    = "nutrient details not found"
)

// FoodQueryResult is one row of a lookup.
//
//	found:     FoodID, Name, Nutrients, Assessment
//	not_found: Query, Reason
//	failed:    FoodID, Name, Reason (the candidate's nutrient fetch failed)
type FoodQueryResult struct {
	Kind       ResultKind      `json:"status"`
	Query      string          `json:"query,omitempty"`
	FoodID     string          `json:"foodId,omitempty"`
	Name       string          `json:"name,omitempty"`
	Nutrients  *NutrientRecord `json:"nutrients,omitempty"`
	Assessment *Assessment     `json:"assessment,omitempty"`
	Reason     string          `json:"reason,omitempty"`
}

// Found builds a found result
func Found(candidate Candidate, record NutrientRecord, assessment Assessment) FoodQueryResult {
	return FoodQueryResult{
		Kind:       ResultFound,
		FoodID:     candidate.ID,
		Name:       candidate.Description,
		Nutrients:  &record,
		Assessment: &assessment,
	}
}

// NotFound builds the sentinel result for a query without candidates
func NotFound(query, reason string) FoodQueryResult {
	return FoodQueryResult{Kind: ResultNotFound, Query: query, Reason: reason}
}

// Failed builds the marker for a candidate whose nutrients could not be fetched
func Failed(candidate Candidate, reason string) FoodQueryResult {
	return FoodQueryResult{
		Kind:   ResultFailed,
		FoodID: candidate.ID,
		Name:   candidate.Description,
		Reason: reason,
	}
}

// IntakeReport groups the results for one item of a multi-food query
type IntakeReport struct {
	Query   string            `json:"query"`
	Results []FoodQueryResult `json:"results"`
}
