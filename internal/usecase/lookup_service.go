package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"

	"github.com/renalplate/backend/internal/domain"
)

// DefaultMaxResults caps candidates when the caller passes a non-positive limit
const DefaultMaxResults = 5

// LookupServiceConfig holds configuration for the lookup service
type LookupServiceConfig struct {
	// ProviderName namespaces cache keys so providers never share entries
	ProviderName      string
	DefaultMaxResults int
	// SkipFailedCandidates drops candidates whose nutrient fetch failed
	// instead of emitting a failed result for them.
	SkipFailedCandidates bool
}

// LookupService turns a free-text food query into assessed result rows.
// Flow: normalise -> search -> (cache -> fetch -> cache) per candidate -> resolve -> evaluate
type LookupService struct {
	search            domain.SearchProvider
	nutrients         domain.NutrientProvider
	cache             domain.NutrientCache
	engine            *AdvisoryEngine
	preprocessor      *QueryPreprocessor
	providerName      string
	defaultMaxResults int
	skipFailed        bool
	logger            *slog.Logger
}

// NewLookupService creates a lookup service. cache may be nil to disable caching.
func NewLookupService(
	search domain.SearchProvider,
	nutrients domain.NutrientProvider,
	cache domain.NutrientCache,
	engine *AdvisoryEngine,
	config LookupServiceConfig,
	logger *slog.Logger,
) *LookupService {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	logger = logger.With("component", "lookup")

	maxResults := config.DefaultMaxResults
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}

	providerName := config.ProviderName
	if providerName == "" {
		providerName = "default"
	}

	return &LookupService{
		search:            search,
		nutrients:         nutrients,
		cache:             cache,
		engine:            engine,
		preprocessor:      NewQueryPreprocessor(logger),
		providerName:      providerName,
		defaultMaxResults: maxResults,
		skipFailed:        config.SkipFailedCandidates,
		logger:            logger,
	}
}

// Rules returns the active advisory rule table
func (s *LookupService) Rules() []domain.AdvisoryRule {
	return s.engine.Rules()
}

// Lookup returns one result per candidate in provider order, or a single
// not_found result. Provider failures are folded into the returned rows;
// Lookup never returns an error.
func (s *LookupService) Lookup(ctx context.Context, query string, maxResults int) []domain.FoodQueryResult {
	display := strings.TrimSpace(query)
	normalized := s.preprocessor.Normalize(query)
	if normalized == "" {
		return []domain.FoodQueryResult{domain.NotFound(display, domain.ReasonEmptyQuery)}
	}

	if maxResults <= 0 {
		maxResults = s.defaultMaxResults
	}

	candidates, err := s.search.SearchFoods(ctx, normalized, maxResults)
	if err != nil && !errors.Is(err, domain.ErrFoodNotFound) {
		s.logger.Warn("search failed", "query", normalized, "error", err)
		return []domain.FoodQueryResult{domain.NotFound(display, domain.ReasonSearchUnavailable)}
	}
	if len(candidates) == 0 {
		s.logger.Info("no candidates", "query", normalized)
		return []domain.FoodQueryResult{domain.NotFound(display, domain.ReasonNoResults)}
	}
	if len(candidates) > maxResults {
		candidates = candidates[:maxResults]
	}

	results := make([]domain.FoodQueryResult, 0, len(candidates))
	for _, candidate := range candidates {
		food, err := s.fetchNutrients(ctx, candidate.ID)
		if err != nil {
			reason := domain.ReasonNutrientUnavailable
			if errors.Is(err, domain.ErrFoodNotFound) {
				reason = domain.ReasonNutrientNotFound
			}
			s.logger.Warn("nutrient fetch failed",
				"food_id", candidate.ID,
				"food", candidate.Description,
				"error", err,
				"skipped", s.skipFailed)
			if s.skipFailed {
				continue
			}
			results = append(results, domain.Failed(candidate, reason))
			continue
		}

		record := ResolveNutrients(food)
		assessment := s.engine.Evaluate(record)
		s.logger.Debug("candidate assessed",
			"food_id", candidate.ID,
			"food", candidate.Description,
			"nutrients", record.Len(),
			"advisories", len(assessment.Advisories))
		results = append(results, domain.Found(candidate, record, assessment))
	}

	if len(results) == 0 {
		return []domain.FoodQueryResult{domain.NotFound(display, domain.ReasonNutrientUnavailable)}
	}
	return results
}

// AnalyzeIntake looks up every non-empty item, keeping input order
func (s *LookupService) AnalyzeIntake(ctx context.Context, items []string, maxResults int) []domain.IntakeReport {
	reports := make([]domain.IntakeReport, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		reports = append(reports, domain.IntakeReport{
			Query:   item,
			Results: s.Lookup(ctx, item, maxResults),
		})
	}
	return reports
}

// AnalyzeInput splits a comma-separated intake and analyses each item
func (s *LookupService) AnalyzeInput(ctx context.Context, input string, maxResults int) []domain.IntakeReport {
	return s.AnalyzeIntake(ctx, SplitItems(input), maxResults)
}

// fetchNutrients checks the cache before asking the provider
func (s *LookupService) fetchNutrients(ctx context.Context, foodID string) (*domain.FoodNutrients, error) {
	key := s.cacheKey(foodID)

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, key); err == nil && cached != nil {
			s.logger.Debug("cache hit", "key", key)
			return cached, nil
		}
	}

	food, err := s.nutrients.FetchNutrients(ctx, foodID)
	if err != nil {
		return nil, err
	}
	if food == nil {
		food = &domain.FoodNutrients{}
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, food); err != nil {
			// Caching is best effort
			s.logger.Warn("cache write failed", "key", key, "error", err)
		}
	}
	return food, nil
}

// cacheKey format: "nutrients:{provider}:{food id}"
func (s *LookupService) cacheKey(foodID string) string {
	return "nutrients:" + s.providerName + ":" + foodID
}
