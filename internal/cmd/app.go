package cmd

import (
	"fmt"
	"log/slog"

	"github.com/renalplate/backend/config"
	"github.com/renalplate/backend/internal/domain"
	"github.com/renalplate/backend/internal/infrastructure/builtin"
	"github.com/renalplate/backend/internal/infrastructure/cache"
	"github.com/renalplate/backend/internal/infrastructure/usda"
	"github.com/renalplate/backend/internal/usecase"
)

// app is the wired dependency graph shared by all subcommands
type app struct {
	cfg      *config.Config
	logger   *slog.Logger
	provider domain.FoodProvider
	service  *usecase.LookupService
}

func newApp(overrides config.Overrides) (*app, error) {
	cfg, err := config.Load(overrides)
	if err != nil {
		return nil, err
	}

	logger := config.NewLogger(cfg.Log.Format, cfg.Log.Level)

	provider := newProvider(cfg, logger)

	var nutrientCache domain.NutrientCache
	if cfg.Cache.Enabled {
		nutrientCache = cache.NewLRUCache(cfg.Cache.Size, cfg.Cache.TTL)
	}

	rules, err := cfg.AdvisoryRules()
	if err != nil {
		return nil, err
	}
	engine, err := usecase.NewAdvisoryEngine(rules)
	if err != nil {
		return nil, fmt.Errorf("advisory rules: %w", err)
	}

	service := usecase.NewLookupService(
		provider,
		provider,
		nutrientCache,
		engine,
		usecase.LookupServiceConfig{
			ProviderName:         provider.Name(),
			DefaultMaxResults:    cfg.Lookup.MaxResults,
			SkipFailedCandidates: cfg.Lookup.SkipFailedCandidates,
		},
		logger,
	)

	logger.Debug("lookup service ready",
		"provider", provider.Name(),
		"cache_enabled", cfg.Cache.Enabled,
		"rules", len(rules))

	return &app{cfg: cfg, logger: logger, provider: provider, service: service}, nil
}

func newProvider(cfg *config.Config, logger *slog.Logger) domain.FoodProvider {
	if cfg.Provider.Type == config.ProviderBuiltin {
		return builtin.NewCatalog()
	}

	logger.Info("USDA API configured",
		"base_url", cfg.USDA.BaseURL,
		"api_key", config.Redact(cfg.USDA.APIKey))

	return usda.NewClient(cfg.USDA.APIKey, cfg.USDA.BaseURL, usda.ClientConfig{
		Timeout:         cfg.USDA.Timeout,
		RequestsPerHour: cfg.RateLimit.USDA,
		DataTypes:       cfg.USDA.DataTypes,
	}, logger)
}
