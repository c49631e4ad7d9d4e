package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/renalplate/backend/internal/domain"
	"github.com/spf13/viper"
)

// Provider types
const (
	ProviderUSDA    = "usda"
	ProviderBuiltin = "builtin"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Provider  ProviderConfig
	USDA      USDAConfig
	Cache     CacheConfig
	RateLimit RateLimitConfig
	Lookup    LookupConfig
	Advisory  AdvisoryConfig
	Log       LogConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// ProviderConfig selects the food data source
type ProviderConfig struct {
	Type string `mapstructure:"type"` // "usda" or "builtin"
}

// USDAConfig holds USDA API configuration
type USDAConfig struct {
	APIKey    string        `mapstructure:"api_key"`
	BaseURL   string        `mapstructure:"base_url"`
	Timeout   time.Duration `mapstructure:"timeout"`
	DataTypes []string      `mapstructure:"data_types"`
}

// CacheConfig holds cache-related configuration
type CacheConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	Size    int           `mapstructure:"size"`
	TTL     time.Duration `mapstructure:"ttl"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	PerIP int `mapstructure:"per_ip"` // requests per minute per client
	USDA  int `mapstructure:"usda"`   // requests per hour against the API
}

// LookupConfig tunes the orchestrator
type LookupConfig struct {
	MaxResults           int  `mapstructure:"max_results"`
	SkipFailedCandidates bool `mapstructure:"skip_failed_candidates"`
}

// AdvisoryConfig holds the threshold table or a path to one
type AdvisoryConfig struct {
	RulesFile string       `mapstructure:"rules_file"`
	Rules     []RuleConfig `mapstructure:"rules"`
}

// LogConfig holds logger settings
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // "text" or "json"
}

// Overrides carries command-line values that take precedence over every
// other source. Empty fields are ignored.
type Overrides struct {
	Provider  string
	RulesFile string
	LogLevel  string
}

// Load loads configuration from environment variables and config files
func Load(overrides Overrides) (*Config, error) {
	if err := loadEnvFile(); err != nil {
		return nil, err
	}

	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/renalplate/")

	// Environment variable settings
	v.SetEnvPrefix("RENALPLATE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// Keys without defaults are invisible to AutomaticEnv during Unmarshal
	_ = v.BindEnv("usda.api_key")
	_ = v.BindEnv("advisory.rules_file")
	_ = v.BindEnv("log.level", "RENALPLATE_LOG_LEVEL", "LOG_LEVEL")

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	applyOverrides(v, overrides)

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{})

	v.SetDefault("provider.type", ProviderUSDA)

	// USDA defaults
	v.SetDefault("usda.base_url", "https://api.nal.usda.gov/fdc")
	v.SetDefault("usda.timeout", "10s")
	v.SetDefault("usda.data_types", []string{"Foundation", "SR Legacy", "Survey (FNDDS)", "Branded"})

	// Cache defaults
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.size", 1024)
	v.SetDefault("cache.ttl", "24h")

	// Rate limit defaults
	v.SetDefault("ratelimit.per_ip", 60)
	v.SetDefault("ratelimit.usda", 1000)

	v.SetDefault("lookup.max_results", 5)
	v.SetDefault("lookup.skip_failed_candidates", false)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

func applyOverrides(v *viper.Viper, o Overrides) {
	if o.Provider != "" {
		v.Set("provider.type", o.Provider)
	}
	if o.RulesFile != "" {
		v.Set("advisory.rules_file", o.RulesFile)
	}
	if o.LogLevel != "" {
		v.Set("log.level", o.LogLevel)
	}
}

// AdvisoryRules returns the effective threshold table: the rules file when
// set, else the inline rules, else the built-in defaults.
func (c *Config) AdvisoryRules() ([]domain.AdvisoryRule, error) {
	if c.Advisory.RulesFile != "" {
		return LoadRulesFile(c.Advisory.RulesFile)
	}
	if len(c.Advisory.Rules) > 0 {
		return BuildRules(c.Advisory.Rules)
	}
	return domain.DefaultAdvisoryRules(), nil
}

// validate validates the configuration
func validate(config *Config) error {
	switch config.Provider.Type {
	case ProviderUSDA:
		if config.USDA.APIKey == "" {
			return fmt.Errorf("USDA API key is required (set RENALPLATE_USDA_API_KEY)")
		}
	case ProviderBuiltin:
	default:
		return fmt.Errorf("provider type must be '%s' or '%s', got: %s", ProviderUSDA, ProviderBuiltin, config.Provider.Type)
	}

	if config.Cache.Enabled && config.Cache.Size <= 0 {
		return fmt.Errorf("cache size must be positive when the cache is enabled, got: %d", config.Cache.Size)
	}

	if config.Lookup.MaxResults <= 0 {
		return fmt.Errorf("lookup max_results must be positive, got: %d", config.Lookup.MaxResults)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("log format must be 'text' or 'json', got: %s", config.Log.Format)
	}

	if _, err := config.AdvisoryRules(); err != nil {
		return err
	}

	return nil
}
