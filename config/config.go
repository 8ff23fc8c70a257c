package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Catalog   CatalogConfig
	Chat      ChatConfig
	Cache     CacheConfig
	RateLimit RateLimitConfig
	Matching  MatchingConfig
	Checkout  CheckoutConfig
	Tables    TablesConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// CatalogConfig holds catalog source configuration. URL is tried first;
// LocalPath is the fallback products file.
type CatalogConfig struct {
	URL       string `mapstructure:"url"`
	LocalPath string `mapstructure:"local_path"`
}

// ChatConfig holds completion API configuration for the AI fallback
type ChatConfig struct {
	APIKey       string `mapstructure:"api_key"`
	BaseURL      string `mapstructure:"base_url"`
	Model        string `mapstructure:"model"`
	SystemPrompt string `mapstructure:"system_prompt"`
}

// CacheConfig holds reply-cache configuration
type CacheConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

// RateLimitConfig holds rate limiting configuration (requests per minute)
type RateLimitConfig struct {
	PerIP      int `mapstructure:"per_ip"`
	Completion int `mapstructure:"completion"`
}

// MatchingConfig holds the fuzzy matching knobs. Thresholds are maximum
// allowed [0,1] distances; bonuses are subtracted from the distance.
type MatchingConfig struct {
	Threshold          float64 `mapstructure:"threshold"`
	BrandThreshold     float64 `mapstructure:"brand_threshold"`
	WholeWordBonus     float64 `mapstructure:"whole_word_bonus"`
	PrefixBonus        float64 `mapstructure:"prefix_bonus"`
	TopN               int     `mapstructure:"top_n"`
	MinTokenLength     int     `mapstructure:"min_token_length"`
	EnableDebugLogging bool    `mapstructure:"enable_debug_logging"`
}

// CheckoutConfig holds WhatsApp checkout configuration
type CheckoutConfig struct {
	WhatsAppNumber string `mapstructure:"whatsapp_number"`
}

// TablesConfig holds the curated lookup tables: brand aliases (canonical
// brand name to alias spellings, self included), exact category typo fixes,
// and keyword synonyms applied to residual query tokens.
type TablesConfig struct {
	BrandAliases    map[string][]string `mapstructure:"brand_aliases"`
	CategoryFixes   map[string]string   `mapstructure:"category_fixes"`
	KeywordSynonyms map[string]string   `mapstructure:"keyword_synonyms"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/shivneri/")

	// Environment variable settings
	v.SetEnvPrefix("SHIVNERI")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; using environment variables and defaults
	}

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
	v.SetDefault("server.allowed_origins", []string{"*"})

	// Catalog defaults
	v.SetDefault("catalog.url", "https://shivneri-backend.onrender.com/api/products")
	v.SetDefault("catalog.local_path", "products.json")

	// Chat completion defaults
	v.SetDefault("chat.base_url", "https://api.openai.com")
	v.SetDefault("chat.model", "gpt-4o-mini")
	v.SetDefault("chat.system_prompt",
		"You are the Shivneri Fresh storefront assistant. Answer briefly and "+
			"only about groceries, cooking, and orders.")

	// Cache defaults
	v.SetDefault("cache.ttl", "24h")

	// Rate limit defaults (requests per minute)
	v.SetDefault("ratelimit.per_ip", 60)
	v.SetDefault("ratelimit.completion", 20)

	// Matching defaults: looser threshold over the full catalog, tighter
	// when the pool is already brand-filtered
	v.SetDefault("matching.threshold", 0.40)
	v.SetDefault("matching.brand_threshold", 0.30)
	v.SetDefault("matching.whole_word_bonus", 0.15)
	v.SetDefault("matching.prefix_bonus", 0.10)
	v.SetDefault("matching.top_n", 10)
	v.SetDefault("matching.min_token_length", 2)
	v.SetDefault("matching.enable_debug_logging", false)

	// Checkout defaults
	v.SetDefault("checkout.whatsapp_number", "919867378209")

	// Curated lookup tables. Short-code and multi-word brands need aliases;
	// single-word brands match via the catalog-derived lookup.
	v.SetDefault("tables.brand_aliases", map[string][]string{
		"Golden Crown": {"gc", "golden crown"},
		"Lee Kum Kee":  {"lkk", "lee kum kee"},
		"Quick Bite":   {"qb", "quick bite"},
		"Woh Hup":      {"wh", "woh hup"},
		"Amul":         {"amul"},
		"Wingreens":    {"wg", "wingreens", "wingreen"},
		"HyFun":        {"hf", "hyfun"},
		"Blue Bird":    {"blue bird", "bluebird"},
		"Canz":         {"canz"},
		"Disano":       {"disano"},
		"Euro Gold":    {"euro gold", "eurogold"},
		"Fresh2Go":     {"fresh2go", "fresh 2 go", "fresh-2-go"},
	})
	v.SetDefault("tables.category_fixes", map[string]string{
		"BLACK OILVES":   "BLACK OLIVES",
		"OILVES":         "OLIVES",
		"CURSH":          "CRUSH",
		"PEELED TOMATO.": "PEELED TOMATO",
		"TOMATO PURRE":   "TOMATO PUREE",
		"SUSHI VINGAR":   "SUSHI VINEGAR",
		"SEASAME OIL":    "SESAME OIL",
		"ROSEMERY":       "ROSEMARY",
	})
	v.SetDefault("tables.keyword_synonyms", map[string]string{
		"mozz":    "mozzarella",
		"mayo":    "mayonnaise",
		"ketchup": "tomato ketchup",
		"fries":   "french fries",
		"soya":    "soy",
		"olive":   "olives",
		"oilves":  "olives",
		"wraps":   "wrap",
		"cordial": "juice",
	})
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Catalog.URL == "" && config.Catalog.LocalPath == "" {
		return fmt.Errorf("catalog source is required (set SHIVNERI_CATALOG_URL or SHIVNERI_CATALOG_LOCAL_PATH)")
	}

	if config.Matching.Threshold <= 0 || config.Matching.Threshold > 1 {
		return fmt.Errorf("matching threshold must be in (0,1], got: %v", config.Matching.Threshold)
	}

	if config.Matching.BrandThreshold <= 0 || config.Matching.BrandThreshold > 1 {
		return fmt.Errorf("matching brand threshold must be in (0,1], got: %v", config.Matching.BrandThreshold)
	}

	if config.Matching.TopN <= 0 {
		return fmt.Errorf("matching top_n must be positive, got: %d", config.Matching.TopN)
	}

	if config.Checkout.WhatsAppNumber == "" {
		return fmt.Errorf("WhatsApp number is required (set SHIVNERI_CHECKOUT_WHATSAPP_NUMBER)")
	}

	return nil
}
