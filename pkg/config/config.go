package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/umputun/logos/pkg/domain"
	"github.com/umputun/logos/pkg/feed"
)

//go:generate go run ../../cmd/schema/main.go schema.json

// Config holds the application configuration
type Config struct {
	HTTP      HTTPConfig      `yaml:"http" json:"http" jsonschema:"description=Shared HTTP client configuration"`
	Fetch     FetchConfig     `yaml:"fetch" json:"fetch" jsonschema:"description=Fetch engine configuration"`
	Translate TranslateConfig `yaml:"translate" json:"translate" jsonschema:"description=Translation configuration"`

	NewsAPI struct {
		KeyEnv string `yaml:"key_env" json:"key_env" jsonschema:"default=NEWSDATA_API_KEY,description=Environment variable holding the news API key"`
	} `yaml:"news_api" json:"news_api" jsonschema:"description=JSON news API configuration"`

	Junk JunkConfig `yaml:"junk" json:"junk" jsonschema:"description=Junk filter lists, empty lists use built-in defaults"`

	PricePatterns map[string]PricePatternConfig `yaml:"price_patterns" json:"price_patterns,omitempty" jsonschema:"description=Per-source price page patterns keyed by source name"`
	PriceFilters  map[string]string             `yaml:"price_filters" json:"price_filters,omitempty" jsonschema:"description=Per-source price token regex for commodities headlines"`

	Database struct {
		DSN string `yaml:"dsn" json:"dsn" jsonschema:"default=file:logos.db?cache=shared&mode=rwc,description=Database connection string"`
	} `yaml:"database" json:"database" jsonschema:"description=Database configuration"`

	Schedule struct {
		Interval time.Duration `yaml:"interval" json:"interval" jsonschema:"default=15m,description=Polling interval, 0 disables polling"`
		Targets  []string      `yaml:"targets" json:"targets" jsonschema:"description=Categories or source names polled by the scheduler"`
	} `yaml:"schedule" json:"schedule" jsonschema:"description=Scheduler configuration"`

	Server struct {
		Listen  string        `yaml:"listen" json:"listen" jsonschema:"default=:8080,description=HTTP server listen address"`
		Timeout time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=60s,description=HTTP server timeout"`
		BaseURL string        `yaml:"base_url" json:"base_url" jsonschema:"default=http://localhost:8080,description=Base URL for RSS feed links"`
	} `yaml:"server" json:"server" jsonschema:"description=Server configuration"`

	Sources []domain.Source `yaml:"sources" json:"sources,omitempty" jsonschema:"description=Source registry, built-in registry is used when empty"`

	registry      *Registry
	pricePatterns map[string]feed.PricePattern
	priceFilters  map[string]*regexp.Regexp
}

// HTTPConfig holds settings of the shared http client
type HTTPConfig struct {
	Timeout        time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=15s,description=Overall request timeout"`
	ConnectTimeout time.Duration `yaml:"connect_timeout" json:"connect_timeout" jsonschema:"default=10s,description=Connect timeout"`
	MaxRedirects   int           `yaml:"max_redirects" json:"max_redirects" jsonschema:"default=3,description=Maximum redirects to follow"`
	MaxIdlePerHost int           `yaml:"max_idle_per_host" json:"max_idle_per_host" jsonschema:"default=5,description=Maximum idle connections per host"`
	UserAgent      string        `yaml:"user_agent" json:"user_agent" jsonschema:"description=User agent, desktop browser string by default"`
}

// FetchConfig holds fetch engine and digest settings
type FetchConfig struct {
	MaxItems        int           `yaml:"max_items" json:"max_items" jsonschema:"default=5,minimum=1,description=Maximum items per source"`
	MaxText         int           `yaml:"max_text" json:"max_text" jsonschema:"default=280,minimum=1,description=Maximum characters of an item in the digest"`
	BaseDelay       time.Duration `yaml:"base_delay" json:"base_delay" jsonschema:"default=500ms,description=Base of the randomized pre-request delay"`
	Attempts        int           `yaml:"attempts" json:"attempts" jsonschema:"default=2,minimum=1,description=Fetch attempts per source"`
	DisplayLanguage string        `yaml:"display_language" json:"display_language" jsonschema:"default=ru,description=Two-letter language of the digest"`
	MaxConcurrent   int           `yaml:"max_concurrent" json:"max_concurrent" jsonschema:"default=8,description=Maximum concurrent translations per source"`
}

// TranslateConfig selects the translation backend
type TranslateConfig struct {
	Provider string `yaml:"provider" json:"provider" jsonschema:"default=google,enum=google,enum=openai,enum=none,description=Translation backend"`
	Endpoint string `yaml:"endpoint" json:"endpoint" jsonschema:"description=Backend endpoint, provider default when empty"`
	Model    string `yaml:"model" json:"model" jsonschema:"default=gpt-4o-mini,description=Model name for the openai provider"`
	APIKey   string `yaml:"api_key" json:"api_key" jsonschema:"description=API key for the openai provider (can use environment variable)"`
}

// JunkConfig overrides the junk filter lists
type JunkConfig struct {
	Keywords        []string `yaml:"keywords" json:"keywords,omitempty" jsonschema:"description=Off-topic keywords"`
	SystemMessages  []string `yaml:"system_messages" json:"system_messages,omitempty" jsonschema:"description=Platform service messages"`
	DisableKeywords bool     `yaml:"disable_keywords" json:"disable_keywords" jsonschema:"default=false,description=Turn off the off-topic keyword check"`
}

// PricePatternConfig is a price page pattern, both expressions with one capture group
type PricePatternConfig struct {
	Price  string `yaml:"price" json:"price" jsonschema:"required,description=Regex capturing the price literal"`
	Change string `yaml:"change" json:"change,omitempty" jsonschema:"description=Regex capturing the percent change"`
}

// translation providers
const (
	ProviderGoogle = "google"
	ProviderOpenAI = "openai"
	ProviderNone   = "none"
)

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // file path comes from CLI flag
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	return Parse(data)
}

// Parse makes configuration from YAML data, environment variables are expanded.
// Empty data gives defaults with the built-in source registry.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	setDefaults(&cfg)

	if len(cfg.Sources) == 0 {
		sources, err := DefaultSources()
		if err != nil {
			return nil, err
		}
		cfg.Sources = sources
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(cfg *Config) {
	// http client
	if cfg.HTTP.Timeout == 0 {
		cfg.HTTP.Timeout = 15 * time.Second
	}
	if cfg.HTTP.ConnectTimeout == 0 {
		cfg.HTTP.ConnectTimeout = 10 * time.Second
	}
	if cfg.HTTP.MaxRedirects == 0 {
		cfg.HTTP.MaxRedirects = 3
	}
	if cfg.HTTP.MaxIdlePerHost == 0 {
		cfg.HTTP.MaxIdlePerHost = 5
	}
	if cfg.HTTP.UserAgent == "" {
		cfg.HTTP.UserAgent = feed.DefaultUserAgent
	}

	// fetch
	if cfg.Fetch.MaxItems == 0 {
		cfg.Fetch.MaxItems = 5
	}
	if cfg.Fetch.MaxText == 0 {
		cfg.Fetch.MaxText = 280
	}
	if cfg.Fetch.BaseDelay == 0 {
		cfg.Fetch.BaseDelay = 500 * time.Millisecond
	}
	if cfg.Fetch.Attempts == 0 {
		cfg.Fetch.Attempts = 2
	}
	cfg.Fetch.DisplayLanguage = strings.ToLower(strings.TrimSpace(cfg.Fetch.DisplayLanguage))
	if cfg.Fetch.DisplayLanguage == "" {
		cfg.Fetch.DisplayLanguage = "ru"
	}
	if cfg.Fetch.MaxConcurrent == 0 {
		cfg.Fetch.MaxConcurrent = 8
	}

	// translation
	if cfg.Translate.Provider == "" {
		cfg.Translate.Provider = ProviderGoogle
	}
	cfg.Translate.Provider = strings.ToLower(cfg.Translate.Provider)
	if cfg.NewsAPI.KeyEnv == "" {
		cfg.NewsAPI.KeyEnv = feed.DefaultNewsAPIKeyEnv
	}

	// storage, schedule and server
	if cfg.Database.DSN == "" {
		cfg.Database.DSN = "file:logos.db?cache=shared&mode=rwc&_txlock=immediate"
	}
	if cfg.Schedule.Interval == 0 {
		cfg.Schedule.Interval = 15 * time.Minute
	}
	if cfg.Server.Listen == "" {
		cfg.Server.Listen = ":8080"
	}
	if cfg.Server.Timeout == 0 {
		cfg.Server.Timeout = 60 * time.Second
	}
	if cfg.Server.BaseURL == "" {
		cfg.Server.BaseURL = "http://localhost:8080"
	}
}

// validate checks configuration for correctness and builds the registry and compiled patterns
func validate(cfg *Config) error {
	if cfg.HTTP.Timeout < time.Second {
		return fmt.Errorf("http.timeout must be at least 1 second")
	}
	if cfg.HTTP.MaxRedirects < 0 {
		return fmt.Errorf("http.max_redirects must be non-negative")
	}
	if cfg.Fetch.MaxItems < 1 {
		return fmt.Errorf("fetch.max_items must be at least 1")
	}
	if cfg.Fetch.Attempts < 1 {
		return fmt.Errorf("fetch.attempts must be at least 1")
	}
	if cfg.Fetch.BaseDelay < 0 {
		return fmt.Errorf("fetch.base_delay must be non-negative")
	}
	if !isLangCode(cfg.Fetch.DisplayLanguage) {
		return fmt.Errorf("fetch.display_language must be a two-letter code, got %q", cfg.Fetch.DisplayLanguage)
	}

	switch cfg.Translate.Provider {
	case ProviderGoogle, ProviderNone:
	case ProviderOpenAI:
		if cfg.Translate.APIKey == "" {
			return fmt.Errorf("translate.api_key is required for the openai provider")
		}
	default:
		return fmt.Errorf("unknown translate.provider %q", cfg.Translate.Provider)
	}

	if cfg.Schedule.Interval < 0 {
		return fmt.Errorf("schedule.interval must be non-negative")
	}
	if cfg.Server.Timeout < time.Second {
		return fmt.Errorf("server timeout must be at least 1 second")
	}

	reg, err := NewRegistry(cfg.Sources)
	if err != nil {
		return fmt.Errorf("sources: %w", err)
	}
	cfg.registry = reg
	cfg.Sources = reg.All()

	if cfg.pricePatterns, err = compilePricePatterns(cfg.PricePatterns); err != nil {
		return err
	}
	if cfg.priceFilters, err = compilePriceFilters(cfg.PriceFilters); err != nil {
		return err
	}
	return nil
}

func compilePricePatterns(in map[string]PricePatternConfig) (map[string]feed.PricePattern, error) {
	res := make(map[string]feed.PricePattern, len(in))
	for name, p := range in {
		price, err := compileOneGroup(p.Price)
		if err != nil {
			return nil, fmt.Errorf("price_patterns.%s.price: %w", name, err)
		}
		pp := feed.PricePattern{Price: price}
		if p.Change != "" {
			if pp.Change, err = compileOneGroup(p.Change); err != nil {
				return nil, fmt.Errorf("price_patterns.%s.change: %w", name, err)
			}
		}
		res[name] = pp
	}
	return res, nil
}

func compilePriceFilters(in map[string]string) (map[string]*regexp.Regexp, error) {
	res := make(map[string]*regexp.Regexp, len(in))
	for name, expr := range in {
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("price_filters.%s: %w", name, err)
		}
		res[name] = re
	}
	return res, nil
}

func compileOneGroup(expr string) (*regexp.Regexp, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, err
	}
	if re.NumSubexp() != 1 {
		return nil, fmt.Errorf("expected one capture group, got %d", re.NumSubexp())
	}
	return re, nil
}

// GetServerConfig returns server listen address and timeout
func (c *Config) GetServerConfig() (listen string, timeout time.Duration) {
	return c.Server.Listen, c.Server.Timeout
}

// Registry returns the validated source registry
func (c *Config) Registry() *Registry {
	return c.registry
}

// CompiledPricePatterns returns price page patterns keyed by source name
func (c *Config) CompiledPricePatterns() map[string]feed.PricePattern {
	return c.pricePatterns
}

// CompiledPriceFilters returns per-source price token expressions keyed by source name
func (c *Config) CompiledPriceFilters() map[string]*regexp.Regexp {
	return c.priceFilters
}

// Targets resolves schedule.targets to fetch targets, unknown names are reported as error
func (c *Config) Targets() ([]domain.Target, error) {
	res := make([]domain.Target, 0, len(c.Schedule.Targets))
	for _, name := range c.Schedule.Targets {
		t, ok := c.registry.Target(name)
		if !ok {
			return nil, fmt.Errorf("unknown schedule target %q", name)
		}
		res = append(res, t)
	}
	return res, nil
}
