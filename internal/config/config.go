// Package config loads layered settings for the CLI and HTTP server: struct defaults,
// then an optional YAML file, then PARTY_* environment variables.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/jonathan/party-optimizer/internal/types"
)

// ConfigPathEnvVar overrides the config file location
const ConfigPathEnvVar = "CONFIG_PATH"

// EnvPrefix marks environment variables that map onto config keys
const EnvPrefix = "PARTY_"

const (
	MinBudget = 0.01
	MaxBudget = 10000.0
)

// DefaultConfigPaths are searched in order when no explicit path is given
var DefaultConfigPaths = []string{
	"party.yaml",
	"party.yml",
	"config/party.yaml",
}

// Config is the full application configuration
type Config struct {
	Optimization OptimizationConfig `koanf:"optimization"`
	Data         DataConfig         `koanf:"data"`
	Database     DatabaseConfig     `koanf:"database"`
	Server       ServerConfig       `koanf:"server"`
	Logging      LoggingConfig      `koanf:"logging"`
}

// OptimizationConfig holds the search defaults applied when a request omits them
type OptimizationConfig struct {
	Budget    float64         `koanf:"budget"`
	MinGuests int             `koanf:"min_guests"`
	MaxGuests int             `koanf:"max_guests"`
	TopN      int             `koanf:"top_n"`
	Workers   int             `koanf:"workers"`
	Weights   types.Weights   `koanf:"weights"`
	Rules     types.MenuRules `koanf:"rules"`
}

type DataConfig struct {
	Dir string `koanf:"dir"`
}

type DatabaseConfig struct {
	URL string `koanf:"url"`
}

type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	RateLimitReqs   int           `koanf:"rate_limit_reqs"`
	RateLimitWindow time.Duration `koanf:"rate_limit_window"`
}

type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// Default returns the built-in settings
func Default() *Config {
	return &Config{
		Optimization: OptimizationConfig{
			Budget:    30.0,
			MinGuests: 1,
			MaxGuests: 8,
			TopN:      5,
			Workers:   0, // one per CPU
			Weights:   types.DefaultWeights(),
			Rules:     types.DefaultMenuRules(),
		},
		Data: DataConfig{
			Dir: "data",
		},
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    60 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			RateLimitReqs:   60,
			RateLimitWindow: time.Minute,
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "console",
		},
	}
}

// Load builds the configuration. path may be empty, in which case CONFIG_PATH and
// DefaultConfigPaths are consulted; a missing default file is not an error.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path == "" {
		path = findConfigFile()
	} else if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	// DATABASE_URL is honored without the prefix, like the rest of the tooling
	if cfg.Database.URL == "" {
		cfg.Database.URL = os.Getenv("DATABASE_URL")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, p := range DefaultConfigPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

var envMappings = map[string]string{
	"budget":              "optimization.budget",
	"min_guests":          "optimization.min_guests",
	"max_guests":          "optimization.max_guests",
	"top_n":               "optimization.top_n",
	"workers":             "optimization.workers",
	"weight_satisfaction": "optimization.weights.satisfaction",
	"weight_savings":      "optimization.weights.savings",
	"weight_intimacy":     "optimization.weights.intimacy",
	"min_foods":           "optimization.rules.min_foods",
	"max_foods":           "optimization.rules.max_foods",
	"min_drinks":          "optimization.rules.min_drinks",
	"max_drinks":          "optimization.rules.max_drinks",
	"data_dir":            "data.dir",
	"database_url":        "database.url",
	"http_host":           "server.host",
	"http_port":           "server.port",
	"rate_limit_reqs":     "server.rate_limit_reqs",
	"rate_limit_window":   "server.rate_limit_window",
	"log_level":           "logging.level",
	"log_format":          "logging.format",
}

// envTransform maps PARTY_MAX_GUESTS to optimization.max_guests. Unknown keys
// return "" and are skipped.
func envTransform(key string) string {
	key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
	return envMappings[key]
}

// Validate checks value ranges. Cross-checks against the catalog (max guests versus
// friend count) happen in the optimizer.
func (c *Config) Validate() error {
	o := c.Optimization
	if err := CheckBudget(o.Budget); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	if o.MaxGuests < 1 {
		return fmt.Errorf("config error: 'max_guests' must be at least 1")
	}
	if o.MinGuests < 1 || o.MinGuests > o.MaxGuests {
		return fmt.Errorf("config error: 'min_guests' must be between 1 and max_guests (%d), got %d", o.MaxGuests, o.MinGuests)
	}
	if o.TopN < 1 {
		return fmt.Errorf("config error: 'top_n' must be at least 1")
	}
	if o.Workers < 0 {
		return fmt.Errorf("config error: 'workers' must be non-negative")
	}
	if err := o.Weights.Validate(); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	if err := o.Rules.Validate(); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	if c.Data.Dir == "" {
		return fmt.Errorf("config error: 'data.dir' must not be empty")
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("config error: 'server.port' out of range: %d", c.Server.Port)
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("config error: 'logging.format' must be json or console, got %q", c.Logging.Format)
	}
	return nil
}

// CheckBudget enforces the accepted budget range. CLI flags and API requests that
// override the configured budget go through it too.
func CheckBudget(budget float64) error {
	if !(budget >= MinBudget && budget <= MaxBudget) {
		return fmt.Errorf("'budget' must be between %.2f and %.0f, got %v", MinBudget, MaxBudget, budget)
	}
	return nil
}

// MergeWithDefaults fills zero-valued fields from defaults. Used to layer CLI flags
// over file and environment settings.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Optimization.Budget == 0 {
		result.Optimization.Budget = defaults.Optimization.Budget
	}
	if result.Optimization.MinGuests == 0 {
		result.Optimization.MinGuests = defaults.Optimization.MinGuests
	}
	if result.Optimization.MaxGuests == 0 {
		result.Optimization.MaxGuests = defaults.Optimization.MaxGuests
	}
	if result.Optimization.TopN == 0 {
		result.Optimization.TopN = defaults.Optimization.TopN
	}
	if result.Optimization.Weights == (types.Weights{}) {
		result.Optimization.Weights = defaults.Optimization.Weights
	}
	if result.Optimization.Rules == (types.MenuRules{}) {
		result.Optimization.Rules = defaults.Optimization.Rules
	}
	if result.Data.Dir == "" {
		result.Data.Dir = defaults.Data.Dir
	}
	if result.Database.URL == "" {
		result.Database.URL = defaults.Database.URL
	}
	if result.Server == (ServerConfig{}) {
		result.Server = defaults.Server
	}
	if result.Logging.Level == "" {
		result.Logging.Level = defaults.Logging.Level
	}
	if result.Logging.Format == "" {
		result.Logging.Format = defaults.Logging.Format
	}

	// Workers: zero already means "one per CPU", so it is never merged

	return result
}

// OptimizerConfig converts the optimization section into the optimizer's input,
// capping max guests at the number of available friends.
func (c *Config) OptimizerConfig(numFriends int) types.OptimizationConfig {
	o := c.Optimization
	maxGuests := o.MaxGuests
	if numFriends > 0 && maxGuests > numFriends {
		maxGuests = numFriends
	}
	return types.OptimizationConfig{
		Budget:    o.Budget,
		MinGuests: o.MinGuests,
		MaxGuests: maxGuests,
		Weights:   o.Weights,
		Rules:     o.Rules,
		Workers:   o.Workers,
	}
}

// Addr is the listen address for the HTTP server
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
