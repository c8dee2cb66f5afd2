package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Version     string    `json:"version" mapstructure:"version"`
	Database    Database  `json:"database" mapstructure:"database"`
	Seed        Seed      `json:"seed" mapstructure:"seed"`
	Generator   Generator `json:"generator" mapstructure:"generator"`
	MetricsFile string    `json:"metrics_file" mapstructure:"metrics_file"`
}

type Database struct {
	Provider string `json:"provider" mapstructure:"provider"`
	URLEnv   string `json:"url_env" mapstructure:"url_env"`
	Path     string `json:"path" mapstructure:"path"` // used for sqlite when URLEnv is unset
}

type Seed struct {
	Customers  int   `json:"customers" mapstructure:"customers"`
	RandomSeed int64 `json:"random_seed" mapstructure:"random_seed"` // 0 = time based
}

type Generator struct {
	Provider     string        `json:"provider" mapstructure:"provider"`
	Model        string        `json:"model" mapstructure:"model"`
	APIKeyEnv    string        `json:"api_key_env" mapstructure:"api_key_env"`
	BaseURL      string        `json:"base_url" mapstructure:"base_url"`
	BatchSize    int           `json:"batch_size" mapstructure:"batch_size"`
	Target       int           `json:"target" mapstructure:"target"`
	Output       string        `json:"output" mapstructure:"output"`
	EmptyDelay   time.Duration `json:"empty_delay" mapstructure:"empty_delay"`
	FailureDelay time.Duration `json:"failure_delay" mapstructure:"failure_delay"`
	BatchDelay   time.Duration `json:"batch_delay" mapstructure:"batch_delay"`
	Timeout      time.Duration `json:"timeout" mapstructure:"timeout"`
	MaxRetries   int           `json:"max_retries" mapstructure:"max_retries"`
}

const (
	ProviderGemini    = "gemini"
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"

	GeminiOpenAIBaseURL = "https://generativelanguage.googleapis.com/v1beta/openai/"
)

var defaultModels = map[string]string{
	ProviderGemini:    "gemini-2.5-flash-lite",
	ProviderOpenAI:    "gpt-4o-mini",
	ProviderAnthropic: "claude-3-5-haiku-latest",
}

var defaultKeyEnvs = map[string]string{
	ProviderGemini:    "GEMINI_API_KEY",
	ProviderOpenAI:    "OPENAI_API_KEY",
	ProviderAnthropic: "ANTHROPIC_API_KEY",
}

func Load() (*Config, error) {
	var cfg Config

	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.ApplyDefaults()
	return &cfg, nil
}

// Default returns a config holding only the built-in defaults.
func Default() *Config {
	cfg := &Config{}
	cfg.ApplyDefaults()
	return cfg
}

func (c *Config) ApplyDefaults() {
	if c.Version == "" {
		c.Version = "1"
	}
	if c.Database.Provider == "" {
		c.Database.Provider = "sqlite"
	}
	if c.Database.URLEnv == "" {
		c.Database.URLEnv = "DATABASE_URL"
	}
	if c.Database.Path == "" {
		c.Database.Path = "saas_crm.db"
	}
	if c.Seed.Customers == 0 {
		c.Seed.Customers = 100
	}

	g := &c.Generator
	if g.Provider == "" {
		g.Provider = ProviderGemini
	}
	g.Provider = strings.ToLower(g.Provider)
	if g.Model == "" {
		g.Model = defaultModels[g.Provider]
	}
	if g.APIKeyEnv == "" {
		g.APIKeyEnv = defaultKeyEnvs[g.Provider]
	}
	if g.BaseURL == "" && g.Provider == ProviderGemini {
		g.BaseURL = GeminiOpenAIBaseURL
	}
	if g.BatchSize == 0 {
		g.BatchSize = 10
	}
	if g.Target == 0 {
		g.Target = 500
	}
	if g.Output == "" {
		g.Output = "train_dataset.jsonl"
	}
	if g.EmptyDelay == 0 {
		g.EmptyDelay = 2 * time.Second
	}
	if g.FailureDelay == 0 {
		g.FailureDelay = g.EmptyDelay
	}
	if g.BatchDelay == 0 {
		g.BatchDelay = 4 * time.Second
	}
	if g.Timeout == 0 {
		g.Timeout = 2 * time.Minute
	}
	if g.MaxRetries == 0 {
		g.MaxRetries = 2
	}
}

func (c *Config) Validate() error {
	supportedProviders := []string{"sqlite", "sqlite3", "postgresql", "postgres", "mysql"}
	supported := false
	for _, provider := range supportedProviders {
		if c.Database.Provider == provider {
			supported = true
			break
		}
	}
	if !supported {
		return fmt.Errorf("unsupported database provider: %s. Supported providers: %v", c.Database.Provider, supportedProviders)
	}

	if _, ok := defaultKeyEnvs[c.Generator.Provider]; !ok {
		return fmt.Errorf("unsupported generator provider: %s", c.Generator.Provider)
	}
	if c.Seed.Customers < 0 {
		return fmt.Errorf("seed.customers cannot be negative")
	}
	if c.Generator.BatchSize <= 0 {
		return fmt.Errorf("generator.batch_size must be positive")
	}
	if c.Generator.Target <= 0 {
		return fmt.Errorf("generator.target must be positive")
	}
	if c.Generator.Output == "" {
		return fmt.Errorf("generator.output cannot be empty")
	}

	return nil
}

// GetDatabaseURL prefers the URL env var and falls back to the local sqlite file.
func (c *Config) GetDatabaseURL() (string, error) {
	if dbURL := os.Getenv(c.Database.URLEnv); dbURL != "" {
		return dbURL, nil
	}
	if c.IsSQLite() {
		return "sqlite://" + c.Database.Path, nil
	}
	return "", fmt.Errorf("database URL not found in environment variable %s", c.Database.URLEnv)
}

func (c *Config) IsSQLite() bool {
	return c.Database.Provider == "sqlite" || c.Database.Provider == "sqlite3"
}

func (c *Config) GetAPIKey() (string, error) {
	key := os.Getenv(c.Generator.APIKeyEnv)
	if key == "" {
		return "", fmt.Errorf("API key not found in environment variable %s", c.Generator.APIKeyEnv)
	}
	return key, nil
}
