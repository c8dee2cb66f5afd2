package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "sqlite", cfg.Database.Provider)
	assert.Equal(t, "saas_crm.db", cfg.Database.Path)
	assert.Equal(t, "DATABASE_URL", cfg.Database.URLEnv)
	assert.Equal(t, 100, cfg.Seed.Customers)

	assert.Equal(t, ProviderGemini, cfg.Generator.Provider)
	assert.Equal(t, "gemini-2.5-flash-lite", cfg.Generator.Model)
	assert.Equal(t, "GEMINI_API_KEY", cfg.Generator.APIKeyEnv)
	assert.Equal(t, GeminiOpenAIBaseURL, cfg.Generator.BaseURL)
	assert.Equal(t, 10, cfg.Generator.BatchSize)
	assert.Equal(t, 500, cfg.Generator.Target)
	assert.Equal(t, "train_dataset.jsonl", cfg.Generator.Output)
	assert.Equal(t, 2*time.Second, cfg.Generator.EmptyDelay)
	assert.Equal(t, 2*time.Second, cfg.Generator.FailureDelay)
	assert.Equal(t, 4*time.Second, cfg.Generator.BatchDelay)

	require.NoError(t, cfg.Validate())
}

func TestProviderDefaults(t *testing.T) {
	cfg := &Config{Generator: Generator{Provider: "Anthropic"}}
	cfg.ApplyDefaults()

	assert.Equal(t, ProviderAnthropic, cfg.Generator.Provider)
	assert.Equal(t, "ANTHROPIC_API_KEY", cfg.Generator.APIKeyEnv)
	assert.Empty(t, cfg.Generator.BaseURL)
	assert.NotEmpty(t, cfg.Generator.Model)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown database", func(c *Config) { c.Database.Provider = "oracle" }},
		{"unknown generator", func(c *Config) { c.Generator.Provider = "cohere" }},
		{"negative batch", func(c *Config) { c.Generator.BatchSize = -1 }},
		{"negative target", func(c *Config) { c.Generator.Target = -5 }},
		{"negative customers", func(c *Config) { c.Seed.Customers = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestGetDatabaseURL(t *testing.T) {
	t.Setenv("SQLFORGE_TEST_DB", "")

	cfg := Default()
	cfg.Database.URLEnv = "SQLFORGE_TEST_DB"

	url, err := cfg.GetDatabaseURL()
	require.NoError(t, err)
	assert.Equal(t, "sqlite://saas_crm.db", url)

	t.Setenv("SQLFORGE_TEST_DB", "postgres://localhost/crm")
	url, err = cfg.GetDatabaseURL()
	require.NoError(t, err)
	assert.Equal(t, "postgres://localhost/crm", url)

	t.Setenv("SQLFORGE_TEST_DB", "")
	cfg.Database.Provider = "postgres"
	_, err = cfg.GetDatabaseURL()
	assert.Error(t, err)
}

func TestGetAPIKey(t *testing.T) {
	cfg := Default()
	cfg.Generator.APIKeyEnv = "SQLFORGE_TEST_KEY"

	t.Setenv("SQLFORGE_TEST_KEY", "")
	_, err := cfg.GetAPIKey()
	assert.Error(t, err)

	t.Setenv("SQLFORGE_TEST_KEY", "secret")
	key, err := cfg.GetAPIKey()
	require.NoError(t, err)
	assert.Equal(t, "secret", key)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sqlforge.config.json")
	content := `{
  "database": {"path": "crm.db"},
  "seed": {"customers": 25, "random_seed": 7},
  "generator": {"provider": "openai", "target": 40, "batch_delay": "250ms"}
}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	viper.Reset()
	t.Cleanup(viper.Reset)
	viper.SetConfigFile(path)
	require.NoError(t, viper.ReadInConfig())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "crm.db", cfg.Database.Path)
	assert.Equal(t, 25, cfg.Seed.Customers)
	assert.Equal(t, int64(7), cfg.Seed.RandomSeed)
	assert.Equal(t, ProviderOpenAI, cfg.Generator.Provider)
	assert.Equal(t, "OPENAI_API_KEY", cfg.Generator.APIKeyEnv)
	assert.Equal(t, 40, cfg.Generator.Target)
	assert.Equal(t, 250*time.Millisecond, cfg.Generator.BatchDelay)
	assert.Equal(t, 10, cfg.Generator.BatchSize)
}
