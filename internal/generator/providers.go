package generator

import (
	"fmt"

	"github.com/Rana718/sqlforge/internal/config"
	"github.com/Rana718/sqlforge/internal/provider"
	"github.com/Rana718/sqlforge/internal/provider/anthropic"
	"github.com/Rana718/sqlforge/internal/provider/openai"
)

// NewProvider builds the model client named by generator.provider.
func NewProvider(cfg *config.Config) (provider.Provider, error) {
	apiKey, err := cfg.GetAPIKey()
	if err != nil {
		return nil, err
	}

	g := cfg.Generator
	switch g.Provider {
	case config.ProviderAnthropic:
		p, err := anthropic.NewProvider(&anthropic.Config{
			APIKey:     apiKey,
			BaseURL:    g.BaseURL,
			Timeout:    g.Timeout,
			MaxRetries: g.MaxRetries,
		})
		if err != nil {
			return nil, err
		}
		return p, nil
	case config.ProviderGemini, config.ProviderOpenAI:
		p, err := openai.NewProvider(&openai.Config{
			Name:       g.Provider,
			APIKey:     apiKey,
			BaseURL:    g.BaseURL,
			Timeout:    g.Timeout,
			MaxRetries: g.MaxRetries,
		})
		if err != nil {
			return nil, err
		}
		return p, nil
	default:
		return nil, fmt.Errorf("unsupported generator provider: %s", g.Provider)
	}
}
