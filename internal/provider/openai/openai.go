package openai

import (
	"context"
	"fmt"
	"time"

	"github.com/Rana718/sqlforge/internal/provider"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/rs/zerolog/log"
)

// Provider talks to any OpenAI compatible Chat Completions endpoint. Gemini is
// reached the same way through Google's compatibility layer.
type Provider struct {
	name   string
	client *openai.Client
	config *Config
}

type Config struct {
	Name       string
	APIKey     string
	BaseURL    string // empty uses the SDK default
	Timeout    time.Duration
	MaxRetries int
}

func NewProvider(config *Config) (*Provider, error) {
	if config == nil || config.APIKey == "" {
		return nil, fmt.Errorf("openai API key is required")
	}
	if config.Name == "" {
		config.Name = "openai"
	}

	opts := []option.RequestOption{
		option.WithAPIKey(config.APIKey),
		option.WithMaxRetries(config.MaxRetries),
	}
	if config.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(config.BaseURL))
	}

	client := openai.NewClient(opts...)

	return &Provider{
		name:   config.Name,
		client: &client,
		config: config,
	}, nil
}

func (p *Provider) Name() string {
	return p.name
}

func (p *Provider) GenerateBatch(ctx context.Context, req *provider.Request) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(req.Model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(req.Prompt),
		},
		N: openai.Int(1),
	}
	if req.MaxTokens > 0 {
		params.MaxCompletionTokens = openai.Int(int64(req.MaxTokens))
	}
	if req.Schema != nil {
		params.ResponseFormat = openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONSchema: &openai.ResponseFormatJSONSchemaParam{
				JSONSchema: openai.ResponseFormatJSONSchemaJSONSchemaParam{
					Name:   req.SchemaName,
					Schema: req.Schema,
					Strict: openai.Bool(true),
				},
			},
		}
	}

	var opts []option.RequestOption
	if p.config.Timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(p.config.Timeout))
	}

	response, err := p.client.Chat.Completions.New(ctx, params, opts...)
	if err != nil {
		return "", fmt.Errorf("failed to create %s completion: %w", p.name, err)
	}

	log.Debug().
		Str("provider", p.name).
		Str("model", req.Model).
		Int64("prompt_tokens", response.Usage.PromptTokens).
		Int64("completion_tokens", response.Usage.CompletionTokens).
		Msg("completion finished")

	if len(response.Choices) == 0 {
		return "", fmt.Errorf("%s returned no choices", p.name)
	}

	message := response.Choices[0].Message
	if message.Refusal != "" {
		return "", fmt.Errorf("%s refused the request: %s", p.name, message.Refusal)
	}
	return message.Content, nil
}
