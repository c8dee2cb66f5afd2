package anthropic

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Rana718/sqlforge/internal/provider"
	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/rs/zerolog/log"
)

var maxTokenMap = map[string]int{
	"claude-opus-4":     32000,
	"claude-sonnet-4":   64000,
	"claude-3-7-sonnet": 64000,
	"claude-3-5-sonnet": 8192,
	"claude-3-5-haiku":  8192,
	"claude-3-haiku":    4096,
}

const defaultMaxTokens = 8192

// Provider asks Claude for structured output by forcing a single tool call
// whose input schema is the requested response schema.
type Provider struct {
	name   string
	client *anthropic.Client
	config *Config
}

type Config struct {
	APIKey     string
	BaseURL    string
	Timeout    time.Duration
	MaxRetries int
}

func NewProvider(config *Config) (*Provider, error) {
	if config == nil || config.APIKey == "" {
		return nil, fmt.Errorf("anthropic API key is required")
	}

	opts := []option.RequestOption{
		option.WithAPIKey(config.APIKey),
		option.WithMaxRetries(config.MaxRetries),
	}
	if config.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(config.BaseURL))
	}

	client := anthropic.NewClient(opts...)

	return &Provider{
		name:   "anthropic",
		client: &client,
		config: config,
	}, nil
}

func (p *Provider) Name() string {
	return p.name
}

func (p *Provider) GenerateBatch(ctx context.Context, req *provider.Request) (string, error) {
	params := p.buildParams(req)

	var opts []option.RequestOption
	if p.config.Timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(p.config.Timeout))
	}

	response, err := p.client.Messages.New(ctx, params, opts...)
	if err != nil {
		return "", fmt.Errorf("anthropic API call failed: %w", err)
	}

	log.Debug().
		Str("provider", p.name).
		Str("model", req.Model).
		Int64("input_tokens", response.Usage.InputTokens).
		Int64("output_tokens", response.Usage.OutputTokens).
		Str("stop_reason", string(response.StopReason)).
		Msg("message finished")

	var text strings.Builder
	for _, contentBlock := range response.Content {
		switch block := contentBlock.AsAny().(type) {
		case anthropic.ToolUseBlock:
			if req.SchemaName == "" || block.Name == req.SchemaName {
				return string(block.Input), nil
			}
		case anthropic.TextBlock:
			text.WriteString(block.Text)
		}
	}

	// no tool call: hand back whatever text came with the message
	if text.Len() > 0 {
		return text.String(), nil
	}
	return "", fmt.Errorf("anthropic response contained no %s tool call", req.SchemaName)
}

func (p *Provider) buildParams(req *provider.Request) anthropic.MessageNewParams {
	maxTokens := defaultMaxTokens
	for model, tokens := range maxTokenMap {
		if strings.HasPrefix(req.Model, model) {
			maxTokens = tokens
			break
		}
	}
	if req.MaxTokens > 0 {
		maxTokens = req.MaxTokens
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(req.Model),
		MaxTokens: int64(maxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.Prompt)),
		},
	}

	if req.Schema != nil && req.SchemaName != "" {
		params.Tools = []anthropic.ToolUnionParam{{
			OfTool: &anthropic.ToolParam{
				Name:        req.SchemaName,
				Description: anthropic.String("Record the generated question and SQL pairs."),
				InputSchema: anthropic.ToolInputSchemaParam{
					Type:       "object",
					Properties: req.Schema["properties"],
					Required:   provider.RequiredFields(req.Schema),
				},
			},
		}}
		params.ToolChoice = anthropic.ToolChoiceParamOfTool(req.SchemaName)
	}

	return params
}
