package provider

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Rana718/sqlforge/internal/types"
	"github.com/invopop/jsonschema"
	"github.com/stoewer/go-strcase"
)

// ResponseSchemaName names the structured output in both the OpenAI
// response_format and the Anthropic tool definition.
const ResponseSchemaName = "query_pairs"

// Request asks a model for one batch of question/SQL pairs.
type Request struct {
	Prompt     string
	Model      string
	SchemaName string
	Schema     map[string]any
	MaxTokens  int
}

// Provider is a remote model able to answer with JSON matching Request.Schema.
// GenerateBatch returns the raw JSON text; parsing is left to the caller.
type Provider interface {
	Name() string
	GenerateBatch(ctx context.Context, req *Request) (string, error)
}

// ResponseSchema reflects types.PairBatch into a strict JSON schema: every
// field required and no additional properties.
func ResponseSchema() (map[string]any, error) {
	r := &jsonschema.Reflector{
		KeyNamer:                  strcase.SnakeCase,
		ExpandedStruct:            true,
		DoNotReference:            true,
		Anonymous:                 true,
		AllowAdditionalProperties: false,
	}

	s := r.Reflect(&types.PairBatch{})
	s.Version = ""

	raw, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal response schema: %w", err)
	}

	var schema map[string]any
	if err := json.Unmarshal(raw, &schema); err != nil {
		return nil, fmt.Errorf("failed to decode response schema: %w", err)
	}
	return schema, nil
}

// RequiredFields returns the schema's top level "required" list.
func RequiredFields(schema map[string]any) []string {
	raw, _ := schema["required"].([]any)
	fields := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			fields = append(fields, s)
		}
	}
	return fields
}
