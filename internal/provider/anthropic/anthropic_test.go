package anthropic

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Rana718/sqlforge/internal/provider"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func message(content ...map[string]any) map[string]any {
	if content == nil {
		content = []map[string]any{}
	}
	return map[string]any{
		"id":            "msg_01",
		"type":          "message",
		"role":          "assistant",
		"model":         "claude-3-5-haiku-latest",
		"content":       content,
		"stop_reason":   "tool_use",
		"stop_sequence": nil,
		"usage":         map[string]any{"input_tokens": 12, "output_tokens": 34},
	}
}

func newTestProvider(t *testing.T, handler http.HandlerFunc) *Provider {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	p, err := NewProvider(&Config{APIKey: "test-key", BaseURL: server.URL})
	require.NoError(t, err)
	return p
}

func TestGenerateBatchForcesTool(t *testing.T) {
	var body map[string]any
	var path, apiKey string

	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		apiKey = r.Header.Get("X-Api-Key")
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(message(
			map[string]any{"type": "text", "text": "Here you go."},
			map[string]any{
				"type":  "tool_use",
				"id":    "toolu_01",
				"name":  provider.ResponseSchemaName,
				"input": map[string]any{"pairs": []any{map[string]any{"question": "Q", "sql": "SELECT 1"}}},
			},
		))
	})

	schema, err := provider.ResponseSchema()
	require.NoError(t, err)

	text, err := p.GenerateBatch(context.Background(), &provider.Request{
		Prompt:     "Generate 1 pair",
		Model:      "claude-3-5-haiku-latest",
		SchemaName: provider.ResponseSchemaName,
		Schema:     schema,
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"pairs":[{"question":"Q","sql":"SELECT 1"}]}`, text)

	assert.Equal(t, "/v1/messages", path)
	assert.Equal(t, "test-key", apiKey)
	assert.Equal(t, float64(8192), body["max_tokens"])

	choice := body["tool_choice"].(map[string]any)
	assert.Equal(t, "tool", choice["type"])
	assert.Equal(t, provider.ResponseSchemaName, choice["name"])

	tools := body["tools"].([]any)
	require.Len(t, tools, 1)
	tool := tools[0].(map[string]any)
	assert.Equal(t, provider.ResponseSchemaName, tool["name"])
	input := tool["input_schema"].(map[string]any)
	assert.Equal(t, "object", input["type"])
	assert.Equal(t, []any{"pairs"}, input["required"])
}

func TestGenerateBatchFallsBackToText(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(message(map[string]any{"type": "text", "text": `[{"question":"Q","sql":"SELECT 1"}]`}))
	})

	text, err := p.GenerateBatch(context.Background(), &provider.Request{Prompt: "p", Model: "claude-3-5-haiku-latest"})
	require.NoError(t, err)
	assert.Equal(t, `[{"question":"Q","sql":"SELECT 1"}]`, text)
}

func TestGenerateBatchEmptyContent(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(message())
	})

	_, err := p.GenerateBatch(context.Background(), &provider.Request{
		Prompt: "p", Model: "claude-3-5-haiku-latest", SchemaName: provider.ResponseSchemaName,
	})
	assert.ErrorContains(t, err, "no query_pairs tool call")
}

func TestGenerateBatchAPIError(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"type":"error","error":{"type":"invalid_request_error","message":"bad"}}`))
	})

	_, err := p.GenerateBatch(context.Background(), &provider.Request{Prompt: "p", Model: "m"})
	assert.ErrorContains(t, err, "anthropic API call failed")
}

func TestBuildParamsMaxTokens(t *testing.T) {
	p := &Provider{name: "anthropic", config: &Config{}}

	params := p.buildParams(&provider.Request{Model: "claude-sonnet-4-20250514"})
	assert.Equal(t, int64(64000), params.MaxTokens)

	params = p.buildParams(&provider.Request{Model: "claude-sonnet-4-20250514", MaxTokens: 1024})
	assert.Equal(t, int64(1024), params.MaxTokens)

	params = p.buildParams(&provider.Request{Model: "unknown"})
	assert.Equal(t, int64(defaultMaxTokens), params.MaxTokens)
	assert.Empty(t, params.Tools)
}
