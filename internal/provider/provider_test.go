package provider

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResponseSchema(t *testing.T) {
	schema, err := ResponseSchema()
	require.NoError(t, err)

	assert.Equal(t, "object", schema["type"])
	assert.Equal(t, false, schema["additionalProperties"])
	assert.NotContains(t, schema, "$schema")
	assert.NotContains(t, schema, "$ref")
	assert.Equal(t, []string{"pairs"}, RequiredFields(schema))

	props := schema["properties"].(map[string]any)
	pairs := props["pairs"].(map[string]any)
	assert.Equal(t, "array", pairs["type"])

	item := pairs["items"].(map[string]any)
	assert.Equal(t, "object", item["type"])
	assert.Equal(t, false, item["additionalProperties"])
	assert.ElementsMatch(t, []string{"question", "sql"}, RequiredFields(item))

	itemProps := item["properties"].(map[string]any)
	assert.Contains(t, itemProps, "question")
	assert.Contains(t, itemProps, "sql")
}

func TestRequiredFieldsMissing(t *testing.T) {
	assert.Empty(t, RequiredFields(map[string]any{}))
}
