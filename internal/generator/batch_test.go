package generator

import (
	"context"
	"errors"
	"testing"

	"github.com/Rana718/sqlforge/internal/provider"
	"github.com/Rana718/sqlforge/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProvider struct {
	text     string
	err      error
	requests []*provider.Request
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) GenerateBatch(ctx context.Context, req *provider.Request) (string, error) {
	f.requests = append(f.requests, req)
	return f.text, f.err
}

func TestParsePairs(t *testing.T) {
	want := []types.QueryPair{{Question: "Q", SQL: "SELECT 1"}}

	tests := []struct {
		name    string
		text    string
		want    []types.QueryPair
		wantErr bool
	}{
		{name: "envelope", text: `{"pairs":[{"question":"Q","sql":"SELECT 1"}]}`, want: want},
		{name: "bare array", text: `[{"question":"Q","sql":"SELECT 1"}]`, want: want},
		{name: "fenced", text: "```json\n[{\"question\":\"Q\",\"sql\":\"SELECT 1\"}]\n```", want: want},
		{name: "empty envelope", text: `{"pairs":[]}`, want: []types.QueryPair{}},
		{name: "empty array", text: `[]`, want: []types.QueryPair{}},
		{name: "missing pairs", text: `{"items":[]}`, wantErr: true},
		{name: "not json", text: "Sure! Here are some queries", wantErr: true},
		{name: "blank", text: "  \n", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePairs(tt.text)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBatchGenerator(t *testing.T) {
	fake := &fakeProvider{text: `{"pairs":[{"question":"Q","sql":"SELECT 1"},{"question":"R","sql":"SELECT 2"}]}`}

	gen, err := NewBatchGenerator(fake, "gemini-2.5-flash-lite", "Table: t\nColumns: a (INT)\n\n", 2)
	require.NoError(t, err)

	result := gen.Generate(context.Background())
	assert.Equal(t, BatchOK, result.Outcome)
	assert.NoError(t, result.Err)
	assert.Len(t, result.Pairs, 2)

	require.Len(t, fake.requests, 1)
	req := fake.requests[0]
	assert.Equal(t, "gemini-2.5-flash-lite", req.Model)
	assert.Equal(t, provider.ResponseSchemaName, req.SchemaName)
	assert.NotNil(t, req.Schema)
	assert.Contains(t, req.Prompt, "Generate 2 unique pairs")
}

func TestBatchGeneratorOutcomes(t *testing.T) {
	tests := []struct {
		name    string
		fake    *fakeProvider
		outcome BatchOutcome
	}{
		{"remote error", &fakeProvider{err: errors.New("503 overloaded")}, BatchFailed},
		{"garbage", &fakeProvider{text: "no json here"}, BatchFailed},
		{"zero pairs", &fakeProvider{text: `{"pairs":[]}`}, BatchEmpty},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen, err := NewBatchGenerator(tt.fake, "m", "", 10)
			require.NoError(t, err)

			result := gen.Generate(context.Background())
			assert.Equal(t, tt.outcome, result.Outcome)
			assert.Empty(t, result.Pairs)
			if tt.outcome == BatchFailed {
				assert.Error(t, result.Err)
			} else {
				assert.NoError(t, result.Err)
			}
		})
	}
}

func TestNewBatchGeneratorRejectsBadSize(t *testing.T) {
	_, err := NewBatchGenerator(&fakeProvider{}, "m", "", 0)
	assert.Error(t, err)
}

func TestBatchOutcomeString(t *testing.T) {
	assert.Equal(t, "ok", BatchOK.String())
	assert.Equal(t, "empty", BatchEmpty.String())
	assert.Equal(t, "failed", BatchFailed.String())
}
