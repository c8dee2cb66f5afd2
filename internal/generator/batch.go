package generator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Rana718/sqlforge/internal/provider"
	"github.com/Rana718/sqlforge/internal/types"
)

type BatchOutcome int

const (
	BatchOK BatchOutcome = iota
	BatchEmpty
	BatchFailed
)

func (o BatchOutcome) String() string {
	switch o {
	case BatchOK:
		return "ok"
	case BatchEmpty:
		return "empty"
	default:
		return "failed"
	}
}

// BatchResult is the outcome of one remote call. Err is set only for BatchFailed.
type BatchResult struct {
	Outcome BatchOutcome
	Pairs   []types.QueryPair
	Err     error
	Took    time.Duration
}

// Batcher produces candidate batches.
type Batcher interface {
	Generate(ctx context.Context) BatchResult
}

type BatchGenerator struct {
	provider provider.Provider
	request  *provider.Request
}

func NewBatchGenerator(p provider.Provider, model, summary string, size int) (*BatchGenerator, error) {
	if size <= 0 {
		return nil, fmt.Errorf("batch size must be positive, got %d", size)
	}

	schema, err := provider.ResponseSchema()
	if err != nil {
		return nil, err
	}

	return &BatchGenerator{
		provider: p,
		request: &provider.Request{
			Prompt:     BuildPrompt(summary, size),
			Model:      model,
			SchemaName: provider.ResponseSchemaName,
			Schema:     schema,
		},
	}, nil
}

// Generate asks the model for one batch. Failures are reported in the result
// and never abort the caller.
func (g *BatchGenerator) Generate(ctx context.Context) BatchResult {
	start := time.Now()

	text, err := g.provider.GenerateBatch(ctx, g.request)
	if err != nil {
		return BatchResult{Outcome: BatchFailed, Err: err, Took: time.Since(start)}
	}

	pairs, err := ParsePairs(text)
	if err != nil {
		return BatchResult{Outcome: BatchFailed, Err: err, Took: time.Since(start)}
	}
	if len(pairs) == 0 {
		return BatchResult{Outcome: BatchEmpty, Took: time.Since(start)}
	}
	return BatchResult{Outcome: BatchOK, Pairs: pairs, Took: time.Since(start)}
}

var errNoPairs = errors.New("response has no pairs field")

// ParsePairs decodes a model response. Both a bare JSON array and the
// {"pairs": [...]} envelope are accepted, with or without a markdown fence.
func ParsePairs(text string) ([]types.QueryPair, error) {
	text = StripFences(text)
	if text == "" {
		return nil, fmt.Errorf("failed to parse response: empty body")
	}

	if strings.HasPrefix(text, "[") {
		var pairs []types.QueryPair
		if err := json.Unmarshal([]byte(text), &pairs); err != nil {
			return nil, fmt.Errorf("failed to parse response: %w", err)
		}
		return pairs, nil
	}

	var envelope struct {
		Pairs *[]types.QueryPair `json:"pairs"`
	}
	if err := json.Unmarshal([]byte(text), &envelope); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	if envelope.Pairs == nil {
		return nil, errNoPairs
	}
	return *envelope.Pairs, nil
}
