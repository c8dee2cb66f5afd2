package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Rana718/sqlforge/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "train_dataset.jsonl"))
}

func record(q, sql string) types.TrainingRecord {
	return types.TrainingRecord{
		Instruction: "Convert the question into SQL.",
		Input:       "Question: " + q,
		Output:      sql,
	}
}

func TestCountMissingFile(t *testing.T) {
	count, err := newStore(t).Count()
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestCountLines(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    int
	}{
		{"empty", "", 0},
		{"trailing newline", "{}\n{}\n{}\n", 3},
		{"no trailing newline", "{}\n{}", 2},
		{"blank line", "{}\n\n", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newStore(t)
			require.NoError(t, os.WriteFile(store.Path(), []byte(tt.content), 0644))

			count, err := store.Count()
			require.NoError(t, err)
			assert.Equal(t, tt.want, count)
		})
	}
}

func TestAppendAndRecords(t *testing.T) {
	store := newStore(t)

	n, err := store.Append(record("How many customers?", "SELECT COUNT(*) FROM customers"))
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = store.Append(
		record("Big spenders", "SELECT * FROM subscriptions WHERE monthly_revenue > 100"),
		record("Tech firms", "SELECT name FROM customers WHERE industry = 'Tech'"),
	)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	count, err := store.Count()
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	entries, err := store.Records()
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, 2, entries[1].Line)
	assert.NoError(t, entries[1].Err)
	assert.Equal(t, "SELECT * FROM subscriptions WHERE monthly_revenue > 100", entries[1].Record.Output)

	raw, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Contains(t, string(raw), "monthly_revenue > 100")
	assert.Contains(t, string(raw), `"instruction":"Convert the question into SQL."`)
}

func TestAppendPreservesExistingLines(t *testing.T) {
	store := newStore(t)
	require.NoError(t, os.WriteFile(store.Path(), []byte("{\"instruction\":\"a\",\"input\":\"b\",\"output\":\"SELECT 1\"}\n"), 0644))

	_, err := store.Append(record("q", "SELECT 2"))
	require.NoError(t, err)

	entries, err := store.Records()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "SELECT 1", entries[0].Record.Output)
	assert.Equal(t, "SELECT 2", entries[1].Record.Output)
}

func TestRecordsReportsBadLines(t *testing.T) {
	store := newStore(t)
	require.NoError(t, os.WriteFile(store.Path(), []byte("not json\n{\"output\":\"SELECT 1\"}\n"), 0644))

	entries, err := store.Records()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Error(t, entries[0].Err)
	assert.NoError(t, entries[1].Err)
}

func TestAppendNothing(t *testing.T) {
	store := newStore(t)
	n, err := store.Append()
	require.NoError(t, err)
	assert.Zero(t, n)

	_, err = os.Stat(store.Path())
	assert.True(t, os.IsNotExist(err))
}
