package generator

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Rana718/sqlforge/internal/database"
	"github.com/Rana718/sqlforge/internal/types"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripFences(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"SELECT 1", "SELECT 1"},
		{"```sql\nSELECT 1\n```", "SELECT 1"},
		{"```SQL SELECT 1```", "SELECT 1"},
		{"```\nSELECT 1\n```\n", "SELECT 1"},
		{"  SELECT 1 ;  ", "SELECT 1 ;"},
		{"```sql```", ""},
		{"```SELECT COUNT(*) FROM customers```", "SELECT COUNT(*) FROM customers"},
		{"```sqlite\nSELECT 1\n```", "SELECT 1"},
		{"```PostgreSQL\nSELECT 1```", "SELECT 1"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, StripFences(tt.in), "input %q", tt.in)
	}
}

func TestValidateMixedBatch(t *testing.T) {
	connect, summary := seededDB(t)

	var logs bytes.Buffer
	v := NewValidator(connect, summary, zerolog.New(&logs))

	report, err := v.Validate(context.Background(), mixedBatch)
	require.NoError(t, err)

	require.Len(t, report.Accepted, 7)
	require.Len(t, report.Rejected, 3)

	for i, record := range report.Accepted {
		assert.Equal(t, Instruction, record.Instruction)
		assert.Equal(t, "Question: "+mixedBatch[i].Question+"\nSchema: "+summary, record.Input)
		assert.NotContains(t, record.Output, "```")
	}
	assert.Equal(t, "SELECT priority, AVG(resolved_in_hours) FROM support_tickets GROUP BY priority", report.Accepted[4].Output)

	assert.ErrorContains(t, report.Rejected[0].Err, "no such column")
	assert.ErrorContains(t, report.Rejected[1].Err, "no such table")
	assert.ErrorContains(t, report.Rejected[2].Err, "syntax error")

	output := logs.String()
	assert.Equal(t, 3, strings.Count(output, `"level":"warn"`))
	assert.Equal(t, 3, strings.Count(output, `"message":"rejected"`))
	assert.Equal(t, 7, strings.Count(output, `"message":"valid"`))
	assert.Contains(t, output, `"sql":"SELECT * FROM invoices"`)
}

func TestValidateDoesNotPersistWrites(t *testing.T) {
	connect, summary := seededDB(t)
	ctx := context.Background()

	v := NewValidator(connect, summary, zerolog.Nop())
	report, err := v.Validate(ctx, []types.QueryPair{
		{Question: "Remove churned", SQL: "DELETE FROM subscriptions WHERE status = 'Churned'"},
		{Question: "Wipe customers", SQL: "DELETE FROM customers"},
	})
	require.NoError(t, err)
	assert.Len(t, report.Accepted, 2)

	adapter, err := connect(ctx)
	require.NoError(t, err)
	defer adapter.Close()

	count, err := adapter.CountRows(ctx, "customers")
	require.NoError(t, err)
	assert.Equal(t, int64(100), count)
}

func TestValidateRejectsEmptyAndMultiple(t *testing.T) {
	connect, summary := seededDB(t)

	v := NewValidator(connect, summary, zerolog.Nop())
	report, err := v.Validate(context.Background(), []types.QueryPair{
		{Question: "nothing", SQL: ""},
		{Question: "fence only", SQL: "```sql\n```"},
		{Question: "two", SQL: "SELECT 1; SELECT 2"},
	})
	require.NoError(t, err)
	assert.Empty(t, report.Accepted)
	require.Len(t, report.Rejected, 3)
	assert.ErrorIs(t, report.Rejected[0].Err, ErrEmptySQL)
	assert.ErrorIs(t, report.Rejected[1].Err, ErrEmptySQL)
	assert.ErrorIs(t, report.Rejected[2].Err, ErrMultipleStatements)
}

func TestValidateAcceptsFencesAndComments(t *testing.T) {
	connect, summary := seededDB(t)

	v := NewValidator(connect, summary, zerolog.Nop())
	report, err := v.Validate(context.Background(), []types.QueryPair{
		{Question: "untagged fence", SQL: "```SELECT COUNT(*) FROM customers```"},
		{Question: "trailing comment", SQL: "SELECT COUNT(*) FROM customers; -- total"},
		{Question: "inline comment", SQL: "SELECT COUNT(*) -- count; all\nFROM customers"},
		{Question: "block comment", SQL: "SELECT /* one; two */ COUNT(*) FROM customers"},
		{Question: "dashes in literal", SQL: "SELECT COUNT(*) FROM customers WHERE name = 'a--b;c'"},
	})
	require.NoError(t, err)
	assert.Empty(t, report.Rejected)
	require.Len(t, report.Accepted, 5)
	assert.Equal(t, "SELECT COUNT(*) FROM customers", report.Accepted[0].Output)
}

func TestValidateConnectionFailure(t *testing.T) {
	connect := func(ctx context.Context) (database.DatabaseAdapter, error) {
		return nil, errors.New("database is locked")
	}

	v := NewValidator(connect, "", zerolog.Nop())
	_, err := v.Validate(context.Background(), mixedBatch)
	assert.ErrorContains(t, err, "database is locked")

	report, err := v.Validate(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, report.Accepted)
}

func TestValidateCancelled(t *testing.T) {
	connect, summary := seededDB(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	v := NewValidator(connect, summary, zerolog.Nop())
	_, err := v.Validate(ctx, mixedBatch)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 40))
	assert.Equal(t, "abc...", truncate("abcdef", 3))
}
