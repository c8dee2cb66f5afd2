package generator

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/Rana718/sqlforge/internal/database"
	"github.com/Rana718/sqlforge/internal/database/common"
	"github.com/Rana718/sqlforge/internal/types"
	"github.com/rs/zerolog"
)

// Only known language tags are removed, so an untagged fence followed directly
// by SQL keeps its first keyword.
var fenceRegex = regexp.MustCompile("(?i)```(?:sqlite|sql|postgresql|postgres|mysql)?")

var (
	ErrEmptySQL           = errors.New("empty SQL statement")
	ErrMultipleStatements = errors.New("only one statement is allowed")
)

// StripFences removes markdown code fence markers and surrounding whitespace.
func StripFences(sql string) string {
	return strings.TrimSpace(fenceRegex.ReplaceAllString(sql, ""))
}

type Rejection struct {
	Pair types.QueryPair
	SQL  string
	Err  error
}

type Report struct {
	Accepted []types.TrainingRecord
	Rejected []Rejection
}

// PairValidator turns candidate pairs into training records.
type PairValidator interface {
	Validate(ctx context.Context, pairs []types.QueryPair) (*Report, error)
}

// Validator executes each candidate against the live database. A candidate
// is accepted only if the engine runs it without error.
type Validator struct {
	connect database.Connector
	summary string
	logger  zerolog.Logger
}

func NewValidator(connect database.Connector, summary string, logger zerolog.Logger) *Validator {
	return &Validator{
		connect: connect,
		summary: summary,
		logger:  logger,
	}
}

// Validate opens one connection for the whole batch. Only a failure to
// connect, or a cancelled ctx, is returned as an error; a bad candidate is
// logged and dropped.
func (v *Validator) Validate(ctx context.Context, pairs []types.QueryPair) (*Report, error) {
	report := &Report{}
	if len(pairs) == 0 {
		return report, nil
	}

	adapter, err := v.connect(ctx)
	if err != nil {
		return report, fmt.Errorf("failed to open validation connection: %w", err)
	}
	defer adapter.Close()

	for _, pair := range pairs {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		sql := StripFences(pair.SQL)
		if err := v.check(ctx, adapter, sql); err != nil {
			if ctx.Err() != nil {
				return report, ctx.Err()
			}
			v.logger.Warn().Str("sql", sql).Err(err).Msg("rejected")
			report.Rejected = append(report.Rejected, Rejection{Pair: pair, SQL: sql, Err: err})
			continue
		}

		v.logger.Info().Str("question", truncate(pair.Question, 40)).Msg("valid")
		report.Accepted = append(report.Accepted, types.TrainingRecord{
			Instruction: Instruction,
			Input:       FormatInput(pair.Question, v.summary),
			Output:      sql,
		})
	}

	return report, nil
}

func (v *Validator) check(ctx context.Context, adapter database.DatabaseAdapter, sql string) error {
	stmt, err := SingleStatement(sql)
	if err != nil {
		return err
	}
	return adapter.ProbeQuery(ctx, stmt)
}

// SingleStatement returns the one executable statement in sql, with comments
// and the trailing semicolon removed.
func SingleStatement(sql string) (string, error) {
	stmts := common.ParseSQLStatements(sql)
	switch {
	case len(stmts) == 0:
		return "", ErrEmptySQL
	case len(stmts) > 1:
		return "", ErrMultipleStatements
	}
	return stmts[0], nil
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
