package common

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
)

// Base holds the *sql.DB plumbing shared by every dialect adapter.
type Base struct {
	DB *sql.DB
	QB squirrel.StatementBuilderType

	// ProbeTxOptions is used for the rolled back transaction around ProbeQuery.
	ProbeTxOptions *sql.TxOptions
}

func (b *Base) Close() error {
	if b.DB != nil {
		return b.DB.Close()
	}
	return nil
}

func (b *Base) Ping(ctx context.Context) error {
	return b.DB.PingContext(ctx)
}

func (b *Base) Builder() squirrel.StatementBuilderType {
	return b.QB
}

func (b *Base) BeginTx(ctx context.Context) (*sql.Tx, error) {
	return b.DB.BeginTx(ctx, nil)
}

func (b *Base) ExecuteQuery(ctx context.Context, query string) (*QueryResult, error) {
	rows, err := b.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to get columns: %w", err)
	}

	var results []map[string]interface{}
	for rows.Next() {
		values := make([]interface{}, len(columns))
		valuePtrs := make([]interface{}, len(columns))
		for i := range columns {
			valuePtrs[i] = &values[i]
		}

		if err := rows.Scan(valuePtrs...); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}

		row := make(map[string]interface{})
		for i, col := range columns {
			if b, ok := values[i].([]byte); ok {
				row[col] = string(b)
			} else {
				row[col] = values[i]
			}
		}
		results = append(results, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return &QueryResult{
		Columns: columns,
		Rows:    results,
	}, nil
}

// ExecuteMigration runs every statement of a script inside one transaction.
func (b *Base) ExecuteMigration(ctx context.Context, migrationSQL string) error {
	tx, err := b.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range ParseSQLStatements(migrationSQL) {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to execute statement '%s': %w", stmt, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// ProbeQuery executes a query and reads every row, inside a transaction that
// is always rolled back. The returned error is the driver's own error so
// callers can report it verbatim.
func (b *Base) ProbeQuery(ctx context.Context, query string) error {
	tx, err := b.DB.BeginTx(ctx, b.ProbeTxOptions)
	if err != nil {
		return fmt.Errorf("failed to begin probe transaction: %w", err)
	}
	defer tx.Rollback()

	rows, err := tx.QueryContext(ctx, query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
	}
	return rows.Err()
}

func (b *Base) CountRows(ctx context.Context, tableName string) (int64, error) {
	if err := ValidateIdentifier(tableName); err != nil {
		return 0, err
	}

	query, args, err := b.QB.Select("COUNT(*)").From(tableName).ToSql()
	if err != nil {
		return 0, err
	}

	var count int64
	if err := b.DB.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count rows in %s: %w", tableName, err)
	}
	return count, nil
}

// InsertReturningID runs the insert inside tx and returns the driver's
// LastInsertId.
func (b *Base) InsertReturningID(ctx context.Context, tx *sql.Tx, insert squirrel.InsertBuilder, pkColumn string) (int64, error) {
	query, args, err := insert.ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build insert: %w", err)
	}

	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}
