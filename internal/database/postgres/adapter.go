package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/Rana718/sqlforge/internal/database/common"
	"github.com/Rana718/sqlforge/internal/types"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/lib/pq"
)

type Adapter struct {
	common.Base
}

func New() *Adapter {
	return &Adapter{
		Base: common.Base{
			QB: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
		},
	}
}

func (p *Adapter) Name() string {
	return "postgresql"
}

func (p *Adapter) Connect(ctx context.Context, url string) error {
	config, err := pgx.ParseConfig(url)
	if err != nil {
		return fmt.Errorf("failed to parse connection URL: %w", err)
	}

	// Model generated SQL is run once, so skip the prepared statement cache.
	config.DefaultQueryExecMode = pgx.QueryExecModeExec

	db := stdlib.OpenDB(*config)
	db.SetMaxOpenConns(2)
	db.SetConnMaxLifetime(15 * time.Minute)
	db.SetConnMaxIdleTime(3 * time.Minute)

	p.DB = db
	return nil
}

func (p *Adapter) DropTable(ctx context.Context, tableName string) error {
	_, err := p.DB.ExecContext(ctx, fmt.Sprintf("DROP TABLE IF EXISTS %s CASCADE", pq.QuoteIdentifier(tableName)))
	return err
}

func (p *Adapter) GenerateCreateTableSQL(table types.SchemaTable) string {
	return common.RenderCreateTable(table, pq.QuoteIdentifier, func(col types.SchemaColumn) string {
		switch {
		case col.IsPrimary && col.IsAutoIncrement:
			return "SERIAL PRIMARY KEY"
		case col.IsPrimary:
			return col.Type + " PRIMARY KEY"
		}
		return col.Type
	})
}

// InsertReturningID uses RETURNING since pgx does not implement LastInsertId.
func (p *Adapter) InsertReturningID(ctx context.Context, tx *sql.Tx, insert squirrel.InsertBuilder, pkColumn string) (int64, error) {
	query, args, err := insert.Suffix("RETURNING " + pq.QuoteIdentifier(pkColumn)).ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build insert: %w", err)
	}

	var id int64
	if err := tx.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}
