package database

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"
	"github.com/Rana718/sqlforge/internal/database/common"
	"github.com/Rana718/sqlforge/internal/types"
)

type DatabaseAdapter interface {
	Name() string
	Connect(ctx context.Context, url string) error
	Close() error
	Ping(ctx context.Context) error

	// Schema operations
	GetCurrentSchema(ctx context.Context) ([]types.SchemaTable, error)
	GetTableColumns(ctx context.Context, tableName string) ([]types.SchemaColumn, error)
	GetAllTableNames(ctx context.Context) ([]string, error)
	CountRows(ctx context.Context, tableName string) (int64, error)

	// Statement execution
	ExecuteQuery(ctx context.Context, query string) (*common.QueryResult, error)
	ExecuteMigration(ctx context.Context, migrationSQL string) error
	ProbeQuery(ctx context.Context, query string) error

	// DDL and seeding
	DropTable(ctx context.Context, tableName string) error
	GenerateCreateTableSQL(table types.SchemaTable) string
	Builder() squirrel.StatementBuilderType
	BeginTx(ctx context.Context) (*sql.Tx, error)
	InsertReturningID(ctx context.Context, tx *sql.Tx, insert squirrel.InsertBuilder, pkColumn string) (int64, error)
}
