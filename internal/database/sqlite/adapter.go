package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/Rana718/sqlforge/internal/database/common"
	"github.com/Rana718/sqlforge/internal/types"
	_ "github.com/mattn/go-sqlite3"
)

type Adapter struct {
	common.Base
	path string
}

func New() *Adapter {
	return &Adapter{
		Base: common.Base{
			QB: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
		},
	}
}

func (s *Adapter) Name() string {
	return "sqlite"
}

// Path returns the database file without the sqlite:// scheme or query string.
func (s *Adapter) Path() string {
	return s.path
}

func (s *Adapter) Connect(ctx context.Context, url string) error {
	dbPath := strings.TrimPrefix(url, "sqlite://")
	s.path = dbPath
	if idx := strings.Index(s.path, "?"); idx > 0 {
		s.path = s.path[:idx]
	}
	if !strings.Contains(dbPath, "?") {
		dbPath += "?_busy_timeout=5000"
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return fmt.Errorf("failed to open SQLite connection: %w", err)
	}

	// One writer at a time keeps the seeding transaction and probes from
	// tripping over SQLITE_BUSY.
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(5 * time.Minute)

	s.DB = db
	return nil
}

func (s *Adapter) DropTable(ctx context.Context, tableName string) error {
	if err := common.ValidateIdentifier(tableName); err != nil {
		return err
	}
	_, err := s.DB.ExecContext(ctx, fmt.Sprintf("DROP TABLE IF EXISTS %s", tableName))
	return err
}

func (s *Adapter) GenerateCreateTableSQL(table types.SchemaTable) string {
	return common.RenderCreateTable(table, quoteIdent, func(col types.SchemaColumn) string {
		if col.IsPrimary {
			return col.Type + " PRIMARY KEY"
		}
		return col.Type
	})
}

func quoteIdent(name string) string {
	return name
}
