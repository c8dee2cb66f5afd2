package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/Rana718/sqlforge/internal/database/common"
	"github.com/Rana718/sqlforge/internal/types"
	driver "github.com/go-sql-driver/mysql"
)

type Adapter struct {
	common.Base
}

func New() *Adapter {
	return &Adapter{
		Base: common.Base{
			QB: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
			// DDL still commits implicitly; READ ONLY at least blocks DML.
			ProbeTxOptions: &sql.TxOptions{ReadOnly: true},
		},
	}
}

func (m *Adapter) Name() string {
	return "mysql"
}

func (m *Adapter) Connect(ctx context.Context, rawURL string) error {
	dsn, err := ToDSN(rawURL)
	if err != nil {
		return err
	}

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return fmt.Errorf("failed to open MySQL connection: %w", err)
	}
	db.SetMaxOpenConns(2)
	db.SetConnMaxLifetime(15 * time.Minute)
	db.SetConnMaxIdleTime(3 * time.Minute)

	m.DB = db
	return nil
}

// ToDSN accepts either a native driver DSN or a mysql:// URL.
func ToDSN(rawURL string) (string, error) {
	if !strings.HasPrefix(rawURL, "mysql://") {
		cfg, err := driver.ParseDSN(rawURL)
		if err != nil {
			return "", fmt.Errorf("failed to parse MySQL DSN: %w", err)
		}
		return cfg.FormatDSN(), nil
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("failed to parse MySQL URL: %w", err)
	}

	cfg := driver.NewConfig()
	cfg.Net = "tcp"
	cfg.Addr = u.Host
	cfg.DBName = strings.TrimPrefix(u.Path, "/")
	if u.User != nil {
		cfg.User = u.User.Username()
		cfg.Passwd, _ = u.User.Password()
	}

	params := u.Query()
	switch params.Get("sslmode") {
	case "require":
		cfg.TLSConfig = "skip-verify"
	case "verify-ca", "verify-full":
		cfg.TLSConfig = "true"
	}
	params.Del("sslmode")
	if len(params) > 0 {
		cfg.Params = make(map[string]string, len(params))
		for k := range params {
			cfg.Params[k] = params.Get(k)
		}
	}

	return cfg.FormatDSN(), nil
}

func (m *Adapter) DropTable(ctx context.Context, tableName string) error {
	_, err := m.DB.ExecContext(ctx, fmt.Sprintf("DROP TABLE IF EXISTS %s", quoteIdent(tableName)))
	return err
}

func (m *Adapter) GenerateCreateTableSQL(table types.SchemaTable) string {
	return common.RenderCreateTable(table, quoteIdent, func(col types.SchemaColumn) string {
		switch {
		case col.IsPrimary && col.IsAutoIncrement:
			return "INT AUTO_INCREMENT PRIMARY KEY"
		case col.IsPrimary:
			return col.Type + " PRIMARY KEY"
		}
		return col.Type
	})
}

func quoteIdent(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}
