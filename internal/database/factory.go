package database

import (
	"context"
	"fmt"

	"github.com/Rana718/sqlforge/internal/config"
	"github.com/Rana718/sqlforge/internal/database/mysql"
	"github.com/Rana718/sqlforge/internal/database/postgres"
	"github.com/Rana718/sqlforge/internal/database/sqlite"
)

func NewAdapter(provider string) DatabaseAdapter {
	switch provider {
	case "postgresql", "postgres":
		return postgres.New()
	case "mysql":
		return mysql.New()
	default:
		return sqlite.New()
	}
}

// Connector opens a fresh connection each time it is called. Callers own
// the returned adapter and must Close it.
type Connector func(ctx context.Context) (DatabaseAdapter, error)

func NewConnector(cfg *config.Config) Connector {
	return func(ctx context.Context) (DatabaseAdapter, error) {
		return Open(ctx, cfg)
	}
}

func Open(ctx context.Context, cfg *config.Config) (DatabaseAdapter, error) {
	dbURL, err := cfg.GetDatabaseURL()
	if err != nil {
		return nil, fmt.Errorf("failed to get database URL: %w", err)
	}
	return OpenURL(ctx, cfg.Database.Provider, dbURL)
}

func OpenURL(ctx context.Context, provider, url string) (DatabaseAdapter, error) {
	adapter := NewAdapter(provider)
	if err := adapter.Connect(ctx, url); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := adapter.Ping(ctx); err != nil {
		adapter.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return adapter, nil
}
