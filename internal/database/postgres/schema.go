package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/Rana718/sqlforge/internal/types"
)

func (p *Adapter) GetAllTableNames(ctx context.Context) ([]string, error) {
	query, args, err := p.QB.Select("table_name").
		From("information_schema.tables").
		Where("table_schema = current_schema()").
		Where(squirrel.Eq{"table_type": "BASE TABLE"}).
		OrderBy("table_name").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := p.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		tables = append(tables, name)
	}
	return tables, rows.Err()
}

func (p *Adapter) GetCurrentSchema(ctx context.Context) ([]types.SchemaTable, error) {
	tableNames, err := p.GetAllTableNames(ctx)
	if err != nil {
		return nil, err
	}

	tables := make([]types.SchemaTable, 0, len(tableNames))
	for _, name := range tableNames {
		columns, err := p.GetTableColumns(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("failed to get columns for table %s: %w", name, err)
		}
		tables = append(tables, types.SchemaTable{Name: name, Columns: columns})
	}
	return tables, nil
}

func (p *Adapter) GetTableColumns(ctx context.Context, tableName string) ([]types.SchemaColumn, error) {
	primary, err := p.primaryKeyColumns(ctx, tableName)
	if err != nil {
		return nil, err
	}

	query, args, err := p.QB.Select("column_name", "data_type", "is_nullable", "COALESCE(column_default, '')").
		From("information_schema.columns").
		Where("table_schema = current_schema()").
		Where(squirrel.Eq{"table_name": tableName}).
		OrderBy("ordinal_position").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := p.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to read columns: %w", err)
	}
	defer rows.Close()

	var columns []types.SchemaColumn
	for rows.Next() {
		var col types.SchemaColumn
		var nullable, def string
		if err := rows.Scan(&col.Name, &col.Type, &nullable, &def); err != nil {
			return nil, err
		}
		col.Type = strings.ToUpper(col.Type)
		col.Nullable = nullable == "YES"
		col.IsPrimary = primary[col.Name]
		col.IsAutoIncrement = strings.HasPrefix(def, "nextval(")
		columns = append(columns, col)
	}
	return columns, rows.Err()
}

func (p *Adapter) primaryKeyColumns(ctx context.Context, tableName string) (map[string]bool, error) {
	query, args, err := p.QB.Select("kcu.column_name").
		From("information_schema.table_constraints tc").
		Join("information_schema.key_column_usage kcu ON tc.constraint_name = kcu.constraint_name AND tc.table_schema = kcu.table_schema").
		Where(squirrel.Eq{"tc.constraint_type": "PRIMARY KEY", "tc.table_name": tableName}).
		Where("tc.table_schema = current_schema()").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := p.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to read primary key: %w", err)
	}
	defer rows.Close()

	primary := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		primary[name] = true
	}
	return primary, rows.Err()
}
