package schema

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/Rana718/sqlforge/internal/types"
	"gopkg.in/yaml.v3"
)

type Format string

const (
	FormatText Format = "text"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// Reader is the part of a database adapter the summarizer needs.
type Reader interface {
	GetCurrentSchema(ctx context.Context) ([]types.SchemaTable, error)
}

// Load reads the live catalog, with tables sorted by name.
func Load(ctx context.Context, db Reader) ([]types.SchemaTable, error) {
	tables, err := db.GetCurrentSchema(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema: %w", err)
	}

	sort.SliceStable(tables, func(i, j int) bool {
		return tables[i].Name < tables[j].Name
	})
	return tables, nil
}

// Summarize renders the catalog in the compact form embedded in prompts and
// training records.
func Summarize(ctx context.Context, db Reader) (string, error) {
	tables, err := Load(ctx, db)
	if err != nil {
		return "", err
	}
	return Text(tables), nil
}

// Text renders one block per table:
//
//	Table: customers
//	Columns: customer_id (INTEGER), name (TEXT)
func Text(tables []types.SchemaTable) string {
	var sb strings.Builder
	for _, table := range tables {
		cols := make([]string, len(table.Columns))
		for i, col := range table.Columns {
			cols[i] = fmt.Sprintf("%s (%s)", col.Name, col.Type)
		}
		fmt.Fprintf(&sb, "Table: %s\nColumns: %s\n\n", table.Name, strings.Join(cols, ", "))
	}
	return sb.String()
}

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatText, FormatYAML, FormatJSON:
		return f, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported schema format: %s (use text, yaml or json)", s)
	}
}

func Encode(w io.Writer, tables []types.SchemaTable, format Format) error {
	switch format {
	case FormatText, "":
		_, err := io.WriteString(w, Text(tables))
		return err
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(map[string][]types.SchemaTable{"tables": tables}); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string][]types.SchemaTable{"tables": tables})
	default:
		return fmt.Errorf("unsupported schema format: %s", format)
	}
}
