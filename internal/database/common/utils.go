package common

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Rana718/sqlforge/internal/types"
)

var validIdentifier = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

type QueryResult struct {
	Columns []string
	Rows    []map[string]interface{}
}

// ValidateIdentifier guards table and column names that end up inside
// PRAGMA or DDL text, where placeholders are not allowed.
func ValidateIdentifier(name string) error {
	if !validIdentifier.MatchString(name) {
		return fmt.Errorf("invalid identifier: %q", name)
	}
	return nil
}

// ParseSQLStatements splits a script on semicolons. Quoted text is kept as
// is; "--" line comments and /* */ block comments are dropped.
func ParseSQLStatements(sql string) []string {
	statements := make([]string, 0, strings.Count(sql, ";")+1)

	var current strings.Builder
	current.Grow(len(sql))

	flush := func() {
		if stmt := strings.TrimSpace(current.String()); stmt != "" {
			statements = append(statements, stmt)
		}
		current.Reset()
	}

	var quote byte
	for i := 0; i < len(sql); i++ {
		c := sql[i]

		if quote != 0 {
			current.WriteByte(c)
			if c == quote {
				quote = 0
			}
			continue
		}

		switch {
		case c == '\'' || c == '"' || c == '`':
			quote = c
			current.WriteByte(c)
		case c == '-' && i+1 < len(sql) && sql[i+1] == '-':
			for i < len(sql) && sql[i] != '\n' {
				i++
			}
			current.WriteByte('\n')
		case c == '/' && i+1 < len(sql) && sql[i+1] == '*':
			end := strings.Index(sql[i+2:], "*/")
			if end < 0 {
				i = len(sql)
			} else {
				i += end + 3
			}
			current.WriteByte(' ')
		case c == ';':
			flush()
		default:
			current.WriteByte(c)
		}
	}
	flush()

	return statements
}

// RenderCreateTable builds a CREATE TABLE statement. columnDef renders the
// dialect specific "<type> [PRIMARY KEY ...]" part of each column, and quote
// renders identifiers.
func RenderCreateTable(table types.SchemaTable, quote func(string) string, columnDef func(types.SchemaColumn) string) string {
	var lines []string

	for _, col := range table.Columns {
		line := fmt.Sprintf("    %s %s", quote(col.Name), columnDef(col))
		if !col.Nullable && !col.IsPrimary {
			line += " NOT NULL"
		}
		if len(col.CheckValues) > 0 {
			values := make([]string, len(col.CheckValues))
			for i, v := range col.CheckValues {
				values[i] = "'" + strings.ReplaceAll(v, "'", "''") + "'"
			}
			line += fmt.Sprintf(" CHECK(%s IN (%s))", quote(col.Name), strings.Join(values, ", "))
		}
		lines = append(lines, line)
	}

	for _, col := range table.Columns {
		if col.ForeignKeyTable == "" {
			continue
		}
		lines = append(lines, fmt.Sprintf("    FOREIGN KEY (%s) REFERENCES %s(%s)",
			quote(col.Name), quote(col.ForeignKeyTable), quote(col.ForeignKeyColumn)))
	}

	return fmt.Sprintf("CREATE TABLE %s (\n%s\n)", quote(table.Name), strings.Join(lines, ",\n"))
}
