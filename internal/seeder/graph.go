package seeder

import (
	"fmt"
	"sort"

	"github.com/Rana718/sqlforge/internal/types"
)

type DependencyGraph struct {
	tables map[string]types.SchemaTable
	order  []string
}

func NewDependencyGraph() *DependencyGraph {
	return &DependencyGraph{
		tables: make(map[string]types.SchemaTable),
	}
}

func (g *DependencyGraph) AddTable(table types.SchemaTable) {
	g.tables[table.Name] = table
}

// BuildInsertionOrder returns parents before children. Independent tables
// are visited alphabetically so the order is stable between runs.
func (g *DependencyGraph) BuildInsertionOrder() ([]string, error) {
	visited := make(map[string]bool)
	temp := make(map[string]bool)
	var order []string

	var visit func(string) error
	visit = func(tableName string) error {
		if temp[tableName] {
			return fmt.Errorf("circular dependency detected involving table: %s", tableName)
		}
		if visited[tableName] {
			return nil
		}

		temp[tableName] = true
		if table, ok := g.tables[tableName]; ok {
			deps := table.Dependencies()
			sort.Strings(deps)
			for _, dep := range deps {
				if _, known := g.tables[dep]; !known {
					return fmt.Errorf("table %s references unknown table %s", tableName, dep)
				}
				if err := visit(dep); err != nil {
					return err
				}
			}
		}

		temp[tableName] = false
		visited[tableName] = true
		order = append(order, tableName)
		return nil
	}

	names := make([]string, 0, len(g.tables))
	for name := range g.tables {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := visit(name); err != nil {
			return nil, err
		}
	}

	g.order = order
	return order, nil
}

// DropOrder is the insertion order reversed.
func (g *DependencyGraph) DropOrder() []string {
	drop := make([]string, len(g.order))
	for i, name := range g.order {
		drop[len(g.order)-1-i] = name
	}
	return drop
}
