package types

type SchemaTable struct {
	Name    string         `json:"name" yaml:"name"`
	Columns []SchemaColumn `json:"columns" yaml:"columns"`
}

type SchemaColumn struct {
	Name             string   `json:"name" yaml:"name"`
	Type             string   `json:"type" yaml:"type"`
	Nullable         bool     `json:"nullable" yaml:"nullable"`
	IsPrimary        bool     `json:"is_primary,omitempty" yaml:"is_primary,omitempty"`
	IsAutoIncrement  bool     `json:"is_auto_increment,omitempty" yaml:"is_auto_increment,omitempty"`
	CheckValues      []string `json:"check_values,omitempty" yaml:"check_values,omitempty"` // CHECK(col IN (...))
	ForeignKeyTable  string   `json:"foreign_key_table,omitempty" yaml:"foreign_key_table,omitempty"`
	ForeignKeyColumn string   `json:"foreign_key_column,omitempty" yaml:"foreign_key_column,omitempty"`
}

// Dependencies returns the tables this table references, excluding itself.
func (t SchemaTable) Dependencies() []string {
	var deps []string
	seen := make(map[string]bool)
	for _, col := range t.Columns {
		if col.ForeignKeyTable == "" || col.ForeignKeyTable == t.Name || seen[col.ForeignKeyTable] {
			continue
		}
		seen[col.ForeignKeyTable] = true
		deps = append(deps, col.ForeignKeyTable)
	}
	return deps
}

// QueryPair is one candidate returned by the model.
type QueryPair struct {
	Question string `json:"question" jsonschema:"description=A business question in plain English"`
	SQL      string `json:"sql" jsonschema:"description=A single SQLite query answering the question"`
}

// PairBatch is the structured response envelope requested from the model.
type PairBatch struct {
	Pairs []QueryPair `json:"pairs"`
}

// TrainingRecord is one line of the output dataset.
type TrainingRecord struct {
	Instruction string `json:"instruction"`
	Input       string `json:"input"`
	Output      string `json:"output"`
}
