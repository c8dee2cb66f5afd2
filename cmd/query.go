package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Rana718/sqlforge/internal/database"
	"github.com/Rana718/sqlforge/internal/dataset"
	"github.com/Rana718/sqlforge/internal/generator"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	queryLine   int
	queryOutput string
)

var queryCmd = &cobra.Command{
	Use:   "query [sql]",
	Short: "Run a query and print its rows",
	Long: `
Run one SQL statement against the database and print the result as a table.
With --line, the output query of that dataset line is run instead.

Examples:
  sqlforge query "SELECT industry, COUNT(*) FROM customers GROUP BY industry"
  sqlforge query --line 42`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		if queryOutput != "" {
			cfg.Generator.Output = queryOutput
		}

		var raw string
		switch {
		case queryLine > 0:
			raw, err = datasetQuery(dataset.NewStore(cfg.Generator.Output), queryLine)
			if err != nil {
				return err
			}
		case len(args) == 1:
			raw = args[0]
		default:
			return fmt.Errorf("pass a query or --line")
		}

		stmt, err := generator.SingleStatement(generator.StripFences(raw))
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		adapter, err := database.Open(ctx, cfg)
		if err != nil {
			return err
		}
		defer adapter.Close()

		color.Cyan("⚡ %s", stmt)
		result, err := adapter.ExecuteQuery(ctx, stmt)
		if err != nil {
			return err
		}

		if len(result.Rows) == 0 {
			color.Yellow("📊 No rows returned")
			return nil
		}
		color.Green("📊 %d row(s) returned\n", len(result.Rows))
		displayResultsTable(os.Stdout, result.Columns, result.Rows)
		return nil
	},
}

// datasetQuery returns the output query stored on the given 1-based line.
func datasetQuery(store *dataset.Store, line int) (string, error) {
	entries, err := store.Records()
	if err != nil {
		return "", err
	}
	if line > len(entries) {
		return "", fmt.Errorf("%s has %d lines, no line %d", store.Path(), len(entries), line)
	}
	entry := entries[line-1]
	if entry.Err != nil {
		return "", fmt.Errorf("line %d: %w", line, entry.Err)
	}
	return entry.Record.Output, nil
}

func displayResultsTable(w io.Writer, columns []string, rows []map[string]interface{}) {
	widths := make([]int, len(columns))
	for i, col := range columns {
		widths[i] = len(col)
	}
	for _, row := range rows {
		for i, col := range columns {
			if n := len(formatValue(row[col])); n > widths[i] {
				widths[i] = n
			}
		}
	}

	border := func(left, mid, right string) {
		parts := make([]string, len(widths))
		for i, width := range widths {
			parts[i] = strings.Repeat("─", width+2)
		}
		fmt.Fprintln(w, left+strings.Join(parts, mid)+right)
	}
	line := func(values []string) {
		fmt.Fprint(w, "│")
		for i, v := range values {
			fmt.Fprintf(w, " %-*s │", widths[i], v)
		}
		fmt.Fprintln(w)
	}

	border("┌", "┬", "┐")
	line(columns)
	border("├", "┼", "┤")
	for _, row := range rows {
		values := make([]string, len(columns))
		for i, col := range columns {
			values[i] = formatValue(row[col])
		}
		line(values)
	}
	border("└", "┴", "┘")
}

func formatValue(val interface{}) string {
	if val == nil {
		return "NULL"
	}
	return fmt.Sprintf("%v", val)
}

func init() {
	queryCmd.Flags().IntVarP(&queryLine, "line", "l", 0, "Run the output query of this dataset line")
	queryCmd.Flags().StringVarP(&queryOutput, "output", "o", "", "Dataset file to read --line from (default from config)")
	rootCmd.AddCommand(queryCmd)
}
