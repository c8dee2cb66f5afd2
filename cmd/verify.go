package cmd

import (
	"context"
	"fmt"

	"github.com/Rana718/sqlforge/internal/database"
	"github.com/Rana718/sqlforge/internal/dataset"
	"github.com/Rana718/sqlforge/internal/generator"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var verifyOutput string

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Re-execute every stored query",
	Long: `Run the output query of every record in the dataset against the database
and report the lines that no longer execute. Nothing is modified; each query
runs in a transaction that is rolled back.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if verifyOutput != "" {
			cfg.Generator.Output = verifyOutput
		}

		store := dataset.NewStore(cfg.Generator.Output)
		entries, err := store.Records()
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			color.Yellow("⚠️  No records found in %s", store.Path())
			return nil
		}

		ctx := cmd.Context()
		adapter, err := database.Open(ctx, cfg)
		if err != nil {
			return err
		}
		defer adapter.Close()

		color.Cyan("🔍 Verifying %d records from %s", len(entries), store.Path())

		failures, err := verifyEntries(ctx, adapter, entries)
		if err != nil {
			return err
		}
		for _, f := range failures {
			color.Red("❌ Line %d: %v", f.Line, f.Err)
		}

		if failed := len(failures); failed > 0 {
			return fmt.Errorf("%d of %d records failed verification", failed, len(entries))
		}

		color.Green("✅ All %d records execute successfully", len(entries))
		return nil
	},
}

// verifyEntries probes every record's output query and returns the lines
// that fail, including lines that could not be decoded.
func verifyEntries(ctx context.Context, adapter database.DatabaseAdapter, entries []dataset.Entry) ([]dataset.Entry, error) {
	var failures []dataset.Entry
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return failures, err
		}

		if entry.Err == nil {
			var stmt string
			if stmt, entry.Err = generator.SingleStatement(entry.Record.Output); entry.Err == nil {
				entry.Err = adapter.ProbeQuery(ctx, stmt)
			}
		}
		if entry.Err != nil {
			failures = append(failures, entry)
		}
	}
	return failures, nil
}

func init() {
	rootCmd.AddCommand(verifyCmd)

	verifyCmd.Flags().StringVarP(&verifyOutput, "output", "o", "", "Dataset file to verify (default from config)")
}
