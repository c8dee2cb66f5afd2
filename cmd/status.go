package cmd

import (
	"fmt"

	"github.com/Rana718/sqlforge/internal/database"
	"github.com/Rana718/sqlforge/internal/dataset"
	"github.com/Rana718/sqlforge/internal/seeder"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show dataset progress and database contents",
	Long: `Show how many records the dataset holds against the configured target,
and the row count of each seeded table.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		store := dataset.NewStore(cfg.Generator.Output)
		count, err := store.Count()
		if err != nil {
			return err
		}

		target := cfg.Generator.Target
		percent := float64(count) / float64(target) * 100
		if percent > 100 {
			percent = 100
		}

		color.Cyan("📄 Dataset: %s", store.Path())
		fmt.Printf("   Records: %d/%d (%.1f%%)\n", count, target, percent)
		if count >= target {
			color.Green("   ✅ Target reached")
		} else {
			color.Yellow("   ⏳ %d remaining", target-count)
		}
		fmt.Println()

		ctx := cmd.Context()
		adapter, err := database.Open(ctx, cfg)
		if err != nil {
			return err
		}
		defer adapter.Close()

		existing, err := adapter.GetAllTableNames(ctx)
		if err != nil {
			return err
		}
		present := make(map[string]bool, len(existing))
		for _, name := range existing {
			present[name] = true
		}

		color.Cyan("🗄️  Database: %s", adapter.Name())
		for _, table := range seeder.Tables() {
			if !present[table.Name] {
				color.Red("   %-16s missing (run 'sqlforge seed')", table.Name)
				continue
			}
			rows, err := adapter.CountRows(ctx, table.Name)
			if err != nil {
				return err
			}
			fmt.Printf("   %-16s %d rows\n", table.Name, rows)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
