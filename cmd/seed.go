package cmd

import (
	"fmt"

	"github.com/Rana718/sqlforge/internal/database"
	"github.com/Rana718/sqlforge/internal/seeder"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	seedCustomers int
	seedRandom    int64
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create and populate the CRM database",
	Long: `Drop and recreate the customers, subscriptions and support_tickets tables,
then fill them with synthetic data: one subscription per customer and up to
three support tickets each. Any existing rows in these tables are lost.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		if cmd.Flags().Changed("customers") {
			cfg.Seed.Customers = seedCustomers
		}
		if cmd.Flags().Changed("random-seed") {
			cfg.Seed.RandomSeed = seedRandom
		}

		ctx := cmd.Context()
		adapter, err := database.Open(ctx, cfg)
		if err != nil {
			return err
		}
		defer adapter.Close()

		color.Cyan("🗄️  Database: %s", adapter.Name())

		s := seeder.NewSeeder(adapter, seeder.SeedConfig{
			Customers:  cfg.Seed.Customers,
			RandomSeed: cfg.Seed.RandomSeed,
		})
		if _, err := s.Seed(ctx); err != nil {
			return fmt.Errorf("seeding failed: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)

	seedCmd.Flags().IntVarP(&seedCustomers, "customers", "n", 100, "Number of customers to create")
	seedCmd.Flags().Int64Var(&seedRandom, "random-seed", 0, "Seed for the data generator (0 = time based)")
}
