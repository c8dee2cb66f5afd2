package cmd

import (
	"os"

	"github.com/Rana718/sqlforge/internal/database"
	"github.com/Rana718/sqlforge/internal/schema"
	"github.com/spf13/cobra"
)

var schemaFormat string

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the live database schema",
	Long: `Print the schema read from the database catalog. The text format is the
exact summary embedded in generation prompts and training records.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := schema.ParseFormat(schemaFormat)
		if err != nil {
			return err
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		adapter, err := database.Open(ctx, cfg)
		if err != nil {
			return err
		}
		defer adapter.Close()

		tables, err := schema.Load(ctx, adapter)
		if err != nil {
			return err
		}
		return schema.Encode(os.Stdout, tables, format)
	},
}

func init() {
	rootCmd.AddCommand(schemaCmd)

	schemaCmd.Flags().StringVarP(&schemaFormat, "format", "f", "text", "Output format: text, yaml or json")
}
