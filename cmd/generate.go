package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Rana718/sqlforge/internal/config"
	"github.com/Rana718/sqlforge/internal/database"
	"github.com/Rana718/sqlforge/internal/dataset"
	"github.com/Rana718/sqlforge/internal/generator"
	"github.com/Rana718/sqlforge/internal/metrics"
	"github.com/Rana718/sqlforge/internal/schema"
	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate validated question/SQL pairs",
	Long: `Ask the configured model for batches of natural language questions with
SQL answers, execute every query against the database, and append the ones
that run to the output file.

The run resumes from the number of lines already in the output file and
continues until the target is reached. Press Ctrl+C to stop; everything
written so far is kept.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if err := applyGenerateFlags(cmd, cfg); err != nil {
			return err
		}
		return runGenerate(cmd.Context(), cfg)
	},
}

func applyGenerateFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	g := &cfg.Generator

	if flags.Changed("provider") {
		provider, _ := flags.GetString("provider")
		// provider specific defaults must follow the new provider
		*g = config.Generator{
			Provider:     provider,
			BatchSize:    g.BatchSize,
			Target:       g.Target,
			Output:       g.Output,
			EmptyDelay:   g.EmptyDelay,
			FailureDelay: g.FailureDelay,
			BatchDelay:   g.BatchDelay,
			Timeout:      g.Timeout,
			MaxRetries:   g.MaxRetries,
		}
	}
	if flags.Changed("model") {
		g.Model, _ = flags.GetString("model")
	}
	if flags.Changed("target") {
		g.Target, _ = flags.GetInt("target")
	}
	if flags.Changed("batch-size") {
		g.BatchSize, _ = flags.GetInt("batch-size")
	}
	if flags.Changed("output") {
		g.Output, _ = flags.GetString("output")
	}

	cfg.ApplyDefaults()
	return cfg.Validate()
}

func runGenerate(ctx context.Context, cfg *config.Config) error {
	runID := uuid.NewString()
	logger := log.With().Str("run_id", runID).Logger()

	adapter, err := database.Open(ctx, cfg)
	if err != nil {
		return err
	}
	summary, err := schema.Summarize(ctx, adapter)
	adapter.Close()
	if err != nil {
		return err
	}
	if strings.TrimSpace(summary) == "" {
		return fmt.Errorf("database has no tables, run 'sqlforge seed' first")
	}

	p, err := generator.NewProvider(cfg)
	if err != nil {
		return err
	}

	g := cfg.Generator
	batcher, err := generator.NewBatchGenerator(p, g.Model, summary, g.BatchSize)
	if err != nil {
		return err
	}

	validator := generator.NewValidator(database.NewConnector(cfg), summary, logger)
	store := dataset.NewStore(g.Output)

	runner := generator.NewRunner(batcher, validator, store, generator.RunnerOptions{
		Target: g.Target,
		Delays: generator.Delays{
			Empty:   g.EmptyDelay,
			Failure: g.FailureDelay,
			Batch:   g.BatchDelay,
		},
		Metrics:     metrics.NewRecorder(runID),
		MetricsFile: cfg.MetricsFile,
		Logger:      logger,
	})

	color.Cyan("🤖 Provider: %s (%s), batch size %d, target %d", p.Name(), g.Model, g.BatchSize, g.Target)
	logger.Debug().Str("output", g.Output).Msg("generation started")

	result, err := runner.Run(ctx)
	if errors.Is(err, context.Canceled) {
		color.Yellow("\n⏹️  Stopped. %d/%d examples in %s", result.Total, g.Target, store.Path())
		return nil
	}
	if err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}

	logger.Info().
		Int("written", result.Written).
		Int("rejected", result.Rejected).
		Int("batches", result.Batches).
		Int("empty_batches", result.EmptyBatches).
		Int("failed_batches", result.FailedBatches).
		Msg("generation finished")
	return nil
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().String("provider", "", "Model provider: gemini, openai or anthropic")
	generateCmd.Flags().String("model", "", "Model name (defaults per provider)")
	generateCmd.Flags().Int("target", 0, "Stop once the dataset holds this many records")
	generateCmd.Flags().Int("batch-size", 0, "Pairs requested per model call")
	generateCmd.Flags().StringP("output", "o", "", "Output JSONL file")
}
