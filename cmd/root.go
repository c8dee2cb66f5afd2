package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	Version = "0.3.0"
)

func showBanner() {
	greenColor := color.New(color.FgGreen, color.Bold)

	banner := []string{
		"╔════════════════════════════════════════════════╗",
		"║    ___  ___  _     ___                        ║",
		"║   / __|/ _ \\| |   | __|__  _ _  __ _  ___     ║",
		"║   \\__ \\ (_) | |__ | _/ _ \\| '_|/ _` |/ -_)    ║",
		"║   |___/\\__\\_\\____||_|\\___/|_|  \\__, |\\___|    ║",
		"║                                 |___/         ║",
		"║      🧪 Validated text-to-SQL datasets 🧪     ║",
		"╚════════════════════════════════════════════════╝",
	}

	for _, line := range banner {
		greenColor.Println(line)
	}

	fmt.Print("              ")
	color.New(color.FgCyan, color.Bold).Print("Version: ")
	color.New(color.FgYellow, color.Bold).Printf("%s\n", Version)
}

var rootCmd = &cobra.Command{
	Use:   "sqlforge",
	Short: "Generate execution-validated text-to-SQL training data",
	Long: `
sqlforge seeds a SaaS CRM database with synthetic customers, subscriptions and
support tickets, then asks a language model for question/SQL pairs about it.
Only pairs whose SQL actually runs against the database are kept, appended to a
JSON Lines file ready for fine-tuning.

Workflow:
  sqlforge seed       # build saas_crm.db
  sqlforge generate   # fill train_dataset.jsonl (resumable)
  sqlforge verify     # re-run every stored query

Model providers:
- Gemini (default, GEMINI_API_KEY)
- OpenAI (OPENAI_API_KEY)
- Anthropic (ANTHROPIC_API_KEY)`,

	SilenceUsage:  true,
	SilenceErrors: true,

	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		initLogging()
	},

	Run: func(cmd *cobra.Command, args []string) {
		showVersion, _ := cmd.Flags().GetBool("version")
		if showVersion {
			fmt.Printf("sqlforge version %s\n", Version)
			return
		}

		showBanner()
		fmt.Println()
		cmd.Help()
	},
}

// Execute runs the CLI. SIGINT and SIGTERM cancel the command's context so
// long runs stop between steps instead of mid-write.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return rootCmd.ExecuteContext(ctx)
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./sqlforge.config.json)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error, disabled)")
	viper.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level"))

	rootCmd.Flags().BoolP("version", "v", false, "Show CLI version")
}

func initConfig() {
	if err := godotenv.Load(); err != nil {
		godotenv.Load(".env")
		godotenv.Load(".env.local")
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("json")
		viper.SetConfigName("sqlforge.config")
	}

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil && cfgFile != "" {
		color.Yellow("⚠️  Could not read config file %s: %v", cfgFile, err)
	}
}

func initLogging() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	switch viper.GetString("log-level") {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	case "disabled":
		zerolog.SetGlobalLevel(zerolog.Disabled)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
}
