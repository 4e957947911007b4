package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"sentinelops/internal/config"
	"sentinelops/internal/logging"
)

var (
	cfg    config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "sentinelops",
	Short: "SentinelOps incident tracker",
	Long: `SentinelOps records incidents, lists the infrastructure inventory and
explains incidents with Gemini when GEMINI_API_KEY is set.

Run without a subcommand to start the HTTP service.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		logger, err = logging.New(cfg.LogLevel)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	cfg = config.Load()

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfg.HTTPAddr, "addr", cfg.HTTPAddr, "HTTP listen address")
	flags.StringVar(&cfg.DataPath, "data", cfg.DataPath, "incident data file")
	flags.StringVar(&cfg.DBDSN, "db-dsn", cfg.DBDSN, "Postgres DSN; stores incidents in the database instead of the data file")
	flags.StringVar(&cfg.InventoryPath, "inventory", cfg.InventoryPath, "YAML inventory file (built-in mock when empty)")
	flags.StringVar(&cfg.FrontendDir, "frontend", cfg.FrontendDir, "static front-end directory served at /")
	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")
	flags.StringVar(&cfg.GeminiModel, "model", cfg.GeminiModel, "Gemini model used for explanations")

	rootCmd.AddCommand(serveCmd, incidentsCmd, inventoryCmd)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
