package cmd

import (
	"fmt"
	"os"

	"report-compare/core/config"
	"report-compare/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	configDir string
	verbose   bool
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "report-compare",
	Short: "Tabular dataset reconciliation",
	Long: `report-compare reconciles two tabular datasets (CSV, spreadsheet or database table)
sharing a key column. It reports extra columns, duplicate keys, records missing from
either side and cell-level mismatches, and renders the findings as an xlsx workbook.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	RootCmd.PersistentFlags().StringVar(&configDir, "config-dir", ".", "Directory holding .env and config.yaml")
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log every comparison step")
}

// loadConfig reads the configuration from --config-dir, applying --verbose.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if verbose {
		cfg.Log.Level = "debug"
	}
	return cfg, nil
}

// loadConfigAndLogger is loadConfig plus the logger it describes.
func loadConfigAndLogger() (*config.Config, *zap.Logger, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return cfg, l, nil
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		l, logErr := logger.New(&logger.Config{Level: "debug", Format: "console"})
		if logErr != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		l.Error("command failed", zap.Error(err))
		_ = l.Sync()
		os.Exit(1)
	}
}
