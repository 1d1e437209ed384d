// =============================================================================
// ORAE Bridge - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI and the helpers shared
// by its subcommands.
//
// COBRA CLI STRUCTURE:
//   rootCmd (orae-bridge)
//   ├── serveCmd    (orae-bridge serve)
//   ├── convertCmd  (orae-bridge convert)
//   ├── validateCmd (orae-bridge validate)
//   ├── layoutCmd   (orae-bridge layout)
//   └── versionCmd  (orae-bridge version)
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ginjaninja78/orae-rims-bridge/internal/config"
	"github.com/ginjaninja78/orae-rims-bridge/internal/observability"
	"github.com/ginjaninja78/orae-rims-bridge/internal/rims"
	"github.com/ginjaninja78/orae-rims-bridge/internal/xlsxparser"
	"github.com/ginjaninja78/orae-rims-bridge/pkg/utils"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the configuration file.
var cfgFile string

// verbose forces debug logging.
var verbose bool

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

var rootCmd = &cobra.Command{
	Use:   "orae-bridge",
	Short: "ORAE Bridge - Convert ORAE retail events to RIMS order and tender records",
	Long: `ORAE Bridge converts ORAE retail transaction events into the legacy RIMS
RIMSLF (order line) and RIMTNF (tender line) record layouts.

In serve mode it subscribes to a Pub/Sub subscription, converts each event and
publishes the resulting record set to a topic. In test mode it converts JSON
files from disk.

Example Usage:
  orae-bridge serve --config ./config.yaml
  orae-bridge convert ./events/sale.json
  orae-bridge convert ./events --xlsx
  orae-bridge validate ./events/sale.json
  orae-bridge layout ./layout.xlsx`,
	SilenceUsage: true,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// Execute runs the root command. It is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yaml",
		"Path to the configuration file",
	)
	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable debug logging",
	)
}

// =============================================================================
// SHARED HELPERS
// =============================================================================

// loadConfig loads cfgFile. When the file does not exist and required is
// false, defaults are used so test mode works without a configuration.
func loadConfig(required bool) (*config.Config, error) {
	if !required && !utils.FileExists(cfgFile) {
		return config.Default(), nil
	}
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// newLogger builds the process logger from cfg and the --verbose flag.
func newLogger(cfg *config.Config) (*zap.Logger, error) {
	logger, err := observability.NewLogger(cfg.LogLevel, cfg.EnableDebugLogging || verbose)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return logger, nil
}

// loadLayout returns the configured layout override, or nil for the
// built-in layout.
func loadLayout(cfg *config.Config, logger *zap.Logger) (*rims.Layout, error) {
	if cfg.LayoutTemplate == "" {
		return nil, nil
	}
	layout, err := xlsxparser.ParseLayout(cfg.LayoutTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to load layout template: %w", err)
	}
	logger.Info("loaded layout template",
		zap.String("path", cfg.LayoutTemplate),
		zap.Int("orderFields", len(layout.Order)),
		zap.Int("tenderFields", len(layout.Tender)))
	return layout, nil
}
