// =============================================================================
// ORAE Bridge - Layout Command
// =============================================================================
//
// COMMAND USAGE:
//   orae-bridge layout <output.xlsx>
//
// Writes the active field length layout as an XLSX workbook. With no
// layout_template configured this is the built-in layout, which makes the
// output a starting point for a custom template.
//
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ginjaninja78/orae-rims-bridge/internal/xlsxparser"
)

var layoutCmd = &cobra.Command{
	Use:   "layout <output.xlsx>",
	Short: "Write the active field length layout as an XLSX template",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runLayout(args[0])
	},
}

func init() {
	rootCmd.AddCommand(layoutCmd)
}

func runLayout(path string) error {
	cfg, err := loadConfig(false)
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	layout, err := loadLayout(cfg, logger)
	if err != nil {
		return err
	}

	if err := xlsxparser.WriteLayout(path, layout); err != nil {
		return fmt.Errorf("failed to write layout template: %w", err)
	}
	logger.Info("wrote layout template", zap.String("path", path))
	return nil
}
