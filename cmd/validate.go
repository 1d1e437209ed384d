// =============================================================================
// ORAE Bridge - Validate Command
// =============================================================================
//
// COMMAND USAGE:
//   orae-bridge validate <file>
//
// Runs only the retail event validator and prints every violation. Exits
// non-zero when the event is malformed or invalid.
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/orae-rims-bridge/internal/orae"
	"github.com/ginjaninja78/orae-rims-bridge/internal/validation"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Validate a retail event without converting it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runValidate(args[0])
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	event, err := orae.Decode(data)
	if err != nil {
		return err
	}

	violations := orae.Validate(event)
	fmt.Print(validation.FormatErrors(violations))
	if len(violations) > 0 {
		fmt.Println()
		return fmt.Errorf("%s is not a valid retail event", path)
	}
	fmt.Println()
	return nil
}
