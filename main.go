// =============================================================================
// ORAE Bridge - Main Entry Point
// =============================================================================
//
// This is the main entry point for the ORAE to RIMS bridge. It initializes the
// Cobra CLI and delegates command execution to the cmd package.
//
// USAGE:
//   orae-bridge serve               - Convert events from Pub/Sub continuously
//   orae-bridge convert <path>      - Convert a file or directory (test mode)
//   orae-bridge validate <file>     - Validate an event without converting
//   orae-bridge layout <file>       - Write the field length layout as XLSX
//   orae-bridge version             - Display the application version
//
// ARCHITECTURE:
//   - cmd/           : CLI command definitions (Cobra)
//   - internal/      : Event model, mapping engine, validation, pipeline,
//                      transport and supporting infrastructure
//   - pkg/           : Shared file utilities
//
// =============================================================================

package main

import (
	// Embedded zone database so store time zones resolve on minimal images.
	_ "time/tzdata"

	"github.com/ginjaninja78/orae-rims-bridge/cmd"
)

func main() {
	cmd.Execute()
}
