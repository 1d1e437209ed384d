// =============================================================================
// ORAE Bridge - Version Command
// =============================================================================
//
// COMMAND USAGE:
//   orae-bridge version
//
// OUTPUT:
//   ORAE Bridge
//   Version:    1.0.0
//   Commit:     3f2a9c1
//   Build Date: 2025-03-14
//   Go Version: go1.24.11
//
// =============================================================================

package cmd

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// Set at build time:
//
//	go build -ldflags "-X 'github.com/ginjaninja78/orae-rims-bridge/cmd.Version=1.0.0'"
var (
	Version   = "dev"
	Commit    = ""
	BuildDate = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Display the application version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("ORAE Bridge")
		fmt.Printf("Version:    %s\n", Version)
		fmt.Printf("Commit:     %s\n", commit())
		fmt.Printf("Build Date: %s\n", BuildDate)
		fmt.Printf("Go Version: %s\n", runtime.Version())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

// commit prefers the ldflags value and falls back to VCS build info.
func commit() string {
	if Commit != "" {
		return Commit
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, s := range info.Settings {
			if s.Key == "vcs.revision" && len(s.Value) >= 7 {
				return s.Value[:7]
			}
		}
	}
	return "unknown"
}
