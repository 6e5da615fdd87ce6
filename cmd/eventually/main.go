// Package main is the entry point for the eventually CLI.
//
// The CLI waits for HTTP endpoints to reach an expected state, which makes
// it useful in deploy scripts and CI jobs that must not start until a
// service is ready.
//
// Usage:
//
//	eventually wait -c checks.yaml           # Wait for every check in a file
//	eventually wait --url http://localhost/  # Wait for a single endpoint
//	eventually validate -c checks.yaml       # Validate a check file
//	eventually version                       # Show version info
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information - set at build time via ldflags.
// Example: go build -ldflags "-X main.version=1.0.0"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCmd is the base command when called without subcommands.
var rootCmd = &cobra.Command{
	Use:   "eventually",
	Short: "Wait until HTTP endpoints report an expected state",
	Long: `eventually polls HTTP endpoints until each reports the expected state,
or fails with a diagnosis once the polling duration runs out.

Quick start:
  eventually wait --url http://localhost:8080/health --duration 30s

Example check file:
  interval: 1s
  duration: 2m
  checks:
    - name: API
      url: http://localhost:8080/health
      extractor: json:status
      expect: up

The default interval and duration can also be set with the
EVENTUALLY_POLLING_INTERVAL_MILLIS and EVENTUALLY_POLLING_DURATION_MILLIS
environment variables.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		// cobra already printed the error
		os.Exit(1)
	}
}

func main() {
	Execute()
}

// versionCmd prints version information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "eventually %s\n", version)
		fmt.Fprintf(out, "  commit: %s\n", commit)
		fmt.Fprintf(out, "  built:  %s\n", date)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
