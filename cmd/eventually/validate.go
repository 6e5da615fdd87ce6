package main

import (
	"fmt"

	"github.com/jpalmerr/eventually/config"
	"github.com/spf13/cobra"
)

// validateCmd validates a check file without polling anything.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a check file",
	Long: `Validate a check file without polling any endpoint.

This command parses the YAML, expands environment variables, and validates
all fields. It's useful for CI pipelines or pre-deployment checks.

Exit codes:
  0 - Check file is valid
  1 - Check file is invalid (error details printed to stderr)

Example:
  eventually validate -c checks.yaml`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringP("config", "c", "", "path to check file (required)")
	_ = validateCmd.MarkFlagRequired("config")
}

func runValidate(cmd *cobra.Command, args []string) error {
	configFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	fallback, err := config.DefaultSchedule(config.Environment())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Config is valid!\n")
	fmt.Fprintf(out, "  Schedule: %s\n", cfg.Schedule(fallback))
	fmt.Fprintf(out, "  Checks:   %d\n", len(cfg.Checks))
	for _, ck := range cfg.Checks {
		extractor := ck.Extractor.Type
		if extractor == "" {
			extractor = "default"
		}
		fmt.Fprintf(out, "    - %s: %s, expect %s\n", ck.Name, extractor, ck.Expect)
	}

	return nil
}
