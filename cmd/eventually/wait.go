package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/jpalmerr/eventually"
	"github.com/jpalmerr/eventually/config"
	"github.com/jpalmerr/eventually/internal/probe"
	"github.com/spf13/cobra"
)

// newLogger creates a JSON logger for CLI use. Poll attempts are logged at
// debug level, so verbose output shows every attempt.
func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// waitCmd polls checks until they report the expected state.
var waitCmd = &cobra.Command{
	Use:   "wait",
	Short: "Wait until endpoints report the expected state",
	Long: `Poll each check until it reports the expected state.

Checks come either from a check file (-c) or from a single --url. Checks run
one after another, each with the full polling duration. When a check times
out its diagnosis is printed and the command exits with status 1 after the
remaining checks have run.

The schedule is taken, in order of precedence, from the --interval and
--duration flags, the check file, and the EVENTUALLY_POLLING_*_MILLIS
environment variables.

Example:
  eventually wait -c checks.yaml
  eventually wait --url http://localhost:8080/health --extractor http --duration 30s`,
	RunE: runWait,
}

func init() {
	rootCmd.AddCommand(waitCmd)

	flags := waitCmd.Flags()
	flags.StringP("config", "c", "", "path to check file")
	flags.String("url", "", "single URL to check instead of a check file")
	flags.String("extractor", "default", "extractor for --url: default, http, json:path or contains:text")
	flags.String("expect", "up", "expected status for --url: up, down, degraded or unknown")
	flags.Duration("interval", 0, "time between attempts (overrides check file and environment)")
	flags.Duration("duration", 0, "how long to keep polling (overrides check file and environment)")
	flags.BoolP("verbose", "v", false, "log every poll attempt")
	waitCmd.MarkFlagsMutuallyExclusive("config", "url")
}

func runWait(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	verbose, _ := flags.GetBool("verbose")
	logger := newLogger(verbose)

	cfg, err := loadWaitConfig(cmd)
	if err != nil {
		return err
	}

	fallback, err := config.DefaultSchedule(config.Environment())
	if err != nil {
		return err
	}
	schedule := cfg.Schedule(fallback)
	if flags.Changed("interval") {
		d, _ := flags.GetDuration("interval")
		schedule = schedule.WithInterval(d)
	}
	if flags.Changed("duration") {
		d, _ := flags.GetDuration("duration")
		schedule = schedule.WithDuration(d)
	}

	checks, err := buildChecks(cfg)
	if err != nil {
		return fmt.Errorf("failed to build checks: %w", err)
	}

	checker, err := eventually.New(
		eventually.WithSchedule(schedule),
		eventually.WithLogger(logger),
	)
	if err != nil {
		return fmt.Errorf("failed to create checker: %w", err)
	}

	client := probe.NewClient()
	defer client.Close()

	logger.Info("waiting",
		"checks", len(checks),
		"schedule", schedule.String(),
	)

	start := time.Now()
	err = runChecks(cmd.OutOrStdout(), checker, client, checks)
	logger.Info("wait finished",
		"elapsed", time.Since(start).String(),
		"ok", err == nil,
	)
	return err
}

// loadWaitConfig reads the check file, or builds a one-check config from
// the --url flags.
func loadWaitConfig(cmd *cobra.Command) (*config.Config, error) {
	flags := cmd.Flags()
	configFile, _ := flags.GetString("config")
	rawURL, _ := flags.GetString("url")

	switch {
	case configFile != "":
		cfg, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		return cfg, nil

	case rawURL != "":
		shorthand, _ := flags.GetString("extractor")
		extractor, err := config.ParseExtractor(shorthand)
		if err != nil {
			return nil, fmt.Errorf("invalid --extractor: %w", err)
		}
		expect, _ := flags.GetString("expect")

		cfg := &config.Config{
			Checks: []config.CheckConfig{{
				URL:       rawURL,
				Extractor: extractor,
				Expect:    expect,
			}},
		}
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("invalid --url check: %w", err)
		}
		return cfg, nil

	default:
		return nil, errors.New("either --config or --url is required")
	}
}
