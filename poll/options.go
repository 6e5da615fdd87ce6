package poll

import (
	"errors"
	"log/slog"
)

// pollerConfig holds mutable state during Poller construction.
type pollerConfig struct {
	clock   Clock
	sleeper Sleeper
	logger  *slog.Logger
}

// Option configures a [Poller] during construction.
//
// Built-in options: [WithClock], [WithSleeper], [WithLogger].
type Option func(*pollerConfig) error

// WithClock sets the [Clock] the poller reads time from.
// Defaults to [SystemClock].
//
// Returns an error if the clock is nil.
func WithClock(c Clock) Option {
	return func(cfg *pollerConfig) error {
		if c == nil {
			return errors.New("clock cannot be nil")
		}
		cfg.clock = c
		return nil
	}
}

// WithSleeper sets the [Sleeper] the poller pauses with between evaluations.
// Defaults to [SystemSleeper].
//
// Returns an error if the sleeper is nil.
func WithSleeper(s Sleeper) Option {
	return func(cfg *pollerConfig) error {
		if s == nil {
			return errors.New("sleeper cannot be nil")
		}
		cfg.sleeper = s
		return nil
	}
}

// WithLogger sets the [slog.Logger] used for attempt and expiry logs.
// If not specified, [slog.Default] is used.
//
// Returns an error if the logger is nil.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *pollerConfig) error {
		if logger == nil {
			return errors.New("logger cannot be nil")
		}
		cfg.logger = logger
		return nil
	}
}
