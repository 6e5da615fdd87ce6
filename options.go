package eventually

import (
	"errors"
	"log/slog"

	"github.com/jpalmerr/eventually/config"
	"github.com/jpalmerr/eventually/poll"
)

// checkerConfig holds mutable state during Checker construction.
type checkerConfig struct {
	schedule *poll.Schedule
	settings config.Settings
	pollOpts []poll.Option
}

// Option configures a [Checker] during construction.
//
// Built-in options: [WithSchedule], [WithSettings], [WithClock],
// [WithSleeper], [WithLogger].
type Option func(*checkerConfig) error

// WithSchedule sets the schedule used by the polling entry points.
//
// When omitted, the schedule is read once from the configured [Settings]
// (see [WithSettings]).
//
// Example:
//
//	c, err := eventually.New(
//	    eventually.WithSchedule(poll.NewSchedule(50*time.Millisecond, 2*time.Second)),
//	)
func WithSchedule(s poll.Schedule) Option {
	return func(cfg *checkerConfig) error {
		cfg.schedule = &s
		return nil
	}
}

// WithSettings sets where the default schedule is read from when no
// [WithSchedule] option is given. Defaults to [config.Environment].
//
// Returns an error if settings is nil.
func WithSettings(settings config.Settings) Option {
	return func(cfg *checkerConfig) error {
		if settings == nil {
			return errors.New("settings cannot be nil")
		}
		cfg.settings = settings
		return nil
	}
}

// WithClock sets the clock polls read time from. Tests typically pass a
// polltest.Clock to both WithClock and [WithSleeper].
func WithClock(clock poll.Clock) Option {
	return func(cfg *checkerConfig) error {
		cfg.pollOpts = append(cfg.pollOpts, poll.WithClock(clock))
		return nil
	}
}

// WithSleeper sets how polls pause between evaluations.
func WithSleeper(sleeper poll.Sleeper) Option {
	return func(cfg *checkerConfig) error {
		cfg.pollOpts = append(cfg.pollOpts, poll.WithSleeper(sleeper))
		return nil
	}
}

// WithLogger sets the [slog.Logger] polls log attempts to.
// If not specified, [slog.Default] is used.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *checkerConfig) error {
		cfg.pollOpts = append(cfg.pollOpts, poll.WithLogger(logger))
		return nil
	}
}
