package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/jpalmerr/eventually/poll"
)

// Setting keys for the default polling schedule.
const (
	IntervalMillisKey = "eventually.polling.interval.millis"
	DurationMillisKey = "eventually.polling.duration.millis"
)

// Fallbacks used when a setting is absent.
const (
	DefaultInterval = time.Second
	DefaultDuration = time.Minute
)

// Settings looks up named configuration values.
type Settings interface {
	// Lookup returns the raw value of key and whether it is set.
	Lookup(key string) (string, bool)
}

// MapSettings is a [Settings] backed by a map, mostly useful in tests.
type MapSettings map[string]string

// Lookup implements [Settings].
func (m MapSettings) Lookup(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

type envSettings struct{}

func (envSettings) Lookup(key string) (string, bool) {
	return os.LookupEnv(EnvVar(key))
}

// Environment returns [Settings] read from environment variables named by
// [EnvVar]. A variable set to the empty string is present, so it is
// malformed just like an empty [MapSettings] value.
func Environment() Settings {
	return envSettings{}
}

// EnvVar maps a setting key to its environment variable name:
// "eventually.polling.interval.millis" becomes
// "EVENTUALLY_POLLING_INTERVAL_MILLIS".
func EnvVar(key string) string {
	return strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

// ConfigurationError reports a setting that is present but malformed.
type ConfigurationError struct {
	Setting string
	Value   string
	Err     error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("config: setting %s has invalid value %q: %v", e.Setting, e.Value, e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// DefaultSchedule builds the default [poll.Schedule] from settings.
//
// Each setting is optional and falls back independently to [DefaultInterval]
// and [DefaultDuration]. A value that is present but not an integer number
// of milliseconds yields a *[ConfigurationError] naming the setting.
func DefaultSchedule(settings Settings) (poll.Schedule, error) {
	interval, err := millis(settings, IntervalMillisKey, DefaultInterval)
	if err != nil {
		return poll.Schedule{}, err
	}
	duration, err := millis(settings, DurationMillisKey, DefaultDuration)
	if err != nil {
		return poll.Schedule{}, err
	}
	return poll.NewSchedule(interval, duration), nil
}

func millis(settings Settings, key string, fallback time.Duration) (time.Duration, error) {
	raw, ok := settings.Lookup(key)
	if !ok {
		return fallback, nil
	}
	n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, &ConfigurationError{Setting: key, Value: raw, Err: err}
	}
	return time.Duration(n) * time.Millisecond, nil
}

var defaultSchedule = sync.OnceValues(func() (poll.Schedule, error) {
	return DefaultSchedule(Environment())
})

// Default returns the process-wide default schedule read from the
// environment on first use.
//
// A malformed setting is fatal: Default panics with the *[ConfigurationError]
// on the first and every later call. Code that can report errors should
// call [DefaultSchedule] once at startup instead.
func Default() poll.Schedule {
	s, err := defaultSchedule()
	if err != nil {
		panic(err)
	}
	return s
}

// Schedule returns the check file's schedule, taking the interval or
// duration from fallback when the file leaves it out.
func (c *Config) Schedule(fallback poll.Schedule) poll.Schedule {
	s := fallback
	if c.Interval != nil {
		s = s.WithInterval(c.Interval.Duration())
	}
	if c.Duration != nil {
		s = s.WithDuration(c.Duration.Duration())
	}
	return s
}
