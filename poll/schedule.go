package poll

import (
	"fmt"
	"time"
)

// Schedule is the (interval, duration) pair governing a poll.
//
// Schedule is an immutable value type and is comparable with ==. A duration
// of zero or less is legal and means the poll is expired as soon as it
// starts, so the condition is evaluated exactly once. An interval of zero or
// less is legal and degenerates to busy polling without sleeps.
type Schedule struct {
	interval time.Duration
	duration time.Duration
}

// NewSchedule returns a [Schedule] that checks every interval for duration.
//
// Example:
//
//	s := poll.NewSchedule(100*time.Millisecond, 5*time.Second)
func NewSchedule(interval, duration time.Duration) Schedule {
	return Schedule{interval: interval, duration: duration}
}

// Interval returns the time between the starts of consecutive evaluations.
func (s Schedule) Interval() time.Duration {
	return s.interval
}

// Duration returns how long the poll keeps retrying.
func (s Schedule) Duration() time.Duration {
	return s.duration
}

// WithInterval returns a copy of s with the interval replaced.
func (s Schedule) WithInterval(interval time.Duration) Schedule {
	return Schedule{interval: interval, duration: s.duration}
}

// WithDuration returns a copy of s with the duration replaced.
func (s Schedule) WithDuration(duration time.Duration) Schedule {
	return Schedule{interval: s.interval, duration: duration}
}

// String returns "every <interval> for <duration>".
func (s Schedule) String() string {
	return fmt.Sprintf("every %s for %s", s.interval, s.duration)
}
