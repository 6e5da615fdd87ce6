package eventually

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/jpalmerr/eventually/poll"
	"github.com/jpalmerr/eventually/poll/polltest"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// testLogger returns a logger that discards all output for clean test output.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestChecker returns a Checker on schedule driven by a manual clock.
func newTestChecker(t *testing.T, schedule poll.Schedule) (*Checker, *polltest.Clock) {
	t.Helper()

	clock := polltest.NewClock(epoch)
	c, err := New(
		WithSchedule(schedule),
		WithClock(clock),
		WithSleeper(clock),
		WithLogger(testLogger()),
	)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return c, clock
}

// countdown returns a function that reports false n times, then true.
func countdown(n int) func() bool {
	return func() bool {
		if n > 0 {
			n--
			return false
		}
		return true
	}
}
