package poll

import "time"

// Clock reports the current instant. Implementations must be monotonic
// non-decreasing; a clock that moves backwards is not defended against.
type Clock interface {
	Now() time.Time
}

// Sleeper pauses the calling goroutine.
type Sleeper interface {
	Sleep(d time.Duration)
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

type systemSleeper struct{}

func (systemSleeper) Sleep(d time.Duration) {
	time.Sleep(d)
}

// SystemClock returns a [Clock] backed by [time.Now]. The returned instants
// carry Go's monotonic clock reading.
func SystemClock() Clock {
	return systemClock{}
}

// SystemSleeper returns a [Sleeper] backed by [time.Sleep].
func SystemSleeper() Sleeper {
	return systemSleeper{}
}
