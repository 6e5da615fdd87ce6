package poll

import "time"

// Timer tracks one running poll against a [Schedule].
//
// A Timer is created running by [StartTimer], advanced only by [Timer.Tick]
// and queried by [Timer.IsExpired]. It cannot be reset; every poll uses a
// fresh Timer. Timer is not safe for concurrent use.
type Timer struct {
	clock      Clock
	sleeper    Sleeper
	interval   time.Duration
	nextWakeup time.Time
	expiration time.Time
}

// StartTimer captures the current instant as the poll epoch and returns a
// running [Timer]. The timer expires at epoch + schedule.Duration().
func StartTimer(clock Clock, sleeper Sleeper, schedule Schedule) *Timer {
	epoch := clock.Now()
	return &Timer{
		clock:      clock,
		sleeper:    sleeper,
		interval:   schedule.Interval(),
		nextWakeup: epoch,
		expiration: epoch.Add(schedule.Duration()),
	}
}

// IsExpired reports whether the current instant is at or after the
// expiration instant. The boundary itself counts as expired.
func (t *Timer) IsExpired() bool {
	return !t.clock.Now().Before(t.expiration)
}

// Tick sleeps until the next interval boundary after the current instant.
//
// Boundaries lie at whole multiples of the interval after the epoch.
// Boundaries that already passed while the condition was being evaluated
// are skipped rather than made up with immediate re-evaluations. With a
// non-positive interval Tick returns without sleeping.
func (t *Timer) Tick() {
	now := t.clock.Now()
	if t.interval <= 0 {
		t.nextWakeup = now
		return
	}

	if behind := now.Sub(t.nextWakeup); behind >= 0 {
		missed := behind/t.interval + 1
		t.nextWakeup = t.nextWakeup.Add(missed * t.interval)
	}

	t.sleeper.Sleep(t.nextWakeup.Sub(now))
}

// NextWakeup returns the boundary the last Tick slept until, or the epoch
// before the first Tick.
func (t *Timer) NextWakeup() time.Time {
	return t.nextWakeup
}

// Expiration returns the instant at which the timer expires.
func (t *Timer) Expiration() time.Time {
	return t.expiration
}
