// Package polltest provides a manual clock for testing code that polls.
package polltest

import (
	"sync"
	"time"
)

// Clock is a manual clock implementing both poll.Clock and poll.Sleeper.
//
// Sleep does not block: it advances the clock by the requested duration and
// records it. Advance moves time forward without recording a sleep, which
// lets a condition simulate slow evaluation.
type Clock struct {
	mu     sync.Mutex
	now    time.Time
	sleeps []time.Duration
}

// NewClock returns a [Clock] whose current instant is start.
func NewClock(start time.Time) *Clock {
	return &Clock{now: start}
}

// Now returns the current manual instant.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Sleep records d and advances the clock by it.
func (c *Clock) Sleep(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sleeps = append(c.sleeps, d)
	if d > 0 {
		c.now = c.now.Add(d)
	}
}

// Advance moves the clock forward by d without recording a sleep.
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// Sleeps returns a copy of every duration passed to Sleep, in order.
func (c *Clock) Sleeps() []time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]time.Duration(nil), c.sleeps...)
}

// SleepCount returns the number of Sleep calls.
func (c *Clock) SleepCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.sleeps)
}
