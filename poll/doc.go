// Package poll evaluates conditions repeatedly on a fixed schedule.
//
// The main components are:
//
//   - [Schedule]: immutable (interval, duration) pair
//   - [Timer]: tracks a running poll against a schedule and sleeps until the
//     next interval boundary
//   - [Poller]: the retry loop, evaluating a condition until it is satisfied
//     or the timer expires
//   - [Result]: the outcome of a poll, carrying the value from the last
//     evaluation
//
// Polling is synchronous. A poll occupies the calling goroutine until the
// condition holds or the schedule's duration has elapsed, and the condition
// is always evaluated at least once before expiration is checked. Wake-ups
// are aligned to whole intervals after the start of the poll, so a slow
// evaluation shortens the following sleep instead of delaying every later
// check.
//
// Time is read through a [Clock] and paused through a [Sleeper]; tests
// substitute the manual clock in package polltest.
package poll
