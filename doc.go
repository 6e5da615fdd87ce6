// Package eventually checks conditions once or by polling, and explains
// failures with a diagnosis that needs no rerun to debug.
//
// It is meant for tests and verification code that wait on asynchronous
// state: "eventually the button is visible", "eventually the queue is
// empty".
//
// # Quick Start
//
//	c, err := eventually.New(eventually.WithSchedule(poll.NewSchedule(100*time.Millisecond, 5*time.Second)))
//	if err != nil {
//	    t.Fatal(err)
//	}
//
//	visible := describe.NewCondition("button is visible", button.Visible)
//	if err := c.WaitUntil(visible); err != nil {
//	    t.Fatal(err)
//	}
//
// # Condition Shapes
//
// A condition is either a described boolean ([describe.Condition]) or a
// subject, a transform and an [Expectation]:
//
//	length := describe.NewFunction("length", func(q *Queue) int { return q.Len() })
//	err := eventually.WaitUntilValue(c, queue, length, eventually.Matches(match.EqualTo(0)))
//
// Use [describe.Identity] to test the subject itself.
//
// # Diagnoses
//
// Failures are returned as *[AssertionError] for a single evaluation and
// *[PollTimeoutError] for a poll that ran out of time. Their messages are
// built only from what the last evaluation captured:
//
//	queue
//	Expected: length equal to 0
//	     but: timed out, polling every 100ms for 5s
//	   final: length was 3
//
// # Schedules
//
// Without [WithSchedule], [New] reads the default schedule from the
// environment (see package config): EVENTUALLY_POLLING_INTERVAL_MILLIS and
// EVENTUALLY_POLLING_DURATION_MILLIS, falling back to every 1s for 1m.
//
// # Architecture
//
//   - describe: self-describing conditions, predicates and transforms
//   - match: matchers that describe their own mismatches
//   - poll: schedules, the interval-aligned timer and the poll loop
//   - config: default schedule settings and CLI check files
//   - internal/diagnosis: the failure message formatter
package eventually
