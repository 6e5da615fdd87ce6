package eventually

import (
	"github.com/jpalmerr/eventually/config"
	"github.com/jpalmerr/eventually/describe"
	"github.com/jpalmerr/eventually/internal/diagnosis"
	"github.com/jpalmerr/eventually/poll"
)

// outcomeFalse is the captured outcome of a boolean condition that failed.
const outcomeFalse = "was false"

// Checker evaluates conditions and turns failures into diagnosed errors.
//
// A Checker is immutable and safe to share; each call runs its own poll.
// Create one with [New], typically once per test package or suite.
type Checker struct {
	poller   *poll.Poller
	schedule poll.Schedule
}

// New creates a [Checker] with the given options.
//
// The schedule is fixed at construction: either the one passed with
// [WithSchedule] or the default read from settings (environment variables
// unless [WithSettings] says otherwise). A malformed setting is returned as
// a *[ConfigurationError].
func New(opts ...Option) (*Checker, error) {
	cfg := &checkerConfig{settings: config.Environment()}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	var schedule poll.Schedule
	if cfg.schedule != nil {
		schedule = *cfg.schedule
	} else {
		s, err := config.DefaultSchedule(cfg.settings)
		if err != nil {
			return nil, err
		}
		schedule = s
	}

	poller, err := poll.New(cfg.pollOpts...)
	if err != nil {
		return nil, err
	}

	return &Checker{poller: poller, schedule: schedule}, nil
}

// DefaultSchedule returns the process-wide default schedule read from the
// environment. It panics with a *[ConfigurationError] if a setting is
// malformed; see [config.Default].
func DefaultSchedule() poll.Schedule {
	return config.Default()
}

// Schedule returns the schedule used by the polling entry points.
func (c *Checker) Schedule() poll.Schedule {
	return c.schedule
}

// Within returns a copy of c that polls on schedule.
//
// Example:
//
//	err := c.Within(c.Schedule().WithDuration(time.Minute)).WaitUntil(cond)
func (c *Checker) Within(schedule poll.Schedule) *Checker {
	return &Checker{poller: c.poller, schedule: schedule}
}

// AssertThat evaluates cond once and returns an *[AssertionError] if it is
// false.
func (c *Checker) AssertThat(cond describe.Condition) error {
	if c.poller.EvaluateOnce(cond.Evaluate) {
		return nil
	}
	return &AssertionError{
		Diagnosis: diagnosis.Immediate(booleanCondition(cond), outcomeFalse),
	}
}

// SatisfiedThat evaluates cond once.
func (c *Checker) SatisfiedThat(cond describe.Condition) bool {
	return c.poller.EvaluateOnce(cond.Evaluate)
}

// WaitUntil polls cond on the checker's schedule and returns a
// *[PollTimeoutError] if it never became true.
func (c *Checker) WaitUntil(cond describe.Condition) error {
	if c.poller.PollUntilSatisfiedOrExpired(c.schedule, cond.Evaluate) {
		return nil
	}
	return &PollTimeoutError{
		Schedule:  c.schedule,
		Diagnosis: diagnosis.Polled(booleanCondition(cond), c.schedule, outcomeFalse),
	}
}

// booleanCondition describes a condition that has no distinguishable subject.
func booleanCondition(cond describe.Condition) diagnosis.Condition {
	return diagnosis.Condition{Expectation: cond.Description()}
}
