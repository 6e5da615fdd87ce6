package eventually

import (
	"errors"

	"github.com/jpalmerr/eventually/config"
	"github.com/jpalmerr/eventually/poll"
)

var (
	// ErrNotSatisfied matches every *AssertionError via errors.Is.
	ErrNotSatisfied = errors.New("eventually: condition not satisfied")

	// ErrTimedOut matches every *PollTimeoutError via errors.Is.
	ErrTimedOut = errors.New("eventually: condition not satisfied before timeout")
)

// AssertionError reports a condition that was false on its single
// evaluation. Its message is the diagnosis.
type AssertionError struct {
	Diagnosis string
}

func (e *AssertionError) Error() string {
	return e.Diagnosis
}

func (e *AssertionError) Is(target error) bool {
	return target == ErrNotSatisfied
}

// PollTimeoutError reports a condition that was never satisfied before the
// schedule's duration elapsed. Its message is the diagnosis, including the
// value captured by the final evaluation when there is a transform.
type PollTimeoutError struct {
	Schedule  poll.Schedule
	Diagnosis string
}

func (e *PollTimeoutError) Error() string {
	return e.Diagnosis
}

func (e *PollTimeoutError) Is(target error) bool {
	return target == ErrTimedOut
}

// ConfigurationError reports a malformed default schedule setting.
type ConfigurationError = config.ConfigurationError
