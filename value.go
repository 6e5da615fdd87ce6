package eventually

import (
	"github.com/jpalmerr/eventually/describe"
	"github.com/jpalmerr/eventually/internal/diagnosis"
	"github.com/jpalmerr/eventually/poll"
)

// AssertThatValue applies transform to subject once and returns an
// *[AssertionError] if exp rejects the value.
//
// Example:
//
//	isEmpty := describe.NewPredicate("is empty", func(s string) bool { return s == "" })
//	err := eventually.AssertThatValue(c, name, describe.Identity[string](), eventually.Satisfies(isEmpty))
func AssertThatValue[S, V any](c *Checker, subject S, transform describe.Function[S, V], exp Expectation[V]) error {
	var mismatch string
	result := poll.EvaluateValueOnce(c.poller, subject, transform.Apply, exp.capture(&mismatch))
	if result.Satisfied {
		return nil
	}
	return &AssertionError{
		Diagnosis: diagnosis.Immediate(valueCondition(subject, transform, exp), mismatch),
	}
}

// SatisfiedThatValue applies transform to subject once and reports whether
// exp accepts the value.
func SatisfiedThatValue[S, V any](c *Checker, subject S, transform describe.Function[S, V], exp Expectation[V]) bool {
	var mismatch string
	return poll.EvaluateValueOnce(c.poller, subject, transform.Apply, exp.capture(&mismatch)).Satisfied
}

// WaitUntilValue polls transform(subject) until exp accepts it and returns
// a *[PollTimeoutError] if the checker's schedule expires first.
func WaitUntilValue[S, V any](c *Checker, subject S, transform describe.Function[S, V], exp Expectation[V]) error {
	_, err := When(c, subject, transform, exp)
	return err
}

// When polls transform(subject) until exp accepts it and returns the
// accepted value.
//
// On timeout it returns the value computed by the final evaluation together
// with a *[PollTimeoutError].
//
// Example:
//
//	status := describe.NewFunction("status", (*Job).Status)
//	got, err := eventually.When(c, job, status, eventually.Matches(match.EqualTo("done")))
func When[S, V any](c *Checker, subject S, transform describe.Function[S, V], exp Expectation[V]) (V, error) {
	var mismatch string
	result := poll.PollValueUntilSatisfiedOrExpired(c.poller, c.schedule, subject, transform.Apply, exp.capture(&mismatch))
	if result.Satisfied {
		return result.Value, nil
	}
	return result.Value, &PollTimeoutError{
		Schedule:  c.schedule,
		Diagnosis: diagnosis.Polled(valueCondition(subject, transform, exp), c.schedule, mismatch),
	}
}

func valueCondition[S, V any](subject S, transform describe.Function[S, V], exp Expectation[V]) diagnosis.Condition {
	return diagnosis.Condition{
		Subject:     describe.Text(subject),
		Transform:   transform.Description(),
		Expectation: exp.Description(),
	}
}
