package eventually

import (
	"github.com/jpalmerr/eventually/describe"
	"github.com/jpalmerr/eventually/match"
)

// Expectation is the rule a value must satisfy: either a predicate or a
// matcher.
//
// Evaluating an expectation also captures how a rejected value failed, so a
// diagnosis never has to evaluate anything again.
type Expectation[V any] struct {
	description string
	check       func(V) (ok bool, mismatch string)
}

// Satisfies expects values accepted by p. A rejected value is reported as
// "was <value>".
func Satisfies[V any](p describe.Predicate[V]) Expectation[V] {
	return Expectation[V]{
		description: p.Description(),
		check: func(v V) (bool, string) {
			if p.Test(v) {
				return true, ""
			}
			return false, "was " + describe.Text(v)
		},
	}
}

// Matches expects values matched by m. A rejected value is reported with
// the matcher's own mismatch description.
func Matches[V any](m match.Matcher[V]) Expectation[V] {
	return Expectation[V]{
		description: m.Description(),
		check: func(v V) (bool, string) {
			if m.Matches(v) {
				return true, ""
			}
			return false, m.DescribeMismatch(v)
		},
	}
}

// Description returns the predicate or matcher description.
func (e Expectation[V]) Description() string {
	return e.description
}

// capture returns an accept function for the poller that records the
// mismatch of the most recent evaluation in *mismatch.
func (e Expectation[V]) capture(mismatch *string) func(V) bool {
	return func(v V) bool {
		ok, mm := e.check(v)
		*mismatch = mm
		return ok
	}
}
