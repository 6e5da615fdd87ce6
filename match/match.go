// Package match provides matchers: described tests that can also explain why
// a value did not match.
//
// A [Matcher] is the richer sibling of a [describe.Predicate]. Where a
// predicate failure is reported as "was <value>", a matcher reports its own
// mismatch description, which lets it point at the part of the value that
// was wrong.
package match

import (
	"strings"

	"github.com/google/go-cmp/cmp"
	"github.com/jpalmerr/eventually/describe"
)

// Matcher tests values of type T and describes both itself and a mismatch.
//
// DescribeMismatch is only meaningful for a value that Matches rejected.
type Matcher[T any] interface {
	Description() string
	Matches(v T) bool
	DescribeMismatch(v T) string
}

// funcMatcher is the closure-based implementation behind the built-ins.
type funcMatcher[T any] struct {
	description string
	matches     func(T) bool
	mismatch    func(T) string
}

func (m funcMatcher[T]) Description() string         { return m.description }
func (m funcMatcher[T]) Matches(v T) bool            { return m.matches(v) }
func (m funcMatcher[T]) DescribeMismatch(v T) string { return m.mismatch(v) }
func (m funcMatcher[T]) String() string              { return m.description }

// New returns a [Matcher] built from a description, a test and a mismatch
// describer. A nil mismatch describer reports "was <value>".
func New[T any](description string, matches func(T) bool, mismatch func(T) string) Matcher[T] {
	if mismatch == nil {
		mismatch = was[T]
	}
	return funcMatcher[T]{description: description, matches: matches, mismatch: mismatch}
}

func was[T any](v T) string {
	return "was " + describe.Text(v)
}

// EqualTo matches values equal to want according to [cmp.Equal].
//
// Options are passed through to go-cmp, e.g. cmpopts.EquateEmpty().
func EqualTo[T any](want T, opts ...cmp.Option) Matcher[T] {
	return New("equal to "+describe.Text(want), func(got T) bool {
		return cmp.Equal(want, got, opts...)
	}, nil)
}

// Satisfying adapts a predicate into a matcher with a "was <value>" mismatch.
func Satisfying[T any](p describe.Predicate[T]) Matcher[T] {
	return New(p.Description(), p.Test, nil)
}

// Not inverts m.
func Not[T any](m Matcher[T]) Matcher[T] {
	return New("not "+m.Description(), func(v T) bool {
		return !m.Matches(v)
	}, nil)
}

// AllOf matches when every matcher matches. The mismatch names the first
// matcher that failed.
func AllOf[T any](ms ...Matcher[T]) Matcher[T] {
	return New(join(ms, " and "), func(v T) bool {
		for _, m := range ms {
			if !m.Matches(v) {
				return false
			}
		}
		return true
	}, func(v T) string {
		for _, m := range ms {
			if !m.Matches(v) {
				return m.Description() + " " + m.DescribeMismatch(v)
			}
		}
		return was(v)
	})
}

// AnyOf matches when at least one matcher matches. The mismatch lists every
// matcher's mismatch.
func AnyOf[T any](ms ...Matcher[T]) Matcher[T] {
	return New(join(ms, " or "), func(v T) bool {
		for _, m := range ms {
			if m.Matches(v) {
				return true
			}
		}
		return false
	}, func(v T) string {
		parts := make([]string, 0, len(ms))
		for _, m := range ms {
			parts = append(parts, m.DescribeMismatch(v))
		}
		return strings.Join(parts, " and ")
	})
}

// ContainsString matches strings containing sub.
func ContainsString(sub string) Matcher[string] {
	return New("containing "+sub, func(s string) bool {
		return strings.Contains(s, sub)
	}, nil)
}

// Empty matches the empty string.
func Empty() Matcher[string] {
	return New("is empty", func(s string) bool {
		return s == ""
	}, nil)
}

func join[T any](ms []Matcher[T], sep string) string {
	descs := make([]string, 0, len(ms))
	for _, m := range ms {
		descs = append(descs, m.Description())
	}
	return "(" + strings.Join(descs, sep) + ")"
}
