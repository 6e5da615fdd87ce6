package describe

import "reflect"

// Tester is anything that can test a value of type T.
type Tester[T any] interface {
	Test(v T) bool
}

// PredicateFunc is a bare predicate without a description.
type PredicateFunc[T any] func(v T) bool

// Test calls f.
func (f PredicateFunc[T]) Test(v T) bool {
	return f(v)
}

// String returns the runtime name of f.
func (f PredicateFunc[T]) String() string {
	return funcName(reflect.ValueOf(f))
}

// Predicate is a described test over values of type T.
type Predicate[T any] struct {
	description string
	fn          func(T) bool
}

// NewPredicate returns a [Predicate] that tests with fn and is described by
// description.
//
// Example:
//
//	isEmpty := describe.NewPredicate("is empty", func(s string) bool { return s == "" })
func NewPredicate[T any](description string, fn func(T) bool) Predicate[T] {
	return Predicate[T]{description: description, fn: fn}
}

// Test runs the wrapped predicate.
func (p Predicate[T]) Test(v T) bool {
	return p.fn(v)
}

// Description returns the fixed description.
func (p Predicate[T]) Description() string {
	return p.description
}

// String returns the fixed description.
func (p Predicate[T]) String() string {
	return p.description
}

// And returns "(p and other)" with short-circuit evaluation.
func (p Predicate[T]) And(other Tester[T]) Predicate[T] {
	return Predicate[T]{
		description: "(" + p.description + " and " + Text(other) + ")",
		fn: func(v T) bool {
			return p.Test(v) && other.Test(v)
		},
	}
}

// Or returns "(p or other)" with short-circuit evaluation.
func (p Predicate[T]) Or(other Tester[T]) Predicate[T] {
	return Predicate[T]{
		description: "(" + p.description + " or " + Text(other) + ")",
		fn: func(v T) bool {
			return p.Test(v) || other.Test(v)
		},
	}
}

// Negate returns "(not p)".
func (p Predicate[T]) Negate() Predicate[T] {
	return Predicate[T]{
		description: "(not " + p.description + ")",
		fn: func(v T) bool {
			return !p.Test(v)
		},
	}
}
