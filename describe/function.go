package describe

import "reflect"

// Applier is anything that maps a T to an R.
type Applier[T, R any] interface {
	Apply(v T) R
}

// FunctionFunc is a bare transform without a description.
type FunctionFunc[T, R any] func(v T) R

// Apply calls f.
func (f FunctionFunc[T, R]) Apply(v T) R {
	return f(v)
}

// String returns the runtime name of f.
func (f FunctionFunc[T, R]) String() string {
	return funcName(reflect.ValueOf(f))
}

// Function is a described transform from T to R.
//
// A Function with an empty description stands for "no transform" in
// diagnoses; see [Identity].
type Function[T, R any] struct {
	description string
	fn          func(T) R
}

// NewFunction returns a [Function] that applies fn and is described by
// description.
//
// Example:
//
//	length := describe.NewFunction("length", func(s string) int { return len(s) })
func NewFunction[T, R any](description string, fn func(T) R) Function[T, R] {
	return Function[T, R]{description: description, fn: fn}
}

// Identity returns the transform that passes its input through unchanged.
// Its description is empty.
func Identity[T any]() Function[T, T] {
	return Function[T, T]{fn: func(v T) T { return v }}
}

// Apply runs the wrapped transform.
func (f Function[T, R]) Apply(v T) R {
	return f.fn(v)
}

// Description returns the fixed description.
func (f Function[T, R]) Description() string {
	return f.description
}

// String returns the fixed description.
func (f Function[T, R]) String() string {
	return f.description
}

// AndThen returns a transform that applies before and then after, described
// as "(after of before)".
func AndThen[T, R, V any](before Applier[T, R], after Applier[R, V]) Function[T, V] {
	return pipeline(before, after)
}

// Compose returns a transform that applies before and then after, described
// as "(after of before)". It is [AndThen] with the operands given from the
// other side.
func Compose[T, R, V any](after Applier[R, V], before Applier[T, R]) Function[T, V] {
	return pipeline(before, after)
}

func pipeline[T, R, V any](before Applier[T, R], after Applier[R, V]) Function[T, V] {
	return Function[T, V]{
		description: "(" + Text(after) + " of " + Text(before) + ")",
		fn: func(v T) V {
			return after.Apply(before.Apply(v))
		},
	}
}
