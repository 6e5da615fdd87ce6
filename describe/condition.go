package describe

import "reflect"

// BooleanSupplier is anything that can be evaluated to a boolean.
//
// [Condition] and [BoolFunc] both implement it, so either can be used as an
// operand of [Condition.And] and [Condition.Or].
type BooleanSupplier interface {
	Evaluate() bool
}

// BoolFunc is a bare boolean supplier without a description.
//
// Its natural string form is the runtime name of the function.
type BoolFunc func() bool

// Evaluate calls f.
func (f BoolFunc) Evaluate() bool {
	return f()
}

// String returns the runtime name of f.
func (f BoolFunc) String() string {
	return funcName(reflect.ValueOf(f))
}

// Condition is a described boolean supplier.
//
// Condition is immutable. The zero value has an empty description and
// panics when evaluated.
type Condition struct {
	description string
	fn          func() bool
}

// NewCondition returns a [Condition] that evaluates fn and is described by
// description.
//
// Example:
//
//	visible := describe.NewCondition("button is visible", button.Visible)
func NewCondition(description string, fn func() bool) Condition {
	return Condition{description: description, fn: fn}
}

// Evaluate runs the wrapped supplier.
func (c Condition) Evaluate() bool {
	return c.fn()
}

// Description returns the fixed description.
func (c Condition) Description() string {
	return c.description
}

// String returns the fixed description.
func (c Condition) String() string {
	return c.description
}

// And returns "(c and other)". other is not evaluated when c is false.
func (c Condition) And(other BooleanSupplier) Condition {
	return Condition{
		description: "(" + c.description + " and " + Text(other) + ")",
		fn: func() bool {
			return c.Evaluate() && other.Evaluate()
		},
	}
}

// Or returns "(c or other)". other is not evaluated when c is true.
func (c Condition) Or(other BooleanSupplier) Condition {
	return Condition{
		description: "(" + c.description + " or " + Text(other) + ")",
		fn: func() bool {
			return c.Evaluate() || other.Evaluate()
		},
	}
}

// Negate returns "(not c)".
func (c Condition) Negate() Condition {
	return Condition{
		description: "(not " + c.description + ")",
		fn: func() bool {
			return !c.Evaluate()
		},
	}
}
