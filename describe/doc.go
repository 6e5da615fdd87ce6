// Package describe pairs operations with fixed human-readable descriptions.
//
// A described entity wraps exactly one operation (a boolean supplier, a
// predicate or a transform) together with a description fixed at
// construction. Invoking the entity delegates to the operation; asking for
// its description always returns the fixed text.
//
// Composition never mutates its operands. It returns a new entity whose
// description is derived from the operands with fixed templates:
//
//	a.And(b)          "(a and b)"
//	a.Or(b)           "(a or b)"
//	a.Negate()        "(not a)"
//	AndThen(f, g)     "(g of f)"
//	Compose(g, f)     "(g of f)"
//
// Operands that carry no description are rendered with [Text], their natural
// string form. Bare functions render as their runtime function name.
package describe
