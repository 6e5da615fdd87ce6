// Package diagnosis formats the failure message for a condition that did not
// hold.
//
// Formatting is pure: every description, value and mismatch it prints was
// captured by the caller during the last evaluation. Nothing here evaluates
// a condition, predicate or transform.
//
// A diagnosis is a first line carrying the subject (empty when there is
// none) followed by labelled lines whose labels are right-aligned to a fixed
// column so stacked diagnoses line up:
//
//	subject
//	Expected: is empty
//	     but: was subject
package diagnosis
