package poll

// Result is the outcome of evaluating a subject-based condition.
//
// Result is produced once per poll from the last evaluation attempt, whether
// or not that attempt succeeded, so Value always reflects the most recent
// state of the subject.
type Result[V any] struct {
	// Value is the transformed value computed by the last evaluation.
	Value V

	// Satisfied reports whether the last evaluation accepted Value.
	Satisfied bool

	// Attempts is the number of evaluations performed.
	Attempts int
}
