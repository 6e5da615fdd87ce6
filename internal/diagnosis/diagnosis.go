package diagnosis

import (
	"fmt"
	"strings"
)

const (
	labelExpected = "Expected"
	labelBut      = "but"
	labelFinal    = "final"
)

// labelWidth is the column every label is right-aligned to.
const labelWidth = len(labelExpected)

// Condition holds the fixed descriptions of a condition.
type Condition struct {
	// Subject describes what the condition is about. Empty when the
	// condition has no distinguishable subject, such as a bare boolean.
	Subject string

	// Transform describes how the tested value is derived from the subject.
	// Empty when the subject is tested directly.
	Transform string

	// Expectation describes the predicate or matcher.
	Expectation string
}

// expected joins the transform and expectation descriptions.
func (c Condition) expected() string {
	if c.Transform == "" {
		return c.Expectation
	}
	return c.Transform + " " + c.Expectation
}

// line is one entry of the diagnosis line model.
type line struct {
	label string
	text  string
}

// Immediate formats the diagnosis for a single failed evaluation.
//
// outcome describes the captured result: "was <value>" for a predicate, or
// the matcher's own mismatch description.
func Immediate(c Condition, outcome string) string {
	return render(c.Subject, []line{
		{labelExpected, c.expected()},
		{labelBut, outcome},
	})
}

// Polled formats the diagnosis for a poll that timed out.
//
// outcome describes the value captured by the final evaluation. It is only
// printed when the condition has a transform, on a "final" line that
// repeats the transform description.
func Polled(c Condition, schedule fmt.Stringer, outcome string) string {
	lines := []line{
		{labelExpected, c.expected()},
		{labelBut, "timed out, polling " + schedule.String()},
	}
	if c.Transform != "" {
		lines = append(lines, line{labelFinal, c.Transform + " " + outcome})
	}
	return render(c.Subject, lines)
}

func render(subject string, lines []line) string {
	var b strings.Builder
	b.WriteString(subject)
	for _, l := range lines {
		fmt.Fprintf(&b, "\n%*s: %s", labelWidth, l.label, l.text)
	}
	return b.String()
}
