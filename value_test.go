package eventually

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/jpalmerr/eventually/describe"
	"github.com/jpalmerr/eventually/match"
	"github.com/jpalmerr/eventually/poll"
	"github.com/jpalmerr/eventually/poll/polltest"
)

var isEmpty = describe.NewPredicate("is empty", func(s string) bool { return s == "" })

// job is a subject whose state advances each time it is inspected.
type job struct {
	name   string
	states []string
	reads  int
}

func (j *job) String() string { return "job " + j.name }

func (j *job) state() string {
	s := j.states[min(j.reads, len(j.states)-1)]
	j.reads++
	return s
}

func jobState() describe.Function[*job, string] {
	return describe.NewFunction("state", (*job).state)
}

func TestAssertThatValue_PredicateDiagnosis(t *testing.T) {
	c, _ := newTestChecker(t, poll.NewSchedule(time.Second, time.Minute))

	err := AssertThatValue(c, "subject", describe.Identity[string](), Satisfies(isEmpty))
	if err == nil {
		t.Fatal("AssertThatValue() expected error, got nil")
	}
	if !errors.Is(err, ErrNotSatisfied) {
		t.Error("errors.Is(err, ErrNotSatisfied) = false")
	}

	want := "subject\nExpected: is empty\n     but: was subject"
	if diff := cmp.Diff(want, err.Error()); diff != "" {
		t.Errorf("diagnosis mismatch (-want +got):\n%s", diff)
	}

	if err := AssertThatValue(c, "", describe.Identity[string](), Satisfies(isEmpty)); err != nil {
		t.Errorf("AssertThatValue() error = %v, want nil", err)
	}
}

func TestAssertThatValue_MatcherDiagnosis(t *testing.T) {
	c, _ := newTestChecker(t, poll.NewSchedule(time.Second, time.Minute))
	j := &job{name: "backup", states: []string{"running"}}

	err := AssertThatValue(c, j, jobState(), Matches(match.EqualTo("done")))
	if err == nil {
		t.Fatal("AssertThatValue() expected error, got nil")
	}

	want := "job backup\nExpected: state equal to done\n     but: was running"
	if diff := cmp.Diff(want, err.Error()); diff != "" {
		t.Errorf("diagnosis mismatch (-want +got):\n%s", diff)
	}
	if j.reads != 1 {
		t.Errorf("reads = %d, want 1 (diagnosis must not re-evaluate)", j.reads)
	}
}

func TestSatisfiedThatValue(t *testing.T) {
	c, clock := newTestChecker(t, poll.NewSchedule(time.Second, time.Minute))
	length := describe.NewFunction("length", func(s string) int { return len(s) })
	short := describe.NewPredicate("shorter than 5", func(n int) bool { return n < 5 })

	if !SatisfiedThatValue(c, "abc", length, Satisfies(short)) {
		t.Error("SatisfiedThatValue(abc) = false, want true")
	}
	if SatisfiedThatValue(c, "abcdef", length, Satisfies(short)) {
		t.Error("SatisfiedThatValue(abcdef) = true, want false")
	}
	if clock.SleepCount() != 0 {
		t.Errorf("SleepCount() = %d, want 0", clock.SleepCount())
	}
}

func TestWhen_ReturnsSatisfyingValue(t *testing.T) {
	c, clock := newTestChecker(t, poll.NewSchedule(time.Second, time.Minute))
	j := &job{name: "backup", states: []string{"queued", "running", "done"}}

	got, err := When(c, j, jobState(), Matches(match.EqualTo("done")))
	if err != nil {
		t.Fatalf("When() error = %v", err)
	}
	if got != "done" {
		t.Errorf("When() = %q, want done", got)
	}
	if j.reads != 3 {
		t.Errorf("reads = %d, want 3", j.reads)
	}
	if clock.SleepCount() != 2 {
		t.Errorf("SleepCount() = %d, want 2", clock.SleepCount())
	}
}

func TestWhen_TimeoutReportsFinalValue(t *testing.T) {
	schedule := poll.NewSchedule(time.Second, 2*time.Second)
	c, _ := newTestChecker(t, schedule)
	j := &job{name: "backup", states: []string{"queued", "running", "stuck", "done"}}

	got, err := When(c, j, jobState(), Matches(match.EqualTo("done")))
	if err == nil {
		t.Fatal("When() expected error, got nil")
	}
	if got != "stuck" {
		t.Errorf("When() value = %q, want value of final evaluation stuck", got)
	}

	var timeoutErr *PollTimeoutError
	if !errors.As(err, &timeoutErr) {
		t.Fatalf("When() error = %T, want *PollTimeoutError", err)
	}

	want := strings.Join([]string{
		"job backup",
		"Expected: state equal to done",
		"     but: timed out, polling every 1s for 2s",
		"   final: state was stuck",
	}, "\n")
	if diff := cmp.Diff(want, err.Error()); diff != "" {
		t.Errorf("diagnosis mismatch (-want +got):\n%s", diff)
	}
	if j.reads != 3 {
		t.Errorf("reads = %d, want 3", j.reads)
	}
}

func TestWaitUntilValue_IdentityOmitsFinalLine(t *testing.T) {
	c, _ := newTestChecker(t, poll.NewSchedule(time.Second, time.Second))

	err := WaitUntilValue(c, "subject", describe.Identity[string](), Satisfies(isEmpty))
	if err == nil {
		t.Fatal("WaitUntilValue() expected error, got nil")
	}
	if !errors.Is(err, ErrTimedOut) {
		t.Error("errors.Is(err, ErrTimedOut) = false")
	}

	want := "subject\nExpected: is empty\n     but: timed out, polling every 1s for 1s"
	if diff := cmp.Diff(want, err.Error()); diff != "" {
		t.Errorf("diagnosis mismatch (-want +got):\n%s", diff)
	}
}

func TestWaitUntilValue_ComposedTransform(t *testing.T) {
	c, _ := newTestChecker(t, poll.NewSchedule(time.Second, time.Second))
	trimmed := describe.NewFunction("trimmed", strings.TrimSpace)
	length := describe.NewFunction("length", func(s string) int { return len(s) })
	positive := describe.NewPredicate("is positive", func(n int) bool { return n > 0 })

	err := WaitUntilValue(c, "   ", describe.AndThen[string, string, int](trimmed, length), Satisfies(positive))
	if err == nil {
		t.Fatal("WaitUntilValue() expected error, got nil")
	}

	want := strings.Join([]string{
		"   ",
		"Expected: (length of trimmed) is positive",
		"     but: timed out, polling every 1s for 1s",
		"   final: (length of trimmed) was 0",
	}, "\n")
	if diff := cmp.Diff(want, err.Error()); diff != "" {
		t.Errorf("diagnosis mismatch (-want +got):\n%s", diff)
	}
}

// user dereferences its receiver in String, so a nil *user must never
// reach it.
type user struct{ name string }

func (u *user) String() string { return "user " + u.name }

var isPresent = describe.NewPredicate("is present", func(u *user) bool { return u != nil })

// lookupAfter returns nil for the first n lookups, then the user.
func lookupAfter(n int) describe.Function[string, *user] {
	return describe.NewFunction("user", func(name string) *user {
		if n > 0 {
			n--
			return nil
		}
		return &user{name: name}
	})
}

func TestWhen_NilValueUntilPresent(t *testing.T) {
	c, clock := newTestChecker(t, poll.NewSchedule(time.Second, time.Minute))

	got, err := When(c, "alice", lookupAfter(2), Satisfies(isPresent))
	if err != nil {
		t.Fatalf("When() error = %v", err)
	}
	if got == nil || got.name != "alice" {
		t.Errorf("When() = %v, want user alice", got)
	}
	if clock.SleepCount() != 2 {
		t.Errorf("SleepCount() = %d, want 2", clock.SleepCount())
	}
}

func TestWhen_NilValueTimedOut(t *testing.T) {
	c, _ := newTestChecker(t, poll.NewSchedule(time.Second, time.Second))

	got, err := When(c, "alice", lookupAfter(100), Satisfies(isPresent))
	if err == nil {
		t.Fatal("When() expected error, got nil")
	}
	if got != nil {
		t.Errorf("When() value = %v, want nil from the final evaluation", got)
	}

	want := strings.Join([]string{
		"alice",
		"Expected: user is present",
		"     but: timed out, polling every 1s for 1s",
		"   final: user was <nil>",
	}, "\n")
	if diff := cmp.Diff(want, err.Error()); diff != "" {
		t.Errorf("diagnosis mismatch (-want +got):\n%s", diff)
	}
}

func TestAssertThatValue_NilSubjectWithMatcher(t *testing.T) {
	c, _ := newTestChecker(t, poll.NewSchedule(time.Second, time.Minute))
	present := match.New("present", func(u *user) bool { return u != nil }, nil)

	err := AssertThatValue(c, (*user)(nil), describe.Identity[*user](), Matches(present))
	if err == nil {
		t.Fatal("AssertThatValue() expected error, got nil")
	}

	want := "<nil>\nExpected: present\n     but: was <nil>"
	if diff := cmp.Diff(want, err.Error()); diff != "" {
		t.Errorf("diagnosis mismatch (-want +got):\n%s", diff)
	}
}

func TestAssertThatValue_LogsThroughChecker(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	clock := polltest.NewClock(epoch)
	c, err := New(
		WithSchedule(poll.NewSchedule(time.Second, time.Minute)),
		WithClock(clock),
		WithSleeper(clock),
		WithLogger(logger),
	)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	_ = AssertThatValue(c, "subject", describe.Identity[string](), Satisfies(isEmpty))
	SatisfiedThatValue(c, "", describe.Identity[string](), Satisfies(isEmpty))

	out := buf.String()
	if n := strings.Count(out, `"msg":"evaluated once"`); n != 2 {
		t.Errorf("got %d evaluated once entries, want 2:\n%s", n, out)
	}
	if !strings.Contains(out, `"satisfied":false`) || !strings.Contains(out, `"satisfied":true`) {
		t.Errorf("log output = %s, want one unsatisfied and one satisfied evaluation", out)
	}
}
