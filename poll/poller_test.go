package poll

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/jpalmerr/eventually/poll/polltest"
)

// sequence returns a condition that yields results in order and counts calls.
// Calls past the end repeat the last result.
func sequence(calls *int, results ...bool) func() bool {
	return func() bool {
		i := *calls
		*calls++
		if i >= len(results) {
			return results[len(results)-1]
		}
		return results[i]
	}
}

func TestNew_NilOptions(t *testing.T) {
	tests := []struct {
		name string
		opt  Option
		want string
	}{
		{"clock", WithClock(nil), "clock cannot be nil"},
		{"sleeper", WithSleeper(nil), "sleeper cannot be nil"},
		{"logger", WithLogger(nil), "logger cannot be nil"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.opt)
			if err == nil {
				t.Fatal("New() expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("New() error = %v, want %q", err, tt.want)
			}
		})
	}
}

func TestPoller_NonPositiveDurationEvaluatesOnce(t *testing.T) {
	for _, d := range []time.Duration{0, -time.Second} {
		for _, result := range []bool{true, false} {
			p, clock := newTestPoller(t)
			var calls int

			got := p.PollUntilSatisfiedOrExpired(NewSchedule(time.Second, d), sequence(&calls, result))

			if got != result {
				t.Errorf("duration %v: PollUntilSatisfiedOrExpired() = %v, want %v", d, got, result)
			}
			if calls != 1 {
				t.Errorf("duration %v: condition evaluated %d times, want 1", d, calls)
			}
			if clock.SleepCount() != 0 {
				t.Errorf("duration %v: SleepCount() = %d, want 0", d, clock.SleepCount())
			}
		}
	}
}

func TestPoller_SatisfiedOnFourthEvaluation(t *testing.T) {
	p, clock := newTestPoller(t)
	var calls int

	got := p.PollUntilSatisfiedOrExpired(
		NewSchedule(time.Second, 3*time.Second),
		sequence(&calls, false, false, false, true),
	)

	if !got {
		t.Error("PollUntilSatisfiedOrExpired() = false, want true")
	}
	if calls != 4 {
		t.Errorf("condition evaluated %d times, want 4", calls)
	}
	if clock.SleepCount() != 3 {
		t.Errorf("SleepCount() = %d, want 3", clock.SleepCount())
	}
}

func TestPoller_ExhaustedSchedule(t *testing.T) {
	p, clock := newTestPoller(t)
	schedule := NewSchedule(time.Second, 3*time.Second)
	var calls int

	got := p.PollUntilSatisfiedOrExpired(schedule, sequence(&calls, false))

	if got {
		t.Error("PollUntilSatisfiedOrExpired() = true, want false")
	}
	if clock.SleepCount() != 3 {
		t.Errorf("SleepCount() = %d, want 3", clock.SleepCount())
	}
	if calls != 4 {
		t.Errorf("condition evaluated %d times, want 4", calls)
	}

	// the poll ended exactly on the expiration instant
	timer := &Timer{clock: clock, expiration: epoch.Add(schedule.Duration())}
	if !timer.IsExpired() {
		t.Error("IsExpired() = false at end of poll, want true")
	}
	if !clock.Now().Equal(epoch.Add(3 * time.Second)) {
		t.Errorf("Now() = %v, want %v", clock.Now(), epoch.Add(3*time.Second))
	}
}

func TestPoller_SatisfiedAfterExpiryStillCounts(t *testing.T) {
	p, clock := newTestPoller(t)
	var calls int

	// the condition is slow enough that it is already expired when it succeeds
	got := p.PollUntilSatisfiedOrExpired(NewSchedule(time.Second, time.Second), func() bool {
		calls++
		clock.Advance(5 * time.Second)
		return true
	})

	if !got {
		t.Error("PollUntilSatisfiedOrExpired() = false, want true")
	}
	if calls != 1 {
		t.Errorf("condition evaluated %d times, want 1", calls)
	}
}

func TestPoller_SlowEvaluationKeepsAlignment(t *testing.T) {
	p, clock := newTestPoller(t)
	var calls int

	p.PollUntilSatisfiedOrExpired(NewSchedule(time.Second, 10*time.Second), func() bool {
		calls++
		if calls == 2 {
			clock.Advance(1500 * time.Millisecond)
		}
		return calls == 4
	})

	// boundaries at 1s, 3s (2s missed during the slow evaluation), 4s
	want := []time.Duration{time.Second, 500 * time.Millisecond, time.Second}
	got := clock.Sleeps()
	if len(got) != len(want) {
		t.Fatalf("Sleeps() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sleep %d = %v, want %v", i+1, got[i], want[i])
		}
	}
}

func TestPoller_EvaluateOnce(t *testing.T) {
	p, clock := newTestPoller(t)
	var calls int

	if p.EvaluateOnce(sequence(&calls, false)) {
		t.Error("EvaluateOnce() = true, want false")
	}
	if calls != 1 || clock.SleepCount() != 0 {
		t.Errorf("calls = %d, sleeps = %d; want 1 and 0", calls, clock.SleepCount())
	}
}

func TestPollValue_CarriesFinalValueOnSuccess(t *testing.T) {
	p, _ := newTestPoller(t)
	counter := 0

	result := PollValueUntilSatisfiedOrExpired(p, NewSchedule(time.Second, time.Minute), "queue",
		func(string) int {
			counter++
			return counter
		},
		func(n int) bool { return n >= 3 },
	)

	if !result.Satisfied {
		t.Error("Satisfied = false, want true")
	}
	if result.Value != 3 {
		t.Errorf("Value = %d, want 3", result.Value)
	}
	if result.Attempts != 3 {
		t.Errorf("Attempts = %d, want 3", result.Attempts)
	}
}

func TestPollValue_CarriesFinalValueOnExpiry(t *testing.T) {
	p, clock := newTestPoller(t)
	counter := 0

	result := PollValueUntilSatisfiedOrExpired(p, NewSchedule(time.Second, 2*time.Second), "queue",
		func(string) int {
			counter++
			return counter * 10
		},
		func(int) bool { return false },
	)

	if result.Satisfied {
		t.Error("Satisfied = true, want false")
	}
	if result.Value != 30 {
		t.Errorf("Value = %d, want 30 from the third evaluation", result.Value)
	}
	if clock.SleepCount() != 2 {
		t.Errorf("SleepCount() = %d, want 2", clock.SleepCount())
	}
}

func TestEvaluateValueOnce(t *testing.T) {
	p, clock := newTestPoller(t)
	result := EvaluateValueOnce(p, "abc", func(s string) int { return len(s) }, func(n int) bool { return n == 0 })

	if result.Satisfied {
		t.Error("Satisfied = true, want false")
	}
	if result.Value != 3 || result.Attempts != 1 {
		t.Errorf("Result = %+v, want Value 3 after 1 attempt", result)
	}
	if clock.SleepCount() != 0 {
		t.Errorf("SleepCount() = %d, want 0", clock.SleepCount())
	}
}

func TestPoller_EvaluateOnceLogsResult(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	p, err := New(WithLogger(logger))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	EvaluateValueOnce(p, "abc", func(s string) int { return len(s) }, func(n int) bool { return n == 3 })

	out := buf.String()
	if !strings.Contains(out, `"msg":"evaluated once"`) || !strings.Contains(out, `"satisfied":true`) {
		t.Errorf("log output = %s, want an evaluated once entry with satisfied true", out)
	}
}

func TestPoller_LogsCorrelatedAttempts(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	clock := polltest.NewClock(epoch)
	p, err := New(WithClock(clock), WithSleeper(clock), WithLogger(logger))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	var calls int

	p.PollUntilSatisfiedOrExpired(NewSchedule(time.Second, time.Second), sequence(&calls, false))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d log lines, want 3 (two attempts and expiry):\n%s", len(lines), buf.String())
	}

	ids := make(map[string]bool)
	for _, line := range lines {
		var entry map[string]any
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			t.Fatalf("invalid JSON log line %q: %v", line, err)
		}
		id, _ := entry["poll_id"].(string)
		if id == "" {
			t.Errorf("log line missing poll_id: %s", line)
		}
		ids[id] = true
	}
	if len(ids) != 1 {
		t.Errorf("log lines carry %d distinct poll_id values, want 1", len(ids))
	}
	if !strings.Contains(lines[2], `"msg":"poll expired"`) {
		t.Errorf("last log line = %s, want poll expired", lines[2])
	}
}
