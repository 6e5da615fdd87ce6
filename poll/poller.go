package poll

import (
	"log/slog"

	"github.com/google/uuid"
)

// Poller evaluates conditions once or repeatedly on a [Schedule].
//
// A Poller holds only its collaborators and may be shared. Each poll starts
// its own [Timer], and polls never run work concurrently: the calling
// goroutine blocks until the condition holds or the schedule expires. There
// is no cancellation; a condition that blocks forever blocks the poll
// forever.
type Poller struct {
	clock   Clock
	sleeper Sleeper
	logger  *slog.Logger
}

// New creates a [Poller] with the given options.
//
// Defaults:
//   - Clock: [SystemClock]
//   - Sleeper: [SystemSleeper]
//   - Logger: [slog.Default]
//
// Returns an error if any option is invalid.
func New(opts ...Option) (*Poller, error) {
	cfg := &pollerConfig{
		clock:   SystemClock(),
		sleeper: SystemSleeper(),
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	logger := cfg.logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Poller{
		clock:   cfg.clock,
		sleeper: cfg.sleeper,
		logger:  logger,
	}, nil
}

// EvaluateOnce evaluates cond exactly once, without a timer.
func (p *Poller) EvaluateOnce(cond func() bool) bool {
	satisfied := cond()
	p.logger.Debug("evaluated once", "satisfied", satisfied)
	return satisfied
}

// PollUntilSatisfiedOrExpired evaluates cond until it returns true or the
// schedule expires, and reports the last result.
//
// cond is evaluated before expiration is checked, so it runs at least once
// even when the schedule's duration is zero or negative.
func (p *Poller) PollUntilSatisfiedOrExpired(schedule Schedule, cond func() bool) bool {
	_, satisfied := p.loop(schedule, cond)
	return satisfied
}

// EvaluateValueOnce applies transform to subject once and tests the value
// with accept, without a timer.
func EvaluateValueOnce[S, V any](p *Poller, subject S, transform func(S) V, accept func(V) bool) Result[V] {
	var v V
	satisfied := p.EvaluateOnce(func() bool {
		v = transform(subject)
		return accept(v)
	})
	return Result[V]{Value: v, Satisfied: satisfied, Attempts: 1}
}

// PollValueUntilSatisfiedOrExpired recomputes transform(subject) and tests it
// with accept until accept returns true or the schedule expires.
//
// The returned [Result] carries the value computed by the final evaluation,
// whether the loop ended on success or on expiry.
func PollValueUntilSatisfiedOrExpired[S, V any](p *Poller, schedule Schedule, subject S, transform func(S) V, accept func(V) bool) Result[V] {
	var last V
	attempts, satisfied := p.loop(schedule, func() bool {
		last = transform(subject)
		return accept(last)
	})
	return Result[V]{Value: last, Satisfied: satisfied, Attempts: attempts}
}

// loop is the retry skeleton shared by both condition shapes.
func (p *Poller) loop(schedule Schedule, cond func() bool) (attempts int, satisfied bool) {
	pollID := uuid.NewString()
	timer := StartTimer(p.clock, p.sleeper, schedule)

	for {
		attempts++
		satisfied = cond()
		p.logger.Debug("poll attempt",
			"poll_id", pollID,
			"attempt", attempts,
			"satisfied", satisfied,
		)
		if satisfied {
			return attempts, true
		}
		if timer.IsExpired() {
			p.logger.Info("poll expired",
				"poll_id", pollID,
				"attempts", attempts,
				"schedule", schedule.String(),
			)
			return attempts, false
		}
		timer.Tick()
	}
}
