package surface

import "time"

// Scheduler is the host's single-threaded dispatch loop, reduced to the two
// deferrals the binding needs: a next-turn callback and a cancellable
// debounce. Newer debounce calls under the same id cancel the pending one —
// the only cancellation semantic in the system.
type Scheduler interface {
	// Defer queues fn to run on the next dispatch turn.
	Defer(fn func())
	// Debounce schedules fn after d, replacing any pending fn under id.
	Debounce(id string, d time.Duration, fn func())
	// CancelDebounce drops a pending debounce, if any.
	CancelDebounce(id string)
}

// StepScheduler is a deterministic Scheduler driven by an explicit clock.
// Tests and the in-memory surface call Step to run a dispatch turn and
// Advance to move time forward.
type StepScheduler struct {
	deferred []func()
	pending  map[string]*debounced
}

type debounced struct {
	remaining time.Duration
	fn        func()
}

// NewStepScheduler builds an empty scheduler.
func NewStepScheduler() *StepScheduler {
	return &StepScheduler{pending: map[string]*debounced{}}
}

// Defer implements Scheduler.
func (s *StepScheduler) Defer(fn func()) {
	s.deferred = append(s.deferred, fn)
}

// Debounce implements Scheduler.
func (s *StepScheduler) Debounce(id string, d time.Duration, fn func()) {
	s.pending[id] = &debounced{remaining: d, fn: fn}
}

// CancelDebounce implements Scheduler.
func (s *StepScheduler) CancelDebounce(id string) {
	delete(s.pending, id)
}

// Step runs one dispatch turn: every callback deferred so far, in order.
// Callbacks deferred while stepping run on the next turn.
func (s *StepScheduler) Step() {
	run := s.deferred
	s.deferred = nil
	for _, fn := range run {
		fn()
	}
}

// Advance moves the clock forward, firing debounced callbacks whose deadline
// passes. Fired callbacks run immediately, on this turn.
func (s *StepScheduler) Advance(d time.Duration) {
	var due []func()
	for id, p := range s.pending {
		p.remaining -= d
		if p.remaining <= 0 {
			due = append(due, p.fn)
			delete(s.pending, id)
		}
	}
	for _, fn := range due {
		fn()
	}
}

// HasPending reports whether a debounce is waiting under id.
func (s *StepScheduler) HasPending(id string) bool {
	_, ok := s.pending[id]
	return ok
}
