package application

import "sync"

// Runner executes at most one long-running operation at a time on a
// background goroutine. Tagging and organizing must never interleave against
// the same account, so a second Start while a run is active is refused.
type Runner struct {
	mu     sync.Mutex
	active bool
}

// Start runs fn on a new goroutine. It returns ErrRunActive if another run
// has not finished yet.
func (r *Runner) Start(fn func()) error {
	r.mu.Lock()
	if r.active {
		r.mu.Unlock()
		return ErrRunActive
	}
	r.active = true
	r.mu.Unlock()

	go func() {
		defer func() {
			r.mu.Lock()
			r.active = false
			r.mu.Unlock()
		}()
		fn()
	}()
	return nil
}

// Active reports whether a run is in flight.
func (r *Runner) Active() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.active
}
