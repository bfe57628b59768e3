package step

import "sync/atomic"

// Cancellable is a single-writer, single-reader one-shot flag shared between
// a timer's issuer (the runtime) and its holder (the caller of ScheduleOnce
// or ScheduleRepeatedly). There is no wake-up protocol: holders are polled
// at well-defined observation points.
type Cancellable struct {
	cancelled atomic.Bool
}

// newCancellable returns a fresh, not-yet-cancelled token.
func newCancellable() *Cancellable {
	return &Cancellable{}
}

// Cancel marks the token cancelled. Idempotent: calling it more than once has
// no further effect. Returns true if this call is the one that won the race,
// false if the token was already cancelled.
func (c *Cancellable) Cancel() bool {
	return c.cancelled.CompareAndSwap(false, true)
}

// IsCancelled reports whether Cancel has been called.
func (c *Cancellable) IsCancelled() bool {
	return c.cancelled.Load()
}
