package step

import (
	"time"

	"github.com/benbjohnson/clock"
)

// defaultStartInstant is the virtual instant a freshly constructed Runtime's
// clock starts at, absent a WithStartInstant option.
var defaultStartInstant = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

// VirtualClock is the runtime's sole time source. It is mutated only by the
// controller, via Runtime.AdvanceTime or (for fixture setup) Set, never by
// the passage of wall-clock time.
//
// It wraps a *clock.Mock as a swappable Now()/Add() source. The
// timer-firing semantics required here (insertion order, cancellable
// tokens, cadence anchored to the previous fire time) are not delegated to
// the mock's own ticker/timer machinery; they live in timer.go.
type VirtualClock struct {
	mock *clock.Mock
}

func newVirtualClock(start time.Time) *VirtualClock {
	m := clock.NewMock()
	m.Set(start)
	return &VirtualClock{mock: m}
}

// Now returns the current virtual instant, truncated to microsecond
// precision. Repeated calls yield equal values until a mutator runs.
func (c *VirtualClock) Now() time.Time {
	return c.mock.Now().Truncate(time.Microsecond)
}

// Advance moves the clock forward by d. d must be non-negative; a negative
// duration is a programmer error and panics rather than silently going
// backward.
func (c *VirtualClock) Advance(d time.Duration) {
	if d < 0 {
		panic("step: VirtualClock.Advance called with a negative duration")
	}
	c.mock.Add(d)
}

// Set moves the clock to t unconditionally, including backward. Intended for
// fixture setup only.
func (c *VirtualClock) Set(t time.Time) {
	c.mock.Set(t)
}
