//go:build debug

package step

import (
	"fmt"
	"runtime"
)

func goid() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)

	// "goroutine 123 [running]:\n"
	var id uint64
	_, _ = fmt.Sscanf(string(buf[:n]), "goroutine %d ", &id)
	return id
}

// assertInside panics if called outside this context's own goroutine (debug only).
//
// DequeueBlocking and FutureSlot.Await must run on the execution context's own
// goroutine; calling them from the controller or from a different context would
// silently break the one-suspension-point-at-a-time invariant.
func (c *ExecContext) assertInside() {
	if c.goid != goid() {
		panic(
			fmt.Sprintf(
				"step: contract violation: method must be called from the %s goroutine; "+
					"it is a suspension point and may only be invoked from inside the context's own run loop",
				c.id,
			),
		)
	}
}

// assertOutside panics if called inside this context's own goroutine (debug only).
//
// It guards resume: a context must never resume itself from its own
// goroutine. Other operations (Step, AdvanceTime, Enqueue) are not checked.
func (c *ExecContext) assertOutside() {
	if c.goid == goid() {
		panic(
			fmt.Sprintf(
				"step: contract violation: method must be called from outside the %s goroutine; "+
					"the controller, not the context, owns this operation",
				c.id,
			),
		)
	}
}
