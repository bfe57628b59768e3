package step

import (
	"sync/atomic"
	"time"
)

// futureState is the terminal-state enum for a Future slot.
type futureState int32

const (
	futurePending futureState = iota
	futureResolved
	futureFailed
	futureCancelled
)

// FutureSlot is a single-assignment cell used to bridge ask-pattern replies
// into an actor's synchronous flow. It resolves exactly once: whichever of
// Resolve, Fail, or Cancel wins a compare-and-swap on state is terminal,
// and every later call is a no-op. Because the runtime only ever runs one
// context at a time, the CAS never actually resolves a real race between
// two live goroutines; it documents the "exactly once" guarantee directly
// in the type rather than relying on call order.
type FutureSlot struct {
	id string

	state atomic.Int32

	value   any
	failErr error

	onCancelCbs []func()

	waiter *ExecContext

	runtime     *Runtime
	timeoutDur  time.Duration
	timeoutStop *Cancellable
}

func newFutureSlot(id string, rt *Runtime, timeout time.Duration) *FutureSlot {
	return &FutureSlot{
		id:         id,
		runtime:    rt,
		timeoutDur: timeout,
	}
}

// IsResolved reports whether the slot has reached any terminal state.
func (f *FutureSlot) IsResolved() bool {
	return futureState(f.state.Load()) != futurePending
}

// OnCancel registers cb to run if, and only if, Cancel is the call that
// wins the race to resolve the slot. Callbacks fire in registration order.
func (f *FutureSlot) OnCancel(cb func()) {
	f.onCancelCbs = append(f.onCancelCbs, cb)
}

// Resolve transitions the slot to resolved with value v. Returns false if
// the slot was already terminal.
func (f *FutureSlot) Resolve(v any) bool {
	if !f.state.CompareAndSwap(int32(futurePending), int32(futureResolved)) {
		return false
	}
	f.value = v
	f.timeoutStop.Cancel()
	f.wake(v, nil)
	return true
}

// Fail transitions the slot to failed with err. Returns false if the slot
// was already terminal.
func (f *FutureSlot) Fail(err error) bool {
	if !f.state.CompareAndSwap(int32(futurePending), int32(futureFailed)) {
		return false
	}
	f.failErr = err
	f.timeoutStop.Cancel()
	f.wake(nil, err)
	return true
}

// Cancel transitions the slot to cancelled. Returns false if the slot was
// already terminal. On success, every OnCancel callback runs in
// registration order before any waiter is woken.
func (f *FutureSlot) Cancel() bool {
	if !f.state.CompareAndSwap(int32(futurePending), int32(futureCancelled)) {
		return false
	}
	f.timeoutStop.Cancel()
	f.failErr = newFutureCancelledError(f.id)
	for _, cb := range f.onCancelCbs {
		cb()
	}
	f.wake(nil, f.failErr)
	return true
}

// Await suspends ctx until the slot is resolved, then returns the value,
// the failure, or a cancellation error. If the slot is already resolved
// when Await is called, it returns immediately without suspending.
func (f *FutureSlot) Await(ctx *ExecContext) (any, error) {
	if f.IsResolved() {
		return f.result()
	}

	f.waiter = ctx
	value, err := ctx.suspend(StatusSuspendedFuture)
	f.waiter = nil
	return value, err
}

func (f *FutureSlot) result() (any, error) {
	switch futureState(f.state.Load()) {
	case futureResolved:
		return f.value, nil
	case futureFailed, futureCancelled:
		return nil, f.failErr
	default:
		return nil, nil
	}
}

// wake resumes a suspended awaiter, if any, with the slot's terminal
// outcome. Called from Resolve/Fail/Cancel, which may themselves be
// running from inside a different context's own goroutine (e.g. another
// actor's message handler settling the ask); that is a legitimate nested
// resume, not a reentrant Step.
func (f *FutureSlot) wake(value any, err error) {
	w := f.waiter
	if w == nil {
		return
	}
	f.waiter = nil
	f.runtime.resumeContext(w, value, err)
}
