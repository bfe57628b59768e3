package step

import (
	"fmt"
	"sync/atomic"
	"time"
)

// Runtime is the step runtime: it owns and orders every VirtualClock,
// Mailbox, ExecContext, timer, and FutureSlot it creates, and exposes the
// step API, the creation API, and inspection. It carries no package-level
// mutable singleton, since two tests sharing a process would otherwise
// silently share state. Every test constructs its own Runtime.
type Runtime struct {
	clock *VirtualClock

	mailboxes []*Mailbox

	contexts      []*ExecContext
	nextContextID int

	nextFutureID int

	timers []*timerEntry

	running atomic.Bool
}

// Option configures a Runtime at construction time.
type Option func(*Runtime)

// WithStartInstant overrides the default start instant
// (2026-01-01T00:00:00Z) for fixture setup.
func WithStartInstant(t time.Time) Option {
	return func(r *Runtime) {
		r.clock.Set(t)
	}
}

// NewRuntime constructs a fresh, empty step runtime.
func NewRuntime(opts ...Option) *Runtime {
	r := &Runtime{
		clock: newVirtualClock(defaultStartInstant),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Name identifies this runtime implementation.
func (r *Runtime) Name() string {
	return "step"
}

// Clock returns the runtime's virtual clock. It is the same instance used
// internally by timers, so observations made through it are consistent
// with what drives timer firing.
func (r *Runtime) Clock() *VirtualClock {
	return r.clock
}

// IsRunning reports whether Run is currently draining the runtime. It
// exists for interface compatibility with the production runtime; the step
// runtime's own callers drive progress explicitly via Step/Drain regardless
// of this flag.
func (r *Runtime) IsRunning() bool {
	return r.running.Load()
}

// CreateMailbox constructs a mailbox and registers it in creation order.
func (r *Runtime) CreateMailbox(cfg MailboxConfig) *Mailbox {
	mb := newMailbox(cfg, r)
	r.mailboxes = append(r.mailboxes, mb)
	return mb
}

// Mailboxes returns the runtime's mailboxes in creation order, for tests and
// diagnostics that need to see registration order directly.
func (r *Runtime) Mailboxes() []*Mailbox {
	out := make([]*Mailbox, len(r.mailboxes))
	copy(out, r.mailboxes)
	return out
}

// Spawn wraps loop in a fresh execution context, assigns it an id of the
// form "step-<n>" (monotone, starting at 0), and registers it in creation
// order. The context is not started until the next Step.
func (r *Runtime) Spawn(loop ActorLoop) string {
	id := fmt.Sprintf("step-%d", r.nextContextID)
	r.nextContextID++

	ctx := newExecContext(id, loop)
	r.contexts = append(r.contexts, ctx)
	return id
}

// Contexts returns the runtime's still-registered execution contexts in
// creation order. Terminated contexts are removed from this list as soon as
// the runtime observes them terminate: when started or resumed by Step, or
// resumed by Mailbox.Close, Shutdown, or a FutureSlot settling (including
// from a timer inside AdvanceTime).
func (r *Runtime) Contexts() []*ExecContext {
	out := make([]*ExecContext, len(r.contexts))
	copy(out, r.contexts)
	return out
}

// Context looks up a still-registered execution context by id.
func (r *Runtime) Context(id string) (*ExecContext, bool) {
	for _, ctx := range r.contexts {
		if ctx.ID() == id {
			return ctx, true
		}
	}
	return nil, false
}

// CreateFutureSlot creates a future slot and installs a one-shot timer that
// fails it with ErrAskTimeout after timeout virtual time has elapsed,
// unless the slot is resolved, failed, or cancelled first.
func (r *Runtime) CreateFutureSlot(timeout time.Duration) *FutureSlot {
	id := fmt.Sprintf("future-%d", r.nextFutureID)
	r.nextFutureID++

	f := newFutureSlot(id, r, timeout)
	f.timeoutStop = r.ScheduleOnce(timeout, func() {
		f.Fail(newAskTimeoutError(id, timeout))
	})
	return f
}

// Yield is a no-op: there is no cooperative contention for the step runtime
// to yield away from, since at most one context ever runs at a time.
func (r *Runtime) Yield() {}

// Sleep is deliberately inert. A caller expecting wall-clock time to pass
// will hang forever; tests must use AdvanceTime instead. It keeps the
// signature a production Runtime would carry, without giving it any
// real-time behavior, to preserve determinism.
func (r *Runtime) Sleep(d time.Duration) {
	logger.Debug("step: Sleep is a no-op under the step runtime; use AdvanceTime", "duration", d)
}

// startContext starts ctx and reaps it immediately if it terminates without
// ever suspending.
func (r *Runtime) startContext(ctx *ExecContext) {
	msg := ctx.start()
	if msg.terminated {
		r.removeContext(ctx)
	}
}

// resumeContext is the one choreography shared by Step's scan phase,
// Mailbox.Close, and FutureSlot settlement: hand control to ctx, block
// until it next suspends or terminates, and reap it if it terminated.
func (r *Runtime) resumeContext(ctx *ExecContext, value any, err error) {
	msg := ctx.resume(value, err)
	if msg.terminated {
		r.removeContext(ctx)
	}
}

func (r *Runtime) removeContext(target *ExecContext) {
	for i, ctx := range r.contexts {
		if ctx == target {
			r.contexts = append(r.contexts[:i], r.contexts[i+1:]...)
			return
		}
	}
}

// Step advances the system by exactly one user-observable unit of work.
//
// Start phase: every registered context that has never been started is
// started, in creation order, running until its first suspension or
// termination. Scan phase: mailboxes are visited in creation order; the
// first one with both a non-empty queue and a suspended waiter has that
// waiter resumed once, and Step returns true. If no mailbox matched, Step
// returns false; it never processes more than one envelope per call.
func (r *Runtime) Step() bool {
	// Snapshot before the start phase: startContext can remove a context
	// from r.contexts (if it terminates without ever suspending), which
	// would shift the backing array out from under a live range over
	// r.contexts itself.
	unstarted := make([]*ExecContext, 0, len(r.contexts))
	for _, ctx := range r.contexts {
		if ctx.Status() == StatusNotStarted {
			unstarted = append(unstarted, ctx)
		}
	}
	for _, ctx := range unstarted {
		r.startContext(ctx)
	}

	for _, mb := range r.mailboxes {
		if mb.IsEmpty() {
			continue
		}
		if mb.waiter == nil || mb.waiter.Status() != StatusSuspendedMailbox {
			continue
		}

		waiter := mb.waiter
		mb.waiter = nil
		r.resumeContext(waiter, nil, nil)
		return true
	}

	return false
}

// Drain calls Step repeatedly until it returns false, and returns how many
// envelopes were delivered.
func (r *Runtime) Drain() int {
	delivered := 0
	for r.Step() {
		delivered++
	}
	return delivered
}

// Run marks the runtime running, drains it, then clears the flag. Provided
// for interface compatibility with the production runtime, which uses
// "running" to mean something closer to "has a live event loop"; here it is
// purely observable bookkeeping around a single Drain call.
func (r *Runtime) Run() {
	r.running.Store(true)
	defer r.running.Store(false)
	r.Drain()
}

// Shutdown clears the running flag, closes every registered mailbox (waking
// any suspended waiters, which then observe ErrMailboxClosed and terminate),
// and removes the contexts that terminate as a result. timeout is accepted
// for interface compatibility with the production runtime and ignored, since
// there is no real time for it to bound.
func (r *Runtime) Shutdown(timeout time.Duration) {
	_ = timeout
	r.running.Store(false)

	for _, mb := range r.mailboxes {
		mb.Close()
	}
}

// PendingMessageCount returns the sum of every mailbox's queue length.
func (r *Runtime) PendingMessageCount() int {
	total := 0
	for _, mb := range r.mailboxes {
		total += mb.Count()
	}
	return total
}

// IsIdle reports whether Step would currently return false (no mailbox has
// both a non-empty queue and a suspended waiter), modulo any not-yet-started
// contexts, which Step always starts first.
func (r *Runtime) IsIdle() bool {
	for _, mb := range r.mailboxes {
		if !mb.IsEmpty() && mb.waiter != nil && mb.waiter.Status() == StatusSuspendedMailbox {
			return false
		}
	}
	return true
}
