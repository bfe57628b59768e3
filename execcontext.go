package step

import "sync/atomic"

// ContextStatus is a tagged enum modeling a resumable computation over a
// finite, static set of suspension points: an execution context is always
// in exactly one of these.
type ContextStatus int32

const (
	// StatusNotStarted is the state of a freshly spawned context before its
	// first Step start-phase visit.
	StatusNotStarted ContextStatus = iota
	// StatusSuspendedMailbox means the context is parked inside
	// Mailbox.DequeueBlocking (suspension reason step_wait).
	StatusSuspendedMailbox
	// StatusSuspendedFuture means the context is parked inside
	// FutureSlot.Await (suspension reason future_wait).
	StatusSuspendedFuture
	// StatusRunning means the context's goroutine is currently executing
	// straight-line actor code between suspension points.
	StatusRunning
	// StatusTerminated means the context's loop has returned; it has been
	// (or is about to be) removed from the runtime's registry.
	StatusTerminated
)

func (s ContextStatus) String() string {
	switch s {
	case StatusNotStarted:
		return "not-started"
	case StatusSuspendedMailbox:
		return "suspended-on-mailbox"
	case StatusSuspendedFuture:
		return "suspended-on-future"
	case StatusRunning:
		return "running"
	case StatusTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// resumeMsg is what the runtime hands back to a parked context's goroutine.
type resumeMsg struct {
	value any
	err   error
}

// parkMsg is what a context's goroutine reports back to whoever drove it
// (start or resume), either "I suspended" or "I terminated".
type parkMsg struct {
	terminated bool
	err        error
}

// ExecContext is a suspendable, resumable unit running one actor's
// message-processing loop. It is backed by a real goroutine, but the
// runtime's handshake (resumeCh/parkCh) guarantees only one goroutine is
// ever unblocked at a time: a single token, realized with channels instead
// of a condition variable.
//
// Contexts own nothing of the runtime; the runtime exclusively owns
// creation, resumption, and removal.
type ExecContext struct {
	id   string
	loop ActorLoop

	status atomic.Int32

	resumeCh chan resumeMsg
	parkCh   chan parkMsg

	// goid is captured once, when the context's single goroutine starts,
	// and used only by the debug-build assertions in assert_debug.go.
	goid uint64
}

func newExecContext(id string, loop ActorLoop) *ExecContext {
	return &ExecContext{
		id:       id,
		loop:     loop,
		resumeCh: make(chan resumeMsg),
		parkCh:   make(chan parkMsg),
	}
}

// ID returns the context's stable identifier, of the form "step-<n>".
func (c *ExecContext) ID() string {
	return c.id
}

// Status returns the context's current tagged state.
func (c *ExecContext) Status() ContextStatus {
	return ContextStatus(c.status.Load())
}

// start launches the context's goroutine and blocks until it first
// suspends or terminates. Called exactly once per context, by the runtime,
// never by the context itself.
func (c *ExecContext) start() parkMsg {
	go func() {
		c.goid = goid()
		c.status.Store(int32(StatusRunning))
		err := c.loop(c)
		c.status.Store(int32(StatusTerminated))
		c.parkCh <- parkMsg{terminated: true, err: err}
	}()
	return <-c.parkCh
}

// resume hands control back to a context parked in suspend, delivering
// value/err as the return of whichever call suspended it (DequeueBlocking
// or Await), and blocks until the context next suspends or terminates.
//
// Must be called by the runtime; never by the context's own goroutine.
func (c *ExecContext) resume(value any, err error) parkMsg {
	c.assertOutside()
	c.status.Store(int32(StatusRunning))
	c.resumeCh <- resumeMsg{value: value, err: err}
	return <-c.parkCh
}

// suspend parks the calling goroutine with the given reason until the
// runtime calls resume. Must be called from inside the context's own
// goroutine: it is the crux of the two suspension points a loop may hit.
func (c *ExecContext) suspend(reason ContextStatus) (any, error) {
	c.assertInside()
	c.status.Store(int32(reason))
	c.parkCh <- parkMsg{}
	msg := <-c.resumeCh
	return msg.value, msg.err
}
