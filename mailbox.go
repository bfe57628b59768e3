package step

import (
	"sync/atomic"
	"time"

	"github.com/edwingeng/deque"
)

// Mailbox is a bounded or unbounded FIFO queue of envelopes plus a
// single-slot waiter reference identifying the execution context
// (suspended inside DequeueBlocking) that it will wake next. At most one
// waiter exists at any instant.
//
// The queue is backed by github.com/edwingeng/deque. Mailbox needs no
// locking of its own around it because every mutator (Enqueue,
// Dequeue/DequeueBlocking, the runtime's resume, Close) runs inside the one
// controlling flow the runtime drives.
type Mailbox struct {
	config MailboxConfig
	queue  deque.Deque
	closed atomic.Bool

	// waiter is a direct pointer rather than a registry index: Go's garbage
	// collector reclaims the mailbox-waiter reference cycle just fine, so
	// the indirection buys nothing here. DequeueBlocking sets it just before
	// suspending and clears it after resuming; Step and Close also clear it
	// before resuming the waiter.
	waiter *ExecContext

	// runtime lets Close drive the same resume-and-reap choreography Step
	// uses, even though Close is not itself called from inside Step.
	runtime *Runtime
}

func newMailbox(cfg MailboxConfig, rt *Runtime) *Mailbox {
	return &Mailbox{
		config:  cfg,
		queue:   deque.NewDeque(),
		runtime: rt,
	}
}

// OwnerPath identifies the mailbox's owner for diagnostics and error
// messages.
func (m *Mailbox) OwnerPath() string {
	return m.config.OwnerPath
}

// Count returns the number of envelopes currently queued.
func (m *Mailbox) Count() int {
	return m.queue.Len()
}

// IsEmpty reports whether the queue is currently empty.
func (m *Mailbox) IsEmpty() bool {
	return m.queue.Empty()
}

// IsFull reports whether a bounded mailbox is at capacity. Always false for
// unbounded mailboxes.
func (m *Mailbox) IsFull() bool {
	return m.config.Bounded && m.queue.Len() >= m.config.Capacity
}

// Enqueue appends env to the queue, honoring the configured overflow
// strategy when the mailbox is bounded and full. It fails with
// ErrMailboxClosed if the mailbox has been closed.
func (m *Mailbox) Enqueue(env Envelope) (EnqueueResult, error) {
	if m.closed.Load() {
		return EnqueueDropped, newMailboxClosedError(m.config.OwnerPath)
	}

	if m.IsFull() {
		switch m.config.Overflow {
		case OverflowDropNewest:
			return EnqueueDropped, nil
		case OverflowDropOldest:
			m.queue.PopFront()
			m.queue.PushBack(env)
			return EnqueueAccepted, nil
		case OverflowBackpressure:
			return EnqueueBackpressured, nil
		case OverflowThrow:
			return EnqueueDropped, newMailboxOverflowError(m.config.OwnerPath, m.config.Capacity, m.config.Overflow)
		}
	}

	m.queue.PushBack(env)
	return EnqueueAccepted, nil
}

// Dequeue is the non-blocking half of the mailbox contract: it returns the
// head envelope if present, or ok=false if the queue is empty. It never
// suspends and is not how actor loops are expected to consume a mailbox
// under the step runtime (see DequeueBlocking).
func (m *Mailbox) Dequeue() (Envelope, bool) {
	if m.queue.Empty() {
		return Envelope{}, false
	}
	return m.queue.PopFront().(Envelope), true
}

// DequeueBlocking always suspends ctx first, even if the queue is already
// non-empty: a context never observes a message except by being resumed by
// the runtime's Step. timeout is accepted for interface compatibility with
// the production mailbox and ignored; honoring it would let wall-clock time
// leak into a deterministic run, so tests advance time explicitly via
// Runtime.AdvanceTime instead.
func (m *Mailbox) DequeueBlocking(ctx *ExecContext, timeout time.Duration) (Envelope, error) {
	_ = timeout

	m.waiter = ctx
	_, err := ctx.suspend(StatusSuspendedMailbox)
	m.waiter = nil

	if err != nil {
		return Envelope{}, err
	}

	if env, ok := m.Dequeue(); ok {
		return env, nil
	}

	// Woken with neither a queued message nor an error means Close raced
	// past us; report it the way a closed-and-empty mailbox always does.
	return Envelope{}, newMailboxClosedError(m.config.OwnerPath)
}

// Close marks the mailbox closed. If a waiter is currently suspended, it is
// resumed exactly once so it can observe ErrMailboxClosed and unwind.
// Further Enqueue calls fail with ErrMailboxClosed. The queue is not
// cleared: Dequeue keeps returning any envelopes still queued.
func (m *Mailbox) Close() {
	if !m.closed.CompareAndSwap(false, true) {
		return
	}

	if m.waiter != nil {
		w := m.waiter
		m.waiter = nil
		m.runtime.resumeContext(w, nil, newMailboxClosedError(m.config.OwnerPath))
	}
}
