// Package step provides a deterministic, step-driven execution runtime for
// testing actor systems: no wall-clock time, no OS scheduling, no background
// goroutines racing the test. Progress happens only when the controller asks
// for it.
//
// The core idea is:
//   - Build a [Runtime] with [NewRuntime].
//   - Register mailboxes with [Runtime.CreateMailbox] and execution contexts
//     with [Runtime.Spawn]; a context's loop reads its mailbox with
//     [Mailbox.DequeueBlocking], which always suspends the context rather
//     than returning a buffered message immediately.
//   - Call [Runtime.Step] to deliver exactly one message to exactly one
//     context, or [Runtime.Drain] to deliver until the system goes idle.
//   - Call [Runtime.AdvanceTime] to move the virtual clock forward and fire
//     any timers that come due; timer callbacks run synchronously inside
//     the call and do not themselves drain the mailboxes they may feed.
//
// Concurrency model (high level):
//   - Exactly one execution context is ever running at a time. Contexts are
//     backed by real goroutines, but the runtime holds a strict handshake
//     token (see [Runtime.Step]) that keeps them single-stepping.
//   - Contexts suspend at exactly two points: inside
//     [Mailbox.DequeueBlocking] and inside [FutureSlot.Await].
//
// Cancellation model (high level):
//   - [Runtime.Shutdown] closes every mailbox, waking any suspended waiter
//     so it observes ErrMailboxClosed and terminates its loop.
//   - [Cancellable] is a one-shot flag shared between the runtime, which
//     issues it with a timer, and the caller holding it; cancelling it
//     before the timer's fire_at is crossed means the timer never fires.
package step
