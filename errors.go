package step

import (
	"fmt"
	"time"

	"github.com/pingcap/errors"
)

// Error kinds, each a template plus an RFC-style code, instantiated with
// GenWithStackByArgs and compared with Equal/NotEqual rather than type
// assertions.
var (
	// ErrMailboxClosed is raised by Enqueue into a closed mailbox, or by
	// DequeueBlocking when the mailbox is closed with an empty queue.
	ErrMailboxClosed = errors.Normalize(
		"mailbox closed: %s",
		errors.RFCCodeText("STEP:ErrMailboxClosed"),
	)

	// ErrMailboxOverflow is raised by Enqueue under the Throw overflow
	// strategy when the mailbox is at capacity.
	ErrMailboxOverflow = errors.Normalize(
		"mailbox overflow: %s at capacity %d (strategy %s)",
		errors.RFCCodeText("STEP:ErrMailboxOverflow"),
	)

	// ErrAskTimeout is delivered to a future slot's awaiter when its
	// timeout timer fires before the slot is otherwise resolved.
	ErrAskTimeout = errors.Normalize(
		"ask timed out: %s after %s",
		errors.RFCCodeText("STEP:ErrAskTimeout"),
	)

	// ErrFutureCancelled is delivered to a future slot's awaiter when
	// Cancel wins the race to resolve the slot.
	ErrFutureCancelled = errors.Normalize(
		"future cancelled: %s",
		errors.RFCCodeText("STEP:ErrFutureCancelled"),
	)
)

// newMailboxClosedError builds an ErrMailboxClosed instance for the mailbox
// at path.
func newMailboxClosedError(path string) error {
	return ErrMailboxClosed.GenWithStackByArgs(path)
}

// newMailboxOverflowError builds an ErrMailboxOverflow instance describing
// the mailbox at path, its capacity, and the overflow strategy in effect.
func newMailboxOverflowError(path string, capacity int, strategy OverflowStrategy) error {
	return ErrMailboxOverflow.GenWithStackByArgs(path, capacity, strategy)
}

// newAskTimeoutError builds an ErrAskTimeout instance for a future slot that
// timed out after d.
func newAskTimeoutError(path string, d time.Duration) error {
	return ErrAskTimeout.GenWithStackByArgs(path, d)
}

// newFutureCancelledError builds an ErrFutureCancelled instance for the
// future slot at path.
func newFutureCancelledError(path string) error {
	return ErrFutureCancelled.GenWithStackByArgs(path)
}

// String implements fmt.Stringer so OverflowStrategy reads naturally inside
// the error templates above.
func (s OverflowStrategy) String() string {
	switch s {
	case OverflowDropNewest:
		return "drop-newest"
	case OverflowDropOldest:
		return "drop-oldest"
	case OverflowBackpressure:
		return "backpressure"
	case OverflowThrow:
		return "throw"
	default:
		return fmt.Sprintf("OverflowStrategy(%d)", int(s))
	}
}
