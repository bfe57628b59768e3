package step

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRepeatingTimerCadenceOverThreePointOneSeconds(t *testing.T) {
	rt := NewRuntime()

	count := 0
	rt.ScheduleRepeatedly(time.Second, time.Second, func() {
		count++
	})

	rt.AdvanceTime(500 * time.Millisecond)
	require.Equal(t, 0, count)

	rt.AdvanceTime(600 * time.Millisecond)
	require.Equal(t, 1, count)

	rt.AdvanceTime(time.Second)
	require.Equal(t, 2, count)

	rt.AdvanceTime(time.Second)
	require.Equal(t, 3, count)
}

func TestCancelledOneShotTimerNeverFires(t *testing.T) {
	rt := NewRuntime()

	fired := false
	cancellable := rt.ScheduleOnce(time.Second, func() {
		fired = true
	})

	require.True(t, cancellable.Cancel())
	rt.AdvanceTime(10 * time.Second)

	require.False(t, fired)
}

func TestRepeatingTimerCadenceFormulaHoldsForASingleLargeAdvance(t *testing.T) {
	rt := NewRuntime()

	const initialDelay = time.Second
	const period = 700 * time.Millisecond
	const total = 5 * time.Second

	count := 0
	rt.ScheduleRepeatedly(initialDelay, period, func() {
		count++
	})

	rt.AdvanceTime(total)

	expected := int((total-initialDelay)/period) + 1
	require.Equal(t, expected, count)
}

func TestOneShotTimerFiresExactlyOnce(t *testing.T) {
	rt := NewRuntime()

	count := 0
	rt.ScheduleOnce(time.Second, func() {
		count++
	})

	rt.AdvanceTime(10 * time.Second)
	require.Equal(t, 1, count)

	rt.AdvanceTime(10 * time.Second)
	require.Equal(t, 1, count)
}

func TestTimerCallbacksFireInInsertionOrderWhenBothDue(t *testing.T) {
	rt := NewRuntime()

	var order []string
	rt.ScheduleOnce(time.Second, func() { order = append(order, "first") })
	rt.ScheduleOnce(time.Second, func() { order = append(order, "second") })

	rt.AdvanceTime(time.Second)

	require.Equal(t, []string{"first", "second"}, order)
}

func TestAdvanceTimeDoesNotImplicitlyDrainMailboxes(t *testing.T) {
	rt := NewRuntime()
	mb := rt.CreateMailbox(MailboxConfig{OwnerPath: "alpha"})

	rt.ScheduleOnce(time.Second, func() {
		_, _ = mb.Enqueue(Envelope{Payload: "woken"})
	})

	rt.AdvanceTime(time.Second)

	require.Equal(t, 1, rt.PendingMessageCount())
}
