package step

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFutureSlotResolveIsTerminal(t *testing.T) {
	rt := NewRuntime()
	f := rt.CreateFutureSlot(time.Minute)

	require.True(t, f.Resolve("answer"))
	require.False(t, f.Resolve("ignored"))
	require.False(t, f.Fail(newFutureCancelledError("x")))
	require.False(t, f.Cancel())
	require.True(t, f.IsResolved())
}

func TestFutureSlotOnCancelFiresOnlyWhenCancelWins(t *testing.T) {
	rt := NewRuntime()
	f := rt.CreateFutureSlot(time.Minute)

	var order []int
	f.OnCancel(func() { order = append(order, 1) })
	f.OnCancel(func() { order = append(order, 2) })

	require.True(t, f.Resolve("resolved first"))
	require.Empty(t, order, "OnCancel callbacks must not fire when Resolve wins")

	other := rt.CreateFutureSlot(time.Minute)
	other.OnCancel(func() { order = append(order, 1) })
	other.OnCancel(func() { order = append(order, 2) })
	require.True(t, other.Cancel())
	require.Equal(t, []int{1, 2}, order)
}

func TestFutureSlotAwaitReturnsImmediatelyIfAlreadyResolved(t *testing.T) {
	rt := NewRuntime()
	f := rt.CreateFutureSlot(time.Minute)
	f.Resolve(42)

	rt.Spawn(func(ctx *ExecContext) error {
		v, err := f.Await(ctx)
		if err != nil {
			return err
		}
		if v != 42 {
			panic("unexpected value")
		}
		return nil
	})

	require.False(t, rt.Step())
	require.Empty(t, rt.Contexts(), "the loop returned nil without ever suspending, so it terminates on start")
}

func TestFutureSlotAwaitSuspendsAndWakesOnResolve(t *testing.T) {
	rt := NewRuntime()
	f := rt.CreateFutureSlot(time.Minute)

	var got any
	var gotErr error
	rt.Spawn(func(ctx *ExecContext) error {
		v, err := f.Await(ctx)
		got = v
		gotErr = err
		return err
	})

	require.False(t, rt.Step()) // starts the context; it parks on the future, nothing to scan for
	require.True(t, f.Resolve("reply"))

	require.NoError(t, gotErr)
	require.Equal(t, "reply", got)
	require.Empty(t, rt.Contexts(), "the loop should have terminated after Await returned")
}

func TestFutureSlotTimesOutViaAdvanceTime(t *testing.T) {
	rt := NewRuntime()
	f := rt.CreateFutureSlot(time.Second)

	var gotErr error
	rt.Spawn(func(ctx *ExecContext) error {
		_, err := f.Await(ctx)
		gotErr = err
		return err
	})

	require.False(t, rt.Step())
	rt.AdvanceTime(time.Second)

	require.Error(t, gotErr)
	require.True(t, ErrAskTimeout.Equal(gotErr))
}

func TestFutureSlotCancelDeliversFutureCancelledToAwaiter(t *testing.T) {
	rt := NewRuntime()
	f := rt.CreateFutureSlot(time.Minute)

	var gotErr error
	rt.Spawn(func(ctx *ExecContext) error {
		_, err := f.Await(ctx)
		gotErr = err
		return err
	})

	require.False(t, rt.Step())
	require.True(t, f.Cancel())

	require.Error(t, gotErr)
	require.True(t, ErrFutureCancelled.Equal(gotErr))
}

func TestFutureSlotResolveCancelsItsOwnTimeoutTimer(t *testing.T) {
	rt := NewRuntime()
	f := rt.CreateFutureSlot(time.Second)
	require.True(t, f.Resolve("reply"))
	require.True(t, f.timeoutStop.IsCancelled())

	rt.AdvanceTime(time.Hour)

	require.Equal(t, "reply", f.value)
}
