package step

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestVirtualClockDefaultStartInstant(t *testing.T) {
	rt := NewRuntime()
	require.Equal(t, "2026-01-01T00:00:00+00:00", rfc3339(rt.Clock().Now()))
}

func TestVirtualClockAdvanceIsMonotone(t *testing.T) {
	rt := NewRuntime()
	before := rt.Clock().Now()

	rt.Clock().Advance(250 * time.Millisecond)

	require.Equal(t, before.Add(250*time.Millisecond), rt.Clock().Now())
}

func TestVirtualClockAdvanceRejectsNegativeDuration(t *testing.T) {
	rt := NewRuntime()
	require.Panics(t, func() {
		rt.Clock().Advance(-time.Second)
	})
}

func TestVirtualClockSetCanGoBackward(t *testing.T) {
	rt := NewRuntime()
	rt.Clock().Advance(time.Hour)

	fixture := time.Date(2020, 6, 1, 0, 0, 0, 0, time.UTC)
	rt.Clock().Set(fixture)

	require.True(t, rt.Clock().Now().Equal(fixture))
}

func TestVirtualClockTruncatesToMicroseconds(t *testing.T) {
	rt := NewRuntime()
	rt.Clock().Advance(123456700 * time.Nanosecond)

	require.Equal(t, int64(0), int64(rt.Clock().Now().Nanosecond())%1000)
}

func rfc3339(t time.Time) string {
	return t.Format("2006-01-02T15:04:05-07:00")
}
