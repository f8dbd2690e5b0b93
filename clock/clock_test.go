// File: clock/clock_test.go
// Author: momentics <momentics@gmail.com>

package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMonotonicMicrosNeverDecreases(t *testing.T) {
	c := New()
	prev := c.MonotonicMicros()
	for i := 0; i < 100; i++ {
		cur := c.MonotonicMicros()
		require.GreaterOrEqual(t, cur, prev)
		prev = cur
	}
}

func TestMonotonicStartsNearZero(t *testing.T) {
	c := New()
	require.Less(t, c.MonotonicMicros(), int64(time.Second.Microseconds()))
}

func TestOffsetShiftsRealtime(t *testing.T) {
	c := New()
	require.Equal(t, int64(0), c.Offset())

	const shift = int64(5_000_000)
	base := c.RealtimeMicros()
	c.SetOffset(shift)
	require.Equal(t, shift, c.Offset())
	require.GreaterOrEqual(t, c.RealtimeMicros(), base+shift)
}
