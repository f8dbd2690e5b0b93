// File: clock/clock.go
// Author: momentics <momentics@gmail.com>
//
// Monotonic microsecond counter zeroed at process start, paired with a
// realtime counter and an adjustable offset mapping one to the other. The
// frame pump drives off the monotonic counter exclusively.

package clock

import (
	"sync/atomic"
	"time"
)

// Clock is a monotonic + realtime time source with an adjustable offset.
type Clock struct {
	start  time.Time
	offset atomic.Int64 // microseconds added to realtime conversions
}

// New returns a Clock zeroed at the moment of construction.
func New() *Clock {
	return &Clock{start: time.Now()}
}

// MonotonicMicros returns microseconds elapsed since the clock was
// constructed.
func (c *Clock) MonotonicMicros() int64 {
	return time.Since(c.start).Microseconds()
}

// Now returns the current monotonic instant as a time.Duration since start,
// convenient for interval arithmetic.
func (c *Clock) Now() time.Duration {
	return time.Since(c.start)
}

// RealtimeMicros returns wall-clock microseconds since the Unix epoch, plus
// the adjustable offset.
func (c *Clock) RealtimeMicros() int64 {
	return time.Now().UnixMicro() + c.offset.Load()
}

// SetOffset adjusts the mapping between monotonic and realtime readings.
func (c *Clock) SetOffset(micros int64) {
	c.offset.Store(micros)
}

// Offset returns the currently configured offset.
func (c *Clock) Offset() int64 {
	return c.offset.Load()
}
