// File: channel/channel_test.go
// Author: momentics <momentics@gmail.com>

package channel

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestPushIDsMonotonic(t *testing.T) {
	c := New("test")
	id0 := c.Push([]byte("a"))
	id1 := c.Push([]byte("b"))
	id2 := c.Push([]byte("c"))
	require.True(t, id0 < id1)
	require.True(t, id1 < id2)
}

// TestSupplyReadRoundTrip covers scenario 5: thread A supply("msg",
// timeout=1s) returns (true, id) once thread B's Read has advanced the
// cursor past id, with has_read(id) automatically true as a consequence —
// no separate ack call.
func TestSupplyReadRoundTrip(t *testing.T) {
	c := New("test")
	reader := make(chan struct{})

	go func() {
		require.True(t, c.Demand(time.Second))
		data, _, ok := c.Read()
		require.True(t, ok)
		require.Equal(t, "msg", string(data))
		close(reader)
	}()

	delivered, id := c.Supply([]byte("msg"), time.Second)
	require.True(t, delivered)

	select {
	case <-reader:
	case <-time.After(2 * time.Second):
		t.Fatal("reader never observed the push")
	}
	require.True(t, c.HasRead(id))
}

// TestSupplyTimesOutWithoutAReader covers the non-delivery path: with no
// reader ever draining the channel, Supply's wait expires and it reports
// delivered=false while still returning the pushed id.
func TestSupplyTimesOutWithoutAReader(t *testing.T) {
	c := New("test")
	delivered, id := c.Supply([]byte("msg"), 20*time.Millisecond)
	require.False(t, delivered)
	require.False(t, c.HasRead(id))
	require.Equal(t, 1, c.GetCount())
}

func TestDemandTimesOutWhenEmpty(t *testing.T) {
	c := New("test")
	require.False(t, c.Demand(20*time.Millisecond))
}

func TestGetCountTracksUnreadDepth(t *testing.T) {
	c := New("test")
	c.Push([]byte("x"))
	c.Push([]byte("y"))
	require.Equal(t, 2, c.GetCount())
	_, _, _ = c.Read()
	require.Equal(t, 1, c.GetCount())
}
