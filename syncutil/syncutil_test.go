// File: syncutil/syncutil_test.go
// Author: momentics <momentics@gmail.com>

package syncutil

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestOneShotEventWaitReturnsAfterSignal(t *testing.T) {
	e := NewOneShotEvent()
	require.False(t, e.Fired())

	done := make(chan struct{})
	go func() {
		e.Wait()
		close(done)
	}()

	e.Signal()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Wait did not return after Signal")
	}

	// Subsequent waits return immediately.
	e.Wait()
	require.True(t, e.Fired())
}

func TestOneShotEventSignalIdempotent(t *testing.T) {
	e := NewOneShotEvent()
	e.Signal()
	e.Signal()
	require.True(t, e.Fired())
}

func TestSeqEventReleasesAllWaitersAtTarget(t *testing.T) {
	e := NewSeqEvent()
	const waiters = 8

	var wg sync.WaitGroup
	for i := 0; i < waiters; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			e.WaitFor(3)
		}()
	}

	e.SignalAt(2) // below target, nobody released
	e.SignalAt(3)
	done := make(chan struct{})
	go func() { wg.Wait(); close(done) }()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("waiters not released at target")
	}
}

func TestSeqEventNeverGoesBackwards(t *testing.T) {
	e := NewSeqEvent()
	e.SignalAt(5)
	e.SignalAt(2)
	require.Equal(t, uint64(5), e.Value())

	// A waiter at or below the published value returns immediately.
	e.WaitFor(5)
}

func TestSeqEventSignalInc(t *testing.T) {
	e := NewSeqEvent()
	e.SignalInc(2)
	e.SignalInc(3)
	require.Equal(t, uint64(5), e.Value())
}

func TestSeqEventReset(t *testing.T) {
	e := NewSeqEvent()
	e.SignalAt(10)
	e.Reset(0)
	require.Equal(t, uint64(0), e.Value())
}
