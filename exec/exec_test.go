// File: exec/exec_test.go
// Author: momentics <momentics@gmail.com>

package exec

import (
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTaskThreadExecutorRunsSubmittedTasks(t *testing.T) {
	ex := NewTaskThreadExecutor()
	defer ex.Close()

	var ran atomic.Int64
	done := make(chan struct{})
	require.NoError(t, ex.Submit(func() { ran.Add(1) }))
	require.NoError(t, ex.Submit(func() { ran.Add(1); close(done) }))

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("tasks not executed")
	}
	require.Eventually(t, func() bool { return ran.Load() == 2 }, time.Second, time.Millisecond)
}

func TestTaskThreadExecutorCloseDrainsPending(t *testing.T) {
	ex := NewTaskThreadExecutor()

	var ran atomic.Int64
	for i := 0; i < 16; i++ {
		require.NoError(t, ex.Submit(func() { ran.Add(1) }))
	}
	ex.Close()
	require.Equal(t, int64(16), ran.Load())
}

func TestTaskThreadExecutorSubmitAfterCloseFails(t *testing.T) {
	ex := NewTaskThreadExecutor()
	ex.Close()
	err := ex.Submit(func() {})
	require.ErrorIs(t, err, errClosed)
}

func TestTaskThreadExecutorConcurrentSubmit(t *testing.T) {
	ex := NewTaskThreadExecutor()

	const n = 64
	var ran atomic.Int64
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			require.NoError(t, ex.Submit(func() { ran.Add(1) }))
		}()
	}
	wg.Wait()
	ex.Close()
	require.Equal(t, int64(n), ran.Load())
}

func TestMessageLoopExecutorDrainsInline(t *testing.T) {
	m := NewMessageLoopExecutor()

	ran := 0
	require.NoError(t, m.Submit(func() { ran++ }))
	require.NoError(t, m.Submit(func() { ran++ }))

	// Tasks do not run until the host goroutine drains them.
	require.Equal(t, 0, ran)
	require.Equal(t, 2, m.DrainPending())
	require.Equal(t, 2, ran)

	// A second drain finds nothing.
	require.Equal(t, 0, m.DrainPending())
}

func TestMessageLoopExecutorResubmitDuringDrain(t *testing.T) {
	m := NewMessageLoopExecutor()

	ran := 0
	require.NoError(t, m.Submit(func() {
		ran++
		_ = m.Submit(func() { ran++ })
	}))

	// A task queued during the drain waits for the next pass.
	require.Equal(t, 1, m.DrainPending())
	require.Equal(t, 1, ran)
	require.Equal(t, 1, m.DrainPending())
	require.Equal(t, 2, ran)
}

func TestIOCompletionPoolDispatchesPostedTasks(t *testing.T) {
	p := NewIOCompletionPool(2)

	const n = 32
	var ran atomic.Int64
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		require.NoError(t, p.Submit(func() {
			ran.Add(1)
			wg.Done()
		}))
	}
	wg.Wait()
	require.Equal(t, int64(n), ran.Load())

	p.Close()
	require.ErrorIs(t, p.Submit(func() {}), errClosed)
}

func TestIOCompletionPoolCloseIsIdempotent(t *testing.T) {
	p := NewIOCompletionPool(1)
	p.Close()
	p.Close()
}

func TestIOCompletionPoolInvokesCallbackOnReadiness(t *testing.T) {
	p := NewIOCompletionPool(1)
	defer p.Close()
	if p.reactor == nil {
		t.Skip("no completion backend on this platform")
	}

	r, w, err := os.Pipe()
	require.NoError(t, err)
	defer r.Close()
	defer w.Close()

	var fired atomic.Int64
	require.NoError(t, p.RegisterCompletion(r.Fd(), func() { fired.Add(1) }))

	_, err = w.Write([]byte{1})
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		return fired.Load() >= 1
	}, 2*time.Second, 5*time.Millisecond)
}
