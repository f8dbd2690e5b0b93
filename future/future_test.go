// File: future/future_test.go
// Author: momentics <momentics@gmail.com>

package future

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFutureTakeBlocksUntilResolve(t *testing.T) {
	p, f := NewPromise[int]()
	go func() {
		time.Sleep(5 * time.Millisecond)
		p.Resolve(11)
	}()

	v, ok := f.Take()
	require.True(t, ok)
	require.Equal(t, 11, v)
	require.True(t, f.Used())
}

func TestFutureResolveNullYieldsFalseOk(t *testing.T) {
	p, f := NewPromise[string]()
	p.ResolveNull()

	v, ok := f.Take()
	require.False(t, ok)
	require.Equal(t, "", v)
}

func TestFutureThenFiresOnceEvenAfterSecondResolve(t *testing.T) {
	p, f := NewPromise[int]()
	calls := 0
	f.Then(func(v int, ok bool) { calls++ })

	p.Resolve(1)
	p.Resolve(2)

	require.Equal(t, 1, calls)
}

func TestFutureThenOnPostsToExecutor(t *testing.T) {
	p, f := NewPromise[int]()
	exec := &recordingExecutor{}
	p.Resolve(5)
	f.ThenOn(exec, func(v int, ok bool) {})

	require.Equal(t, 1, exec.submits)
}

func TestFutureDiscardMarksUsedWithoutPanicking(t *testing.T) {
	p, f := NewPromise[int]()
	f.Discard()
	require.True(t, f.Used())
	p.Resolve(3)
}
