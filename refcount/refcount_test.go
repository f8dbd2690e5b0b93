// File: refcount/refcount_test.go
// Author: momentics <momentics@gmail.com>

package refcount

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDisposeRunsExactlyOnceOnLastRelease(t *testing.T) {
	disposed := 0
	r := New("payload", func(string) { disposed++ })

	c := r.Clone()
	require.Equal(t, int64(2), r.Count())

	r.Release()
	require.Equal(t, 0, disposed, "dispose must wait for the last reference")

	c.Release()
	require.Equal(t, 1, disposed)
}

func TestGetReturnsValue(t *testing.T) {
	r := New(42, nil)
	require.True(t, r.Valid())
	require.Equal(t, 42, r.Get())
	r.Release()
}

func TestConcurrentCloneRelease(t *testing.T) {
	disposed := 0
	r := New(struct{}{}, func(struct{}) { disposed++ })

	const n = 32
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		c := r.Clone()
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Release()
		}()
	}
	wg.Wait()
	require.Equal(t, 0, disposed)

	r.Release()
	require.Equal(t, 1, disposed)
}

func TestWeakObservesLifetimeWithoutExtendingIt(t *testing.T) {
	r := New("data", nil)
	w := r.Weaken()

	v, ok := w.Get()
	require.True(t, ok)
	require.Equal(t, "data", v)

	r.Release()
	_, ok = w.Get()
	require.False(t, ok)
}
