// File: core/concurrency/mpmc_test.go
// Author: momentics <momentics@gmail.com>

package concurrency

import (
	"runtime"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRingBufferCapacityRoundsToPowerOfTwo(t *testing.T) {
	require.Equal(t, 2, NewRingBuffer[int](0).Cap())
	require.Equal(t, 2, NewRingBuffer[int](2).Cap())
	require.Equal(t, 4, NewRingBuffer[int](3).Cap())
	require.Equal(t, 1024, NewRingBuffer[int](1000).Cap())
}

func TestRingBufferFullAndEmpty(t *testing.T) {
	r := NewRingBuffer[int](4)
	for i := 0; i < 4; i++ {
		require.True(t, r.Enqueue(i))
	}
	require.False(t, r.Enqueue(99), "enqueue into a full ring must fail")
	require.Equal(t, 4, r.Len())

	for i := 0; i < 4; i++ {
		v, ok := r.Dequeue()
		require.True(t, ok)
		require.Equal(t, i, v, "FIFO order")
	}
	_, ok := r.Dequeue()
	require.False(t, ok, "dequeue from an empty ring must fail")
	require.Equal(t, 0, r.Len())
}

// Many producers and consumers move a fixed set of values through the ring;
// the sums on both sides must match and no value may be lost or duplicated.
func TestRingBufferManyProducersManyConsumers(t *testing.T) {
	const (
		producers = 8
		consumers = 8
		perProd   = 5000
	)
	r := NewRingBuffer[int](1024)

	var sent, received, count atomic.Int64
	total := int64(producers * perProd)

	var prodWg sync.WaitGroup
	for p := 0; p < producers; p++ {
		prodWg.Add(1)
		go func(pid int) {
			defer prodWg.Done()
			for i := 0; i < perProd; i++ {
				v := pid*perProd + i + 1
				for !r.Enqueue(v) {
					runtime.Gosched()
				}
				sent.Add(int64(v))
			}
		}(p)
	}

	var consWg sync.WaitGroup
	for c := 0; c < consumers; c++ {
		consWg.Add(1)
		go func() {
			defer consWg.Done()
			for count.Load() < total {
				if v, ok := r.Dequeue(); ok {
					received.Add(int64(v))
					count.Add(1)
				} else {
					runtime.Gosched()
				}
			}
		}()
	}

	prodWg.Wait()
	consWg.Wait()
	require.Equal(t, sent.Load(), received.Load())
}

func TestLockFreeQueueDelegatesToRing(t *testing.T) {
	q := NewLockFreeQueue[string](2)
	require.True(t, q.Enqueue("a"))
	require.True(t, q.Enqueue("b"))
	require.False(t, q.Enqueue("c"))

	v, ok := q.Dequeue()
	require.True(t, ok)
	require.Equal(t, "a", v)
}
