// File: future/promisable_test.go
// Author: momentics <momentics@gmail.com>

package future

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestPromisableFiresListenersInRegistrationOrder(t *testing.T) {
	var p Promisable[int]
	var order []int
	p.Then(func(v int, ok bool) { order = append(order, 1) })
	p.Then(func(v int, ok bool) { order = append(order, 2) })
	p.Resolved(7, true)
	p.Then(func(v int, ok bool) { order = append(order, 3) })

	require.Equal(t, []int{1, 2, 3}, order)
}

func TestPromisableResolvedSecondCallIsNoOp(t *testing.T) {
	var p Promisable[string]
	p.Resolved("first", true)
	p.Resolved("second", false)

	v, ok := p.Value()
	require.Equal(t, "first", v)
	require.True(t, ok)
}

func TestPromisableWaitBlocksUntilResolution(t *testing.T) {
	var p Promisable[int]
	go func() {
		time.Sleep(5 * time.Millisecond)
		p.Resolved(42, true)
	}()

	v, ok := p.Wait()
	require.True(t, ok)
	require.Equal(t, 42, v)
}

func TestPromisableThenOnPostsToExecutor(t *testing.T) {
	var p Promisable[int]
	exec := &recordingExecutor{}
	p.Resolved(9, true)
	p.ThenOn(exec, func(v int, ok bool) {})

	require.Equal(t, 1, exec.submits)
}

type recordingExecutor struct {
	submits int
}

func (r *recordingExecutor) Submit(task func()) error {
	r.submits++
	task()
	return nil
}
