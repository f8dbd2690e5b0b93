// File: exec/taskthread.go
// Author: momentics <momentics@gmail.com>
//
// TaskThreadExecutor is a single long-lived goroutine with a lock-free push
// and a signalling event, draining in LIFO order: tasks are independent, so
// ordering requirements (if any) are imposed by the caller.

package exec

import (
	"sync"
	"sync/atomic"

	"github.com/momentics/lune/syncutil"
)

type taskNode struct {
	task Task
	next *taskNode
}

// TaskThreadExecutor runs submitted tasks on one dedicated goroutine.
type TaskThreadExecutor struct {
	head   atomic.Pointer[taskNode]
	wake   *syncutil.OneShotEvent
	wakeMu sync.Mutex
	closed atomic.Bool
	done   chan struct{}
}

// NewTaskThreadExecutor starts the dedicated goroutine and returns its
// handle.
func NewTaskThreadExecutor() *TaskThreadExecutor {
	t := &TaskThreadExecutor{done: make(chan struct{})}
	t.resetWake()
	go t.run()
	return t
}

func (t *TaskThreadExecutor) resetWake() {
	t.wakeMu.Lock()
	t.wake = syncutil.NewOneShotEvent()
	t.wakeMu.Unlock()
}

// Submit pushes task onto the lock-free stack and wakes the drain loop.
func (t *TaskThreadExecutor) Submit(task Task) error {
	if t.closed.Load() {
		return errClosed
	}
	n := &taskNode{task: task}
	for {
		n.next = t.head.Load()
		if t.head.CompareAndSwap(n.next, n) {
			break
		}
	}
	t.wakeMu.Lock()
	t.wake.Signal()
	t.wakeMu.Unlock()
	return nil
}

func (t *TaskThreadExecutor) run() {
	defer close(t.done)
	for {
		t.wakeMu.Lock()
		wake := t.wake
		t.wakeMu.Unlock()
		wake.Wait()
		if t.closed.Load() {
			t.drain()
			return
		}
		t.resetWake()
		t.drain()
	}
}

// drain swaps the whole stack out and runs it in pop order, newest first.
func (t *TaskThreadExecutor) drain() {
	for n := t.head.Swap(nil); n != nil; n = n.next {
		n.task()
	}
}

// Close stops the dedicated goroutine after draining any remaining tasks.
func (t *TaskThreadExecutor) Close() {
	if t.closed.CompareAndSwap(false, true) {
		t.wakeMu.Lock()
		t.wake.Signal()
		t.wakeMu.Unlock()
		<-t.done
	}
}

var errClosed = taskThreadClosedError{}

type taskThreadClosedError struct{}

func (taskThreadClosedError) Error() string { return "exec: task thread executor closed" }
