// File: api/executor.go
// Author: momentics <momentics@gmail.com>
//
// Executor contract shared by the promise fabric, async I/O completion
// delivery, and the host message loop.

package api

// Executor posts a task for later execution on whatever thread discipline
// the implementation guarantees (host loop, dedicated thread, or a worker of
// the I/O completion pool). All exec package executors satisfy it.
type Executor interface {
	// Submit schedules task; it returns an error only when the executor
	// has been closed.
	Submit(task func()) error
}
