// File: exec/exec.go
// Author: momentics <momentics@gmail.com>
//
// The three executor shapes the runtime's promises and async I/O post
// completions to, all satisfying post_task(fn)/post_task(fn, ctx) via a
// single Submit method.

package exec

import "github.com/momentics/lune/api"

// Task is a posted unit of work. It is an alias so that any Submit taking a
// Task also satisfies the func()-typed executor contracts in api and future.
type Task = func()

// Executor is the common post_task contract every executor shape satisfies.
type Executor interface {
	Submit(task Task) error
}

var (
	_ api.Executor = (*MessageLoopExecutor)(nil)
	_ api.Executor = (*TaskThreadExecutor)(nil)
	_ api.Executor = (*IOCompletionPool)(nil)
)
