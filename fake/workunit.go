// File: fake/workunit.go
// Author: momentics <momentics@gmail.com>
//
// FakeWorkUnit is a scripted work unit for worker-pool tests: it yields a
// configured token on the first N calls, then completes.

package fake

import "github.com/momentics/lune/worker"

// FakeWorkUnit builds a *worker.WorkUnit that yields YieldToken for
// YieldCount calls before returning 0, counting invocations as it goes.
type FakeWorkUnit struct {
	Index      int
	YieldToken uint64
	YieldCount int
	Calls      int
}

// Build returns the worker.WorkUnit wired to this scripted behavior.
func (f *FakeWorkUnit) Build() *worker.WorkUnit {
	return &worker.WorkUnit{
		Index: f.Index,
		Exec: func(wu *worker.WorkUnit) uint64 {
			f.Calls++
			if f.Calls <= f.YieldCount {
				return f.YieldToken
			}
			return 0
		},
	}
}
