// File: worker/types.go
// Author: momentics <momentics@gmail.com>
//
// Shared state of the barrier-sequenced worker pool: the common block every
// thread reads, work groups, work units, and per-thread state.

package worker

import (
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/momentics/lune/syncutil"
)

// EngineWorkerEvent is the per-suspension event surfaced to the external
// driver: {type: work-group guid, id: yield token}. The zero value (nil
// GUID, zero Token; see NoEvent) means "no event, thread exited or
// quiescent".
type EngineWorkerEvent struct {
	GUID  uuid.UUID
	Token uint64
}

// NoEvent reports whether this is the sentinel "nothing happened" event.
func (e EngineWorkerEvent) NoEvent() bool { return e.Token == 0 && e.GUID == uuid.Nil }

// WorkUnit is one independently dispatched unit of work within a group.
// Exec returns 0 on completion, or a non-zero yield token meaning "this unit
// needs to wait on external event id X".
type WorkUnit struct {
	Exec  func(self *WorkUnit) uint64
	Count int
	Index int
}

// WorkGroup is a fan-out of independent work units dispatched by atomic
// index-claim. GUID is engine-assigned and surfaced on suspension events so
// the script host can route results.
type WorkGroup struct {
	GUID              uuid.UUID
	CurrentFrameIndex atomic.Int64
	NumValid          int
	Units             []*WorkUnit
}

// NewWorkGroup builds a work group over units, ready to be published via
// Common.PublishWorkGroup.
func NewWorkGroup(units []*WorkUnit) *WorkGroup {
	return &WorkGroup{GUID: uuid.New(), NumValid: len(units), Units: units}
}

// Common is the shared state of the pool, read by every worker thread.
type Common struct {
	FrameWait *syncutil.SeqEvent // released to admit the next frame
	SwapWait  *syncutil.SeqEvent // released by the leader at frame_end
	Seq       atomic.Uint64      // barrier leader-election counter
	SeqWait   *syncutil.SeqEvent // release latch for barrier followers

	NumThreads int
	dt         atomic.Value // float64

	// UpdateFn is invoked by the barrier leader at each barrier; it is the
	// sole place per-barrier engine-wide mutation may occur (e.g.
	// publishing the next work group). Nil is a valid "no-op at this
	// barrier".
	UpdateFn func(subseq int)

	// OnFrameDone is invoked by the leader after the final barrier;
	// typically drives present and posts the next frame's NewFrame event.
	OnFrameDone func()

	// OnYield, when set, is invoked once per non-zero yield token returned
	// from a work unit's Exec.
	OnYield func()

	// OnBarrierWait, when set, observes the seconds a follower spent
	// blocked on a barrier's release event.
	OnBarrierWait func(seconds float64)

	currentWorkGroup atomic.Pointer[WorkGroup]
	program          atomic.Pointer[[]PhaseFunc]
}

// SetProgram installs the process-global ordered list of phase functions
// (ThreadSequence[]). The engine rebuild step calls this when
// need_work_rebuild fires; program must terminate with FrameEnd.
func (c *Common) SetProgram(program []PhaseFunc) {
	p := append([]PhaseFunc(nil), program...)
	c.program.Store(&p)
}

// ProgramAt returns the phase function at index i of the current program,
// clamped to the final entry (FrameEnd) if the program is shorter.
func (c *Common) ProgramAt(i int) PhaseFunc {
	p := c.program.Load()
	if p == nil || len(*p) == 0 {
		return FrameEnd
	}
	if i >= len(*p) {
		i = len(*p) - 1
	}
	return (*p)[i]
}

// NewCommon builds the shared pool state for numThreads workers.
func NewCommon(numThreads int) *Common {
	c := &Common{
		FrameWait:  syncutil.NewSeqEvent(),
		SwapWait:   syncutil.NewSeqEvent(),
		SeqWait:    syncutil.NewSeqEvent(),
		NumThreads: numThreads,
	}
	c.dt.Store(float64(0))
	return c
}

// Dt returns the current frame's delta time, published by the host.
func (c *Common) Dt() float64 { return c.dt.Load().(float64) }

// SetDt publishes the current frame's delta time.
func (c *Common) SetDt(v float64) { c.dt.Store(v) }

// CurrentWorkGroup returns the work group currently published for dispatch.
func (c *Common) CurrentWorkGroup() *WorkGroup { return c.currentWorkGroup.Load() }

// PublishWorkGroup installs wg as the current work group and releases it by
// resetting its claim counter to 0.
func (c *Common) PublishWorkGroup(wg *WorkGroup) {
	if wg != nil {
		wg.CurrentFrameIndex.Store(0)
	}
	c.currentWorkGroup.Store(wg)
}

// PhaseFunc is one entry in a thread's phase-function program; it returns
// whether the thread must suspend (true) and return control to the external
// driver.
type PhaseFunc func(t *ThreadInfo) bool

// ThreadInfo is the per-thread state advanced by the phase program.
type ThreadInfo struct {
	ID          int
	Common      *Common
	Fn          PhaseFunc
	NextFrame   uint64
	Subseq      int
	ExpectedSeq uint64
	BarrierSeq  uint64    // count of barriers (Sync+FrameEnd) passed so far; never reset
	WU          *WorkUnit // the currently yielded unit, if any
	Event       EngineWorkerEvent
	Exit        bool

	resume chan uint64 // driver writes the external result here to re-enter
}
