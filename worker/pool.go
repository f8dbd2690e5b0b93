// File: worker/pool.go
// Author: momentics <momentics@gmail.com>
//
// Pool drives NumThreads worker goroutines in lockstep through the phase
// program. A phase function returning true suspends the thread: control
// passes to an external driver, which reads the outgoing yield event and
// must explicitly re-enter the thread to resume. Each thread's own
// goroutine plays the role of that driver for itself, blocking on a resume
// channel instead of returning to a separate host-thread loop.

package worker

import (
	"runtime"
	"sync"

	"github.com/momentics/lune/affinity"
	"github.com/sirupsen/logrus"
)

// Pool owns the worker goroutines and their shared Common state.
type Pool struct {
	Common   *Common
	threads  []*ThreadInfo
	log      *logrus.Entry
	wg       sync.WaitGroup
	numaNode int

	mu     sync.Mutex
	events []EngineWorkerEvent // per-thread outgoing events, indexed by thread id
}

// NewPool builds a pool of numThreads workers running program, optionally
// pinned to numaNode (-1 disables pinning).
func NewPool(numThreads int, program []PhaseFunc, numaNode int, log *logrus.Entry) *Pool {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	common := NewCommon(numThreads)
	common.SetProgram(program)
	p := &Pool{Common: common, log: log, numaNode: numaNode}
	p.threads = make([]*ThreadInfo, numThreads)
	p.events = make([]EngineWorkerEvent, numThreads)
	for i := 0; i < numThreads; i++ {
		p.threads[i] = &ThreadInfo{
			ID:          i,
			Common:      common,
			Fn:          FrameStart,
			ExpectedSeq: uint64(numThreads - 1),
			resume:      make(chan uint64, 1),
		}
	}
	return p
}

// RebuildProgram swaps in a new phase-function program, per the engine's
// need_work_rebuild step. Safe to call between frames.
func (p *Pool) RebuildProgram(program []PhaseFunc) {
	p.Common.SetProgram(program)
}

// Start launches every worker thread's driving goroutine.
func (p *Pool) Start() {
	for _, t := range p.threads {
		p.wg.Add(1)
		go p.drive(t)
	}
}

func (p *Pool) drive(t *ThreadInfo) {
	defer p.wg.Done()
	if p.numaNode >= 0 {
		aff := affinity.NewAdapter()
		if err := aff.Pin(t.ID, p.numaNode); err != nil {
			p.log.WithFields(logrus.Fields{"thread": t.ID, "err": err}).Debug("affinity pin failed")
		}
	}
	for !t.Exit {
		suspended := runUntilSuspendOrExit(t)
		if t.Exit {
			return
		}
		if suspended {
			p.mu.Lock()
			p.events[t.ID] = t.Event
			p.mu.Unlock()
			result := <-t.resume
			_ = result // the yielded unit's Exec reads external state itself; the
			// token is consumed here only to gate re-entry timing.
		}
	}
}

// runUntilSuspendOrExit calls t.Fn repeatedly until a phase function returns
// true (suspend) or t.Exit is set.
func runUntilSuspendOrExit(t *ThreadInfo) bool {
	for !t.Exit {
		if t.Fn(t) {
			return true
		}
	}
	return false
}

// PopEvent returns thread id's most recently recorded suspension event and
// clears it, matching pop_engine_event. A zero-value NoEvent means quiescent.
func (p *Pool) PopEvent(threadID int) EngineWorkerEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	ev := p.events[threadID]
	p.events[threadID] = EngineWorkerEvent{}
	return ev
}

// Resume re-enters thread id after an external completion, unblocking its
// driving goroutine so it calls back into ContinueWork.
func (p *Pool) Resume(threadID int) {
	p.threads[threadID].resume <- 0
}

// AdmitFrame releases every thread into frame n by advancing FrameWait.
func (p *Pool) AdmitFrame(n uint64) {
	p.Common.FrameWait.SignalAt(n + 1)
}

// ReleaseSwap releases the frame_end leader's swap_wait for frame n.
func (p *Pool) ReleaseSwap(n uint64) {
	p.Common.SwapWait.SignalAt(n + 1)
}

// Shutdown drains in-flight work (waits for the currently published group to
// be fully claimed) before signaling every thread to exit and waiting for
// their goroutines to return.
func (p *Pool) Shutdown() {
	if wg := p.Common.CurrentWorkGroup(); wg != nil {
		for wg.CurrentFrameIndex.Load() < int64(wg.NumValid) {
			runtime.Gosched()
		}
	}
	for _, t := range p.threads {
		t.Exit = true
		select {
		case t.resume <- 0:
		default:
		}
	}
	p.Common.FrameWait.SignalInc(uint64(len(p.threads)) + 1)
	p.Common.SeqWait.SignalInc(uint64(len(p.threads)) + 1)
	p.Common.SwapWait.SignalInc(uint64(len(p.threads)) + 1)
	p.wg.Wait()
}

// NumThreads returns the number of worker threads in the pool.
func (p *Pool) NumThreads() int { return len(p.threads) }
