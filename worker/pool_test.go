// File: worker/pool_test.go
// Author: momentics <momentics@gmail.com>

package worker_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/momentics/lune/fake"
	"github.com/momentics/lune/worker"
)

// TestSingleThreadedFrame: one thread, one work group of three units each
// returning 0. The sole thread is leader at every barrier, OnFrameDone fires
// exactly once, and indices are dispatched in order.
func TestSingleThreadedFrame(t *testing.T) {
	var dispatched []int
	units := make([]*worker.WorkUnit, 3)
	for i := range units {
		idx := i
		units[i] = &worker.WorkUnit{Index: idx, Exec: func(wu *worker.WorkUnit) uint64 {
			dispatched = append(dispatched, wu.Index)
			return 0
		}}
	}
	wg := worker.NewWorkGroup(units)

	p := worker.NewPool(1, []worker.PhaseFunc{worker.DoWork, worker.FrameEnd}, -1, nil)
	var frameDoneCount atomic.Int32
	p.Common.OnFrameDone = func() { frameDoneCount.Add(1) }
	p.Common.PublishWorkGroup(wg)

	p.Start()
	p.AdmitFrame(0)
	p.ReleaseSwap(0)

	require.Eventually(t, func() bool {
		return len(dispatched) == 3 && frameDoneCount.Load() == 1
	}, time.Second, time.Millisecond)

	require.Equal(t, []int{0, 1, 2}, dispatched)
	p.Shutdown()
}

// TestFourThreadFrameWithYield: four threads, eight units, unit index 3
// yields token 42 on its first call and completes on the second. One thread
// suspends, emits {guid,42}, the external driver resumes it, and eventually
// all eight units execute with exactly one frame-end.
func TestFourThreadFrameWithYield(t *testing.T) {
	const numThreads = 4
	const numUnits = 8

	var executed atomic.Int32
	var callCounts [numUnits]atomic.Int32

	units := make([]*worker.WorkUnit, numUnits)
	for i := range units {
		idx := i
		units[i] = &worker.WorkUnit{Index: idx, Exec: func(wu *worker.WorkUnit) uint64 {
			calls := callCounts[idx].Add(1)
			if idx == 3 && calls == 1 {
				return 42
			}
			executed.Add(1)
			return 0
		}}
	}
	wg := worker.NewWorkGroup(units)

	p := worker.NewPool(numThreads, []worker.PhaseFunc{worker.DoWork, worker.FrameEnd}, -1, nil)
	var frameDoneCount atomic.Int32
	p.Common.OnFrameDone = func() { frameDoneCount.Add(1) }
	p.Common.PublishWorkGroup(wg)

	p.Start()
	p.AdmitFrame(0)
	p.ReleaseSwap(0)

	// Poll for a suspended thread carrying token 42 and resume it.
	resumed := false
	require.Eventually(t, func() bool {
		if !resumed {
			for id := 0; id < numThreads; id++ {
				if ev := p.PopEvent(id); ev.Token == 42 {
					p.Resume(id)
					resumed = true
				}
			}
		}
		return int(executed.Load()) == numUnits && frameDoneCount.Load() == 1
	}, 2*time.Second, time.Millisecond)

	require.Equal(t, int32(numUnits), executed.Load())
	require.Equal(t, int32(1), frameDoneCount.Load())
	require.Equal(t, int32(2), callCounts[3].Load())
	p.Shutdown()
}

// TestScriptedUnitYieldsThenCompletes drives a single fake.FakeWorkUnit
// through suspend and resume: the unit must be called once per yield plus a
// final completing call.
func TestScriptedUnitYieldsThenCompletes(t *testing.T) {
	scripted := &fake.FakeWorkUnit{Index: 0, YieldToken: 7, YieldCount: 1}
	wg := worker.NewWorkGroup([]*worker.WorkUnit{scripted.Build()})

	p := worker.NewPool(1, []worker.PhaseFunc{worker.DoWork, worker.FrameEnd}, -1, nil)
	var frameDone atomic.Int32
	p.Common.OnFrameDone = func() { frameDone.Add(1) }
	p.Common.PublishWorkGroup(wg)

	p.Start()
	p.AdmitFrame(0)
	p.ReleaseSwap(0)

	require.Eventually(t, func() bool {
		if ev := p.PopEvent(0); ev.Token == 7 {
			p.Resume(0)
		}
		return frameDone.Load() == 1
	}, time.Second, time.Millisecond)

	require.Equal(t, 2, scripted.Calls)
	p.Shutdown()
}

// TestNextFrameAdvancesMonotonically runs several frames and has each thread
// record its own NextFrame at the top of every frame: the sequence must be
// exactly 0,1,2,... per thread, advancing only at frame_end.
func TestNextFrameAdvancesMonotonically(t *testing.T) {
	const numThreads = 3
	const numFrames = 10

	observed := make([][]uint64, numThreads)
	record := func(ti *worker.ThreadInfo) bool {
		observed[ti.ID] = append(observed[ti.ID], ti.NextFrame)
		ti.Fn = worker.FrameEnd
		return false
	}

	p := worker.NewPool(numThreads, []worker.PhaseFunc{record, worker.FrameEnd}, -1, nil)
	var frameDone atomic.Int32
	p.Common.OnFrameDone = func() { frameDone.Add(1) }
	p.Start()

	for f := uint64(0); f < numFrames; f++ {
		p.AdmitFrame(f)
		p.ReleaseSwap(f)
		require.Eventually(t, func() bool {
			return frameDone.Load() == int32(f+1)
		}, time.Second, time.Millisecond)
	}
	p.Shutdown()

	for id := 0; id < numThreads; id++ {
		require.Len(t, observed[id], numFrames)
		for f := 0; f < numFrames; f++ {
			require.Equal(t, uint64(f), observed[id][f], "thread %d frame %d", id, f)
		}
	}
}

// TestBarrierLeaderUniqueness asserts that for every completed barrier,
// exactly one thread observes prev == ExpectedSeq, across many frames.
func TestBarrierLeaderUniqueness(t *testing.T) {
	const numThreads = 4
	const numFrames = 20

	var leaderCount atomic.Int32
	p := worker.NewPool(numThreads, []worker.PhaseFunc{worker.Sync, worker.FrameEnd}, -1, nil)
	p.Common.UpdateFn = func(subseq int) { leaderCount.Add(1) }
	var frameDone atomic.Int32
	p.Common.OnFrameDone = func() { frameDone.Add(1) }
	p.Start()

	for f := uint64(0); f < numFrames; f++ {
		p.AdmitFrame(f)
		p.ReleaseSwap(f)
		require.Eventually(t, func() bool {
			return frameDone.Load() == int32(f+1)
		}, time.Second, time.Millisecond)
	}

	require.Equal(t, int32(numFrames), leaderCount.Load())
	p.Shutdown()
}
