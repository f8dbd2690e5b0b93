// File: worker/phase.go
// Author: momentics <momentics@gmail.com>
//
// The phase entry points: frame_start, do_work, continue_work, frame_end.
// Sync (the barrier) lives in barrier.go. Every phase function returns
// whether the thread must suspend and return control to the external
// driver.

package worker

// FrameStart waits on FrameWait until frame NextFrame has been admitted,
// resets Subseq/ExpectedSeq, and advances to ThreadSequence[0].
func FrameStart(t *ThreadInfo) bool {
	t.Common.FrameWait.WaitFor(t.NextFrame + 1)
	t.Subseq = 0
	t.ExpectedSeq = uint64(t.Common.NumThreads - 1)
	t.Fn = t.Common.ProgramAt(0)
	return false
}

// DoWork claims indices from the current work group and executes each
// unit's Exec. A non-zero yield token records (guid, token) into the
// outgoing event and suspends; otherwise it loops until indices are
// exhausted, then falls through to Sync.
func DoWork(t *ThreadInfo) bool {
	wg := t.Common.CurrentWorkGroup()
	if wg == nil {
		t.Fn = Sync
		return false
	}
	for {
		idx := wg.CurrentFrameIndex.Add(1) - 1
		if idx >= int64(wg.NumValid) {
			t.Fn = Sync
			return false
		}
		wu := wg.Units[idx]
		if token := wu.Exec(wu); token != 0 {
			if t.Common.OnYield != nil {
				t.Common.OnYield()
			}
			t.WU = wu
			t.Event = EngineWorkerEvent{GUID: wg.GUID, Token: token}
			t.Fn = ContinueWork
			return true
		}
	}
}

// ContinueWork re-enters the suspended unit's Exec after resumption. If it
// yields again, it suspends again; otherwise DoWork resumes claiming new
// indices.
func ContinueWork(t *ThreadInfo) bool {
	wu := t.WU
	t.WU = nil
	if wu == nil {
		t.Fn = DoWork
		return false
	}
	if token := wu.Exec(wu); token != 0 {
		if t.Common.OnYield != nil {
			t.Common.OnYield()
		}
		t.WU = wu
		t.Event = EngineWorkerEvent{GUID: t.Common.CurrentWorkGroup().GUID, Token: token}
		t.Fn = ContinueWork
		return true
	}
	t.Fn = DoWork
	return false
}

// FrameEnd is the barrier whose leader waits on SwapWait for NextFrame,
// resets Seq to 0, and invokes OnFrameDone. All threads advance NextFrame
// and reset Fn to FrameStart.
func FrameEnd(t *ThreadInfo) bool {
	c := t.Common
	prev := c.Seq.Add(1) - 1
	target := t.BarrierSeq + 1

	if prev == t.ExpectedSeq {
		c.SwapWait.WaitFor(t.NextFrame + 1)
		c.Seq.Store(0)
		if c.OnFrameDone != nil {
			c.OnFrameDone()
		}
		c.SeqWait.SignalAt(target)
	} else {
		followerWait(c, target)
	}

	t.BarrierSeq = target
	t.NextFrame++
	t.Fn = FrameStart
	return false
}
