// File: worker/barrier.go
// Author: momentics <momentics@gmail.com>
//
// The barrier: one shared counter plus one monotonic release event. Gives
// leader election in O(1) atomics per thread with no wake-up thundering,
// since SeqEvent guarantees followers arriving after release observe the
// advance without sleeping.

package worker

import "time"

// followerWait blocks on the release event for target, reporting the time
// spent to OnBarrierWait when set.
func followerWait(c *Common, target uint64) {
	if c.OnBarrierWait == nil {
		c.SeqWait.WaitFor(target)
		return
	}
	start := time.Now()
	c.SeqWait.WaitFor(target)
	c.OnBarrierWait(time.Since(start).Seconds())
}

// Sync is the barrier phase function. The thread for which prev ==
// t.ExpectedSeq is the leader: it invokes Common.UpdateFn(subseq), then
// releases followers by advancing SeqWait to BarrierSeq+1 (the number of
// barriers passed once this one completes). Every other thread waits on
// SeqWait for that same value. All threads then advance ExpectedSeq/Subseq.
// Returns false (never suspends).
func Sync(t *ThreadInfo) bool {
	c := t.Common
	prev := c.Seq.Add(1) - 1
	target := t.BarrierSeq + 1

	if prev == t.ExpectedSeq {
		if c.UpdateFn != nil {
			c.UpdateFn(t.Subseq)
		}
		c.SeqWait.SignalAt(target)
	} else {
		followerWait(c, target)
	}

	t.BarrierSeq = target
	t.ExpectedSeq += uint64(c.NumThreads)
	t.Subseq++
	t.Fn = c.ProgramAt(t.Subseq)
	return false
}
