// File: channel/waitutil.go
// Author: momentics <momentics@gmail.com>
//
// sync.Cond has no timed wait; this arms a one-shot timer that broadcasts
// the condition if it fires before some other goroutine does.

package channel

import (
	"sync"
	"time"
)

// waitWithTimeout waits on cond (caller must hold the paired mutex) for up
// to timeout. Returns false if the timer fired first.
func waitWithTimeout(cond *sync.Cond, mu *sync.Mutex, timeout time.Duration) bool {
	timer := time.AfterFunc(timeout, func() {
		mu.Lock()
		cond.Broadcast()
		mu.Unlock()
	})
	cond.Wait()
	return timer.Stop()
}
