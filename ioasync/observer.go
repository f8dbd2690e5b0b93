// File: ioasync/observer.go
// Author: momentics <momentics@gmail.com>
//
// Process-wide transfer accounting hook for BeginRead/BeginWrite.

package ioasync

import (
	"sync/atomic"
	"time"
)

// CompletionObserver receives per-op accounting: op latency plus bytes
// moved, by direction. control.MetricsRegistry satisfies it directly.
type CompletionObserver interface {
	ObserveIOLatency(seconds float64)
	AddBytesRead(n int)
	AddBytesWritten(n int)
}

var observer atomic.Value // CompletionObserver

// SetObserver installs obs as the process-wide completion observer.
// Runtimes install it once at construction; every call must pass the same
// concrete type.
func SetObserver(obs CompletionObserver) { observer.Store(obs) }

func observeTransfer(read bool, n int, start time.Time) {
	v := observer.Load()
	if v == nil {
		return
	}
	obs := v.(CompletionObserver)
	obs.ObserveIOLatency(time.Since(start).Seconds())
	if read {
		obs.AddBytesRead(n)
	} else {
		obs.AddBytesWritten(n)
	}
}
