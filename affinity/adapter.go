// File: affinity/adapter.go
// Author: momentics <momentics@gmail.com>
//
// Adapter satisfies api.Affinity over the package-level SetAffinity function,
// for collaborators (worker.Pool's per-thread pinning) that want the typed
// contract rather than a bare function call.

package affinity

import (
	"errors"

	"github.com/momentics/lune/api"
)

// Adapter pins the calling goroutine's OS thread to a CPU, recording the
// last pinned CPU/NUMA pair for Get.
type Adapter struct {
	cpuID  int
	numaID int
	pinned bool
}

var _ api.Affinity = (*Adapter)(nil)

// NewAdapter returns an unpinned Adapter.
func NewAdapter() *Adapter {
	return &Adapter{cpuID: -1, numaID: -1}
}

// Pin locks the current OS thread to cpuID, recording numaID for Get.
func (a *Adapter) Pin(cpuID int, numaID int) error {
	if err := SetAffinity(cpuID); err != nil {
		return err
	}
	a.cpuID, a.numaID, a.pinned = cpuID, numaID, true
	return nil
}

// Unpin clears the recorded pin. The underlying OS affinity mask is left as
// set by the last Pin call; no platform exposes an efficient "restore
// default mask" primitive this package depends on.
func (a *Adapter) Unpin() error {
	if !a.pinned {
		return errors.New("affinity: not pinned")
	}
	a.pinned = false
	return nil
}

// Get returns the most recently pinned CPU/NUMA pair, or (-1, -1, nil) if
// never pinned.
func (a *Adapter) Get() (cpuID int, numaID int, err error) {
	return a.cpuID, a.numaID, nil
}
