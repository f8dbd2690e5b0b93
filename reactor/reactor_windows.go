//go:build windows
// +build windows

// File: reactor/reactor_windows.go
// Author: momentics <momentics@gmail.com>
//
// Windows IOCP backend for exec.IOCompletionPool: one completion port
// delivers registered handles' completions to the pool's poll goroutine.

package reactor

import (
	"errors"
	"golang.org/x/sys/windows"
	"unsafe"
)

// iocpIOReactor backs exec.IOCompletionPool with a single IOCP handle.
type iocpIOReactor struct {
	iocp windows.Handle
}

// NewReactor constructs the IOCP-backed EventReactor exec.NewIOCompletionPool
// uses on Windows.
func NewReactor() (EventReactor, error) {
	port, err := windows.CreateIoCompletionPort(
		windows.InvalidHandle,
		0,
		0,
		0,
	)
	if err != nil {
		return nil, err
	}
	return &iocpIOReactor{
		iocp: port,
	}, nil
}

// Register associates handle with the completion port, attaching userData
// (exec.IOCompletionPool passes the handle itself) as its completion key.
func (r *iocpIOReactor) Register(handle uintptr, userData uintptr) error {
	h := windows.Handle(handle)
	_, err := windows.CreateIoCompletionPort(
		h,
		r.iocp,
		userData,
		0,
	)
	return err
}

// Wait blocks for one queued completion and fills events[0].
func (r *iocpIOReactor) Wait(events []Event) (int, error) {
	if len(events) == 0 {
		return 0, errors.New("reactor: Wait needs a non-empty event slice")
	}

	var qty uint32
	var key uintptr
	var overlapped *windows.Overlapped

	err := windows.GetQueuedCompletionStatus(r.iocp, &qty, &key, &overlapped, windows.INFINITE)
	if err != nil {
		return 0, err
	}
	// The completion key carries the value given at Register time; the
	// overlapped pointer stands in for the handle context.
	events[0] = Event{
		Fd:       uintptr(unsafe.Pointer(overlapped)),
		UserData: key,
	}
	return 1, nil
}

// Close closes the IOCP handle.
func (r *iocpIOReactor) Close() error {
	return windows.CloseHandle(r.iocp)
}
