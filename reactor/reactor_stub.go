//go:build !linux && !windows
// +build !linux,!windows

// File: reactor/reactor_stub.go
// Author: momentics <momentics@gmail.com>
//
// No completion-port primitive exists outside Linux/Windows;
// exec.NewIOCompletionPool degrades to dispatching posted tasks through its
// own queue only, with no I/O-completion path, when this returns an error.

package reactor

import "errors"

// NewReactor returns an error for unsupported platforms.
func NewReactor() (EventReactor, error) {
	return nil, errors.New("reactor: this platform is not supported")
}
