// File: vfs/errors.go
// Author: momentics <momentics@gmail.com>

package vfs

import "errors"

// ErrUnsafePath is returned by mutating operations when path fails the
// dot-segment safety filter or matches no registered root.
var ErrUnsafePath = errors.New("vfs: unsafe or unresolvable path")

// ErrReadOnlyRoot is returned when a mutating operation targets a root
// registered read-only.
var ErrReadOnlyRoot = errors.New("vfs: root is read-only")
