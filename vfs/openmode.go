// File: vfs/openmode.go
// Author: momentics <momentics@gmail.com>

package vfs

import "os"

// OpenMode names a file-open intent, independent of the OS open(2) flag
// bits.
type OpenMode int

const (
	OpenExisting OpenMode = iota
	CreateIfNotExist
	OpenOrCreate
	CreateOrTruncate
	TruncateExisting
)

// osFlags maps OpenMode to the stdlib os.OpenFile flag bits.
func (m OpenMode) osFlags() int {
	switch m {
	case OpenExisting:
		return os.O_RDWR
	case CreateIfNotExist:
		return os.O_RDWR | os.O_CREATE | os.O_EXCL
	case OpenOrCreate:
		return os.O_RDWR | os.O_CREATE
	case CreateOrTruncate:
		return os.O_RDWR | os.O_CREATE | os.O_TRUNC
	case TruncateExisting:
		return os.O_RDWR | os.O_TRUNC
	default:
		return os.O_RDONLY
	}
}
