// File: vfs/vfs.go
// Author: momentics <momentics@gmail.com>
//
// Multi-root virtual filesystem: standard roots /game (read-only game
// data), /data (read-only augmented), /save (writable persistent), /temp
// (writable non-persistent), plus custom registered prefixes. Lookup is
// longest-prefix; the safety filter runs first and rejects any path that
// would climb above its root.

package vfs

import (
	"os"
	"strings"

	"github.com/momentics/lune/ioasync"
)

// Root is one named path prefix resolving to a backing directory.
type Root struct {
	Prefix   string
	BaseDir  string
	ReadOnly bool
}

// VFS is the registry of roots and the entry point for every filesystem
// operation the script host drives.
type VFS struct {
	roots []Root // sorted longest-prefix-first
}

// New builds a VFS with no roots registered; call RegisterRoot for each of
// /game, /data, /save, /temp, plus any custom prefixes.
func New() *VFS {
	return &VFS{}
}

// RegisterRoot adds or replaces prefix's backing directory.
func (v *VFS) RegisterRoot(prefix, baseDir string, readOnly bool) {
	for i, r := range v.roots {
		if r.Prefix == prefix {
			v.roots[i] = Root{Prefix: prefix, BaseDir: baseDir, ReadOnly: readOnly}
			v.sortRoots()
			return
		}
	}
	v.roots = append(v.roots, Root{Prefix: prefix, BaseDir: baseDir, ReadOnly: readOnly})
	v.sortRoots()
}

func (v *VFS) sortRoots() {
	// Longest prefix first, so lookup's linear scan finds the most
	// specific match.
	for i := 1; i < len(v.roots); i++ {
		for j := i; j > 0 && len(v.roots[j].Prefix) > len(v.roots[j-1].Prefix); j-- {
			v.roots[j], v.roots[j-1] = v.roots[j-1], v.roots[j]
		}
	}
}

// Lookup resolves path to its root and a backing filesystem path. It
// returns ok=false if path is unsafe or matches no registered root — the
// "null VFS" outcome.
func (v *VFS) Lookup(path string) (root Root, fsPath string, ok bool) {
	if isUnsafe(path) {
		return Root{}, "", false
	}
	for _, r := range v.roots {
		if strings.HasPrefix(path, r.Prefix) {
			rel := strings.TrimPrefix(path, r.Prefix)
			rel = strings.TrimPrefix(rel, "/")
			return r, joinPath(r.BaseDir, rel), true
		}
	}
	return Root{}, "", false
}

func joinPath(base, rel string) string {
	if rel == "" {
		return base
	}
	return strings.TrimSuffix(base, "/") + "/" + rel
}

// OpenFile resolves path and opens it via the async I/O file surface,
// honoring mode and the root's read-only flag.
func (v *VFS) OpenFile(path string, mode OpenMode) (ioasync.File, error) {
	root, fsPath, ok := v.Lookup(path)
	if !ok {
		return nil, nil
	}
	flags := mode.osFlags()
	if root.ReadOnly {
		flags = os.O_RDONLY
	}
	return ioasync.Open(fsPath, flags, 0o644)
}

// OpenDir resolves path and lists its entries.
func (v *VFS) OpenDir(path string) ([]os.DirEntry, error) {
	_, fsPath, ok := v.Lookup(path)
	if !ok {
		return nil, nil
	}
	return os.ReadDir(fsPath)
}

// CreateDirectory resolves path and creates it (and any missing parents).
func (v *VFS) CreateDirectory(path string) error {
	root, fsPath, ok := v.Lookup(path)
	if !ok {
		return ErrUnsafePath
	}
	if root.ReadOnly {
		return ErrReadOnlyRoot
	}
	return os.MkdirAll(fsPath, 0o755)
}

// Delete resolves path and removes the file or empty directory.
func (v *VFS) Delete(path string) error {
	root, fsPath, ok := v.Lookup(path)
	if !ok {
		return ErrUnsafePath
	}
	if root.ReadOnly {
		return ErrReadOnlyRoot
	}
	return os.Remove(fsPath)
}

// Stat resolves path and returns its os.FileInfo.
func (v *VFS) Stat(path string) (os.FileInfo, error) {
	_, fsPath, ok := v.Lookup(path)
	if !ok {
		return nil, ErrUnsafePath
	}
	return os.Stat(fsPath)
}

// CheckAccess reports whether path resolves to an existing, accessible
// entry.
func (v *VFS) CheckAccess(path string) bool {
	_, err := v.Stat(path)
	return err == nil
}

// GetFreeBytesForWriting resolves path and returns the free space on its
// backing filesystem, for callers deciding whether a write would exceed
// device capacity.
func (v *VFS) GetFreeBytesForWriting(path string) (uint64, error) {
	_, fsPath, ok := v.Lookup(path)
	if !ok {
		return 0, ErrUnsafePath
	}
	return freeBytes(fsPath)
}
