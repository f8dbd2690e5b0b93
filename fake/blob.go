// File: fake/blob.go
// Author: momentics <momentics@gmail.com>
//
// NewResolvedBlob is a test helper that builds an already-resolved blob over
// data without touching the NUMA buffer pools, for tests that only care
// about Promisable/Blob semantics.

package fake

import "github.com/momentics/lune/blob"

// NewResolvedBlob returns a blob resolved immediately with data and the
// given error flag.
func NewResolvedBlob(data []byte, errored bool) *blob.Blob {
	b := blob.NewDynamic()
	b.Set(data, errored)
	return b
}
