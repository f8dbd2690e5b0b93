// File: api/pool.go
// Author: momentics <momentics@gmail.com>
//
// Generic recycling contract for transient objects on the frame and I/O hot
// paths.

package api

// ObjectPool recycles instances of T so steady-state frames allocate
// nothing. pool.NUMAPool satisfies ObjectPool[[]byte].
type ObjectPool[T any] interface {
	// Get returns an available instance, allocating when the pool is dry.
	Get() T

	// Put returns obj for reuse.
	Put(obj T)
}
