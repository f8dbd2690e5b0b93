// File: pool/doc.go
// Author: momentics <momentics@gmail.com>

// Package pool is the NUMA-aware memory layer: per-node buffer pools with
// platform allocation backends (libnuma, VirtualAllocExNuma), a slab
// recycling decorator for the common size class, scatter/gather buffer
// batches, and a lock-free descriptor ring.
package pool
