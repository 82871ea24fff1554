// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geocluster

import "sync"

// ===================== k-d tree node arena pool =====================
// Reduces GC pressure across repeated Build calls (e.g. SetAnnotations
// rebuilding the tree on every host-side annotation refresh).

var treeNodeArenaPool = sync.Pool{
	New: func() any {
		s := make([]treeNode, 0, 1024)
		return &s
	},
}

// getNodeArena returns a zeroed []treeNode of length size, reused from
// the pool when possible.
func getNodeArena(size int) []treeNode {
	sp := treeNodeArenaPool.Get().(*[]treeNode)
	s := *sp
	if cap(s) < size {
		return make([]treeNode, size)
	}
	s = s[:size]
	clear(s)
	return s
}

// putNodeArena returns an arena to the pool. Arenas backing very large
// trees are dropped rather than retained indefinitely.
func putNodeArena(s []treeNode) {
	if cap(s) > 1<<20 {
		return
	}
	s = s[:0]
	treeNodeArenaPool.Put(&s)
}

// ===================== internalPoint scratch pool =====================
// Backs each left-partition buffer Build allocates while descending
// (spec.md §4.2 step 5). A buffer handed out here is threaded into a
// child buildFrame and, transitively, into that frame's own children
// as a comp slice — its backing array stays live for the rest of the
// subtree below where it was allocated, so there is no single point
// in Build where returning it to the pool is safe. Nothing is ever put
// back, so every call allocates: through the pool's New (capacity
// 1024) or, for larger requests, a slice of exactly the requested
// size.

var internalPointSlicePool = sync.Pool{
	New: func() any {
		s := make([]internalPoint, 0, 1024)
		return &s
	},
}

func getInternalPointSlice(size int) []internalPoint {
	sp := internalPointSlicePool.Get().(*[]internalPoint)
	s := *sp
	if cap(s) < size {
		return make([]internalPoint, size)
	}
	return s[:size]
}

// ===================== search stack pool =====================
// Supports the "per-call stack" interface the spec requires so that
// concurrent range queries against one tree (pass 1 of clustering,
// §4.4) don't share mutable state.

var searchStackPool = sync.Pool{
	New: func() any {
		s := make([]*treeNode, 0, 64)
		return &s
	},
}

func getSearchStack(minCap int) []*treeNode {
	sp := searchStackPool.Get().(*[]*treeNode)
	s := *sp
	if cap(s) < minCap {
		return make([]*treeNode, 0, minCap)
	}
	return s[:0]
}

func putSearchStack(s []*treeNode) {
	if cap(s) > 1<<16 {
		return
	}
	searchStackPool.Put(&s)
}
