// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geocluster

import (
	"context"
	"errors"
	"sort"
)

// maxTreeSize bounds the node arena Build will attempt to allocate.
// n beyond this would ask getNodeArena for tens of gigabytes in one
// make() call; rejecting it up front with ErrAllocation is the only
// way to surface that as an error instead of a runtime OOM panic.
// Var, not const, so tests can lower it rather than building a tree
// that large for real.
var maxTreeSize = 50_000_000

// treeNode is one node of a static 2-D k-d tree. Nodes live in a single
// arena slice (Tree.arena); left/right are pointers into that same
// slice, never separately heap-allocated.
type treeNode struct {
	annotation  Annotation
	point       Point
	left, right *treeNode
	level       int // depth from root; level&1 gives the split axis
}

// Tree is an immutable static k-d tree over a fixed set of annotations.
// Build constructs the whole tree in one pass; nothing about a Tree
// changes afterward. A Tree is safe for concurrent Search calls.
type Tree struct {
	arena []treeNode
	root  *treeNode
	size  int
}

// Len returns the number of annotations in the tree.
func (t *Tree) Len() int {
	if t == nil {
		return 0
	}
	return t.size
}

// Release returns the tree's node arena to the shared pool. Callers
// that rebuild a tree frequently (Controller.SetAnnotations) should
// call Release on the previous tree once it is no longer reachable
// from any in-flight Search. Using a Tree after Release is invalid.
func (t *Tree) Release() {
	if t == nil || t.arena == nil {
		return
	}
	putNodeArena(t.arena)
	t.arena = nil
	t.root = nil
	t.size = 0
}

// buildFrame is one entry of the explicit work stack Build uses in
// place of recursion. cur is sorted by the axis this frame splits on;
// comp is sorted by the complementary axis and supplies the partition
// candidates for the two child frames.
type buildFrame struct {
	cur, comp []internalPoint
	level     int
	nodeIdx   int
}

// Build constructs a static k-d tree over annotations, projecting each
// one to planar space with project. Per-annotation projection runs
// across a bounded worker pool; the tree construction itself is a
// single-threaded, explicit-stack pass (spec §4.2).
//
// Build never mutates annotations and retains no reference to the
// slice itself, only to its elements.
func Build(ctx context.Context, annotations []Annotation, project ProjectionFunc) (*Tree, error) {
	n := len(annotations)
	if n == 0 {
		return &Tree{}, nil
	}
	if project == nil {
		return nil, wrapError("build", errors.New("nil projection function"))
	}
	if n > maxTreeSize {
		return nil, wrapError("build", ErrAllocation)
	}

	points := make([]Point, n)
	err := defaultPool.ForEachIndex(ctx, n, func(i int) error {
		points[i] = project(annotations[i].AnnotationCoordinate())
		return nil
	})
	if err != nil {
		return nil, wrapError("build", err)
	}

	sortedByX := make([]internalPoint, n)
	for i, a := range annotations {
		sortedByX[i] = internalPoint{annotation: a, point: points[i]}
	}
	sortByAxis(sortedByX, AxisX)

	sortedByY := make([]internalPoint, n)
	copy(sortedByY, sortedByX)
	sortByAxis(sortedByY, AxisY)

	arena := getNodeArena(n)
	nextFree := 1 // index 0 is the root, reserved below

	stack := make([]buildFrame, 0, n)
	stack = append(stack, buildFrame{cur: sortedByX, comp: sortedByY, level: 0, nodeIdx: 0})

	cancel := newCancelChecker(ctx, 512)
	for len(stack) > 0 {
		if cancel.Check() {
			putNodeArena(arena)
			return nil, wrapError("build", cancel.Err())
		}

		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		count := len(top.cur)
		axis := Axis(top.level & 1)

		// Median with backward scan past duplicate axis values, so the
		// split point always falls strictly between two distinct
		// coordinates when one exists (spec §4.2 step 4).
		m := count / 2
		for m > 0 && axis.Value(top.cur[m-1].point) == axis.Value(top.cur[m].point) {
			m--
		}
		median := top.cur[m]
		splitVal := axis.Value(median.point)

		node := &arena[top.nodeIdx]
		node.annotation = median.annotation
		node.point = median.point
		node.level = top.level

		// Partition comp (sorted by the complementary axis) around the
		// median's split value. Left-going elements are copied into a
		// freshly pooled buffer; right-going elements are compacted
		// in place at the front of comp, since rightPos never exceeds
		// the read index i.
		left := getInternalPointSlice(m)[:0]
		rightPos := 0
		for i := 0; i < count; i++ {
			ip := top.comp[i]
			if ip.annotation.AnnotationID() == median.annotation.AnnotationID() {
				continue
			}
			if axis.Value(ip.point) < splitVal {
				left = append(left, ip)
			} else {
				top.comp[rightPos] = ip
				rightPos++
			}
		}

		if rightPos > 0 {
			idx := nextFree
			nextFree++
			node.right = &arena[idx]
			stack = append(stack, buildFrame{
				cur:     top.comp[:rightPos],
				comp:    top.cur[m+1:],
				level:   top.level + 1,
				nodeIdx: idx,
			})
		}
		if len(left) > 0 {
			idx := nextFree
			nextFree++
			node.left = &arena[idx]
			stack = append(stack, buildFrame{
				cur:     left,
				comp:    top.cur[:m],
				level:   top.level + 1,
				nodeIdx: idx,
			})
		}
	}

	return &Tree{arena: arena, root: &arena[0], size: n}, nil
}

// sortByAxis sorts points ascending by axis. Ties are left in whatever
// order sort.Slice produces; Build's duplicate backward-scan tolerates
// any order among equal axis values.
func sortByAxis(points []internalPoint, axis Axis) {
	sort.Slice(points, func(i, j int) bool {
		return axis.Value(points[i].point) < axis.Value(points[j].point)
	})
}

// Search returns every annotation whose projected point falls within
// the closed rectangle [min, max], using an iterative stack instead of
// recursion so a single goroutine's Search never grows the call stack
// with tree depth. Search does not mutate the tree and is safe to call
// concurrently with other Search calls on the same Tree, each with its
// own stack drawn from the shared pool.
func Search(tree *Tree, min, max Point) []Annotation {
	if tree == nil || tree.root == nil {
		return nil
	}

	var results []Annotation

	stack := getSearchStack(32)
	defer putSearchStack(stack)
	stack = append(stack, tree.root)

	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if node == nil {
			continue
		}

		if node.point.X >= min.X && node.point.X <= max.X &&
			node.point.Y >= min.Y && node.point.Y <= max.Y {
			results = append(results, node.annotation)
		}

		axis := Axis(node.level & 1)
		splitVal := axis.Value(node.point)
		lo := axis.Value(min)
		hi := axis.Value(max)

		if node.left != nil && lo <= splitVal {
			stack = append(stack, node.left)
		}
		if node.right != nil && hi >= splitVal {
			stack = append(stack, node.right)
		}
	}

	return results
}

// searchPoints is Search's internal counterpart that also returns
// each match's projected planar point, needed by the clustering pass
// to compute a cluster's planar centroid without re-invoking the
// host's projection function.
func searchPoints(tree *Tree, min, max Point) []internalPoint {
	if tree == nil || tree.root == nil {
		return nil
	}

	var results []internalPoint

	stack := getSearchStack(32)
	defer putSearchStack(stack)
	stack = append(stack, tree.root)

	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if node == nil {
			continue
		}

		if node.point.X >= min.X && node.point.X <= max.X &&
			node.point.Y >= min.Y && node.point.Y <= max.Y {
			results = append(results, internalPoint{annotation: node.annotation, point: node.point})
		}

		axis := Axis(node.level & 1)
		splitVal := axis.Value(node.point)
		lo := axis.Value(min)
		hi := axis.Value(max)

		if node.left != nil && lo <= splitVal {
			stack = append(stack, node.left)
		}
		if node.right != nil && hi >= splitVal {
			stack = append(stack, node.right)
		}
	}

	return results
}

// Members returns every annotation in the tree, in arena order (root
// first, otherwise unspecified).
func Members(tree *Tree) []Annotation {
	if tree == nil {
		return nil
	}
	out := make([]Annotation, 0, tree.size)
	for i := range tree.arena {
		out = append(out, tree.arena[i].annotation)
	}
	return out
}
