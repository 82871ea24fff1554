// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geocluster

import (
	"context"
)

// OverlapPredicate reports whether two clusters' rendered footprints
// intersect closely enough to merge. The controller supplies a
// default rectangle-intersection implementation (§6); hosts may
// substitute a non-rectangular hit test.
type OverlapPredicate func(a, b *Cluster) bool

// clusterEntry is one slot of the auxiliary cluster list pass 1 and 2
// build and mutate. tombstoned marks an absorbed cluster; it is
// skipped at emit time (pass 3).
type clusterEntry struct {
	cluster    *Cluster
	tombstoned bool
	row, col   int // owning cell, for the row-major survivorship rule
}

// Cluster runs the three-pass grid clustering algorithm over tree,
// restricted to mapRect, and returns one Cluster per surviving grid
// slot. gridCellW/gridCellH must be positive; mapRect must have
// non-negative width and height.
//
// preferBatchedGeometry selects the batched centroid/radius
// computation (Config.PreferBatchedGeometry) over the default
// incremental fold for every cluster this pass builds or merges; see
// newCluster.
//
// Cluster performs no host I/O and returns a fresh, refresh-local
// result: none of its internal grid or cluster-list state escapes.
func Cluster(ctx context.Context, mapRect Rect, gridCellW, gridCellH float64, tree *Tree, overlap OverlapPredicate, preferBatchedGeometry bool) ([]*Cluster, error) {
	if !mapRect.Valid() {
		return nil, wrapError("cluster", ErrInvalidRect)
	}
	if gridCellW <= 0 || gridCellH <= 0 {
		return nil, wrapError("cluster", ErrInvalidCellSize)
	}
	if overlap == nil {
		overlap = rectangleOverlap
	}

	normalized := NormalizeRectToCells(mapRect, gridCellW, gridCellH)
	gridW := int(normalized.W/gridCellW + 0.5)
	gridH := int(normalized.H/gridCellH + 0.5)
	if gridW <= 0 || gridH <= 0 {
		return nil, nil
	}

	grid := newClusterGrid(normalized.Min(), gridW, gridH, gridCellW, gridCellH)
	var list []clusterEntry

	// Pass 1: cell population. Per-cell range queries are independent
	// and each draws its own search stack, so this loop is the one
	// data-parallel island permitted inside Cluster (§5).
	type populated struct {
		row, col int
		members  []internalPoint
	}
	cellCount := gridW * gridH
	results := make([]populated, cellCount)
	err := defaultPool.ForEachIndex(ctx, cellCount, func(idx int) error {
		row := idx / gridW
		col := idx % gridW
		rect := grid.cellRect(row, col)
		far := grid.cellRect(row+1, col+1).Min()
		members := searchPoints(tree, rect.Min(), far)
		// Cells are half-open: a point on the edge shared with the next
		// column or row belongs to that cell, so every point lands in
		// exactly one cell. The grid's outer right and bottom edges stay
		// inclusive.
		kept := members[:0]
		for _, m := range members {
			if (m.point.X == far.X && col < gridW-1) || (m.point.Y == far.Y && row < gridH-1) {
				continue
			}
			kept = append(kept, m)
		}
		results[idx] = populated{row: row, col: col, members: kept}
		return nil
	})
	if err != nil {
		return nil, wrapError("cluster", err)
	}

	for _, r := range results {
		if len(r.members) == 0 {
			continue
		}
		c := newCluster(r.members, preferBatchedGeometry)
		list = append(list, clusterEntry{cluster: c, row: r.row, col: r.col})
		idx := len(list) - 1

		slot := grid.at(r.row, r.col)
		slot.state = cellHasData
		slot.clusterIndex = idx
		slot.rect = grid.cellRect(r.row, r.col)
		slot.quadrant = quadrantForPoint(slot.rect, c.planarPoint)
	}

	// Pass 2: neighbor merging, row-major, one sweep, no revisits.
	cancel := newCancelChecker(ctx, 256)
	for row := 0; row < gridH; row++ {
		for col := 0; col < gridW; col++ {
			if cancel.Check() {
				return nil, wrapError("cluster", cancel.Err())
			}
			slot := grid.at(row, col)
			if slot.state != cellHasData {
				continue
			}

			offsets, ok := neighborOffsetsByQuadrant[slot.quadrant]
			if !ok {
				continue
			}
			for _, off := range offsets {
				nrow, ncol := row+off[0], col+off[1]
				if nrow < -1 || nrow > gridH || ncol < -1 || ncol > gridW {
					continue
				}
				neighbor := grid.at(nrow, ncol)
				if neighbor.state != cellHasData {
					continue
				}

				a := &list[slot.clusterIndex]
				b := &list[neighbor.clusterIndex]
				if a.tombstoned || b.tombstoned {
					continue
				}
				if !overlap(a.cluster, b.cluster) {
					continue
				}

				survivor, absorbed, absorbedSlot := a, b, neighbor
				if lessRowCol(b.row, b.col, a.row, a.col) {
					survivor, absorbed, absorbedSlot = b, a, slot
				}

				survivor.cluster = mergeClusters(survivor.cluster, absorbed.cluster, preferBatchedGeometry)
				absorbed.tombstoned = true
				absorbedSlot.state = cellMerged

				if absorbedSlot == slot {
					// The current cell itself was absorbed; stop
					// considering further neighbors for it.
					break
				}
			}
		}
	}

	// Pass 3: emit.
	out := make([]*Cluster, 0, len(list))
	for i := range list {
		if !list[i].tombstoned {
			out = append(out, list[i].cluster)
		}
	}
	return out, nil
}

func lessRowCol(rowA, colA, rowB, colB int) bool {
	if rowA != rowB {
		return rowA < rowB
	}
	return colA < colB
}

// rectangleOverlap is the fallback OverlapPredicate used when a
// caller doesn't supply one: it treats clusters as overlapping when
// their centroids are within a meter of each other. Controller
// installs the real §6 rectangle-intersection predicate (built from
// the host's view-space projection and configured annotation size),
// so this only matters for direct Cluster callers and tests.
func rectangleOverlap(a, b *Cluster) bool {
	return DistanceMeters(a.centroid, b.centroid) < 1
}
