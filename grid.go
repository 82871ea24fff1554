// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geocluster

import "math"

// cellState is the lifecycle of one grid cell slot during a clustering
// pass. Merged is terminal: a merged cell is never reconsidered as a
// merge target or source again within the same pass (spec §4.4).
type cellState int8

const (
	cellEmpty   cellState = 0
	cellHasData cellState = 1
	cellMerged  cellState = -1
)

// quadrant identifies which quadrant of a cell, measured from the
// cell's center, a cluster's representative point falls in.
//
//	 2 | 1
//	---+---
//	 3 | 4
type quadrant uint8

const (
	quadrantNone  quadrant = 0
	quadrantOne   quadrant = 1 << 0 // NE
	quadrantTwo   quadrant = 1 << 1 // NW
	quadrantThree quadrant = 1 << 2 // SW
	quadrantFour  quadrant = 1 << 3 // SE
)

// neighborOffsetsByQuadrant gives the 3 neighbor (row, col) deltas
// worth checking for a cluster whose point sits in a given quadrant of
// its cell. A cluster in the NE corner can only overlap a cluster
// reaching from one of the three NE-adjacent cells; the other five of
// the full 8-neighborhood are provably unreachable given uniform cell
// size, so pass 2 never inspects them. This is the conformity-table
// optimization in its quadrant-indexed form.
var neighborOffsetsByQuadrant = map[quadrant][3][2]int{
	quadrantOne:   {{0, 1}, {-1, 1}, {-1, 0}},
	quadrantTwo:   {{-1, 0}, {-1, -1}, {0, -1}},
	quadrantThree: {{0, -1}, {1, -1}, {1, 0}},
	quadrantFour:  {{1, 0}, {1, 1}, {0, 1}},
}

// quadrantForPoint reports which quadrant of rect contains point,
// measured from rect's center.
func quadrantForPoint(rect Rect, point Point) quadrant {
	center := rect.Center()
	if point.X >= center.X {
		if point.Y >= center.Y {
			return quadrantFour
		}
		return quadrantOne
	}
	if point.Y >= center.Y {
		return quadrantThree
	}
	return quadrantTwo
}

// cellSlot is one entry of the clustering grid.
type cellSlot struct {
	state        cellState
	rect         Rect // the cell's own map-space rectangle
	clusterIndex int  // index into the pass's cluster slice; meaningless if state == cellEmpty
	quadrant     quadrant
}

// clusterGrid is a (width+2) x (height+2) grid of cellSlots. The
// one-cell border on every side is a permanent cellEmpty sentinel,
// letting neighbor lookups at the interior's edge read out of bounds
// without a bounds check (spec §4.3).
type clusterGrid struct {
	cells         []cellSlot
	width, height int // interior dimensions, excluding the sentinel border
	origin        Point
	cellW, cellH  float64
}

// newClusterGrid allocates a grid covering [origin, origin+(width,height)*cellSize)
// in interior cells, plus its sentinel border.
func newClusterGrid(origin Point, width, height int, cellW, cellH float64) *clusterGrid {
	g := &clusterGrid{
		cells:  make([]cellSlot, (width+2)*(height+2)),
		width:  width,
		height: height,
		origin: origin,
		cellW:  cellW,
		cellH:  cellH,
	}
	return g
}

// stride is the row length including the sentinel border columns.
func (g *clusterGrid) stride() int { return g.width + 2 }

// index converts interior coordinates (0-based) into the backing
// slice index. row/col may range over [-1, height] / [-1, width] to
// address the sentinel border.
func (g *clusterGrid) index(row, col int) int {
	return (row+1)*g.stride() + (col + 1)
}

// at returns the slot at interior coordinates (row, col).
func (g *clusterGrid) at(row, col int) *cellSlot {
	return &g.cells[g.index(row, col)]
}

// cellRect returns the map-space rectangle covered by interior cell
// (row, col).
func (g *clusterGrid) cellRect(row, col int) Rect {
	return Rect{
		X: g.origin.X + float64(col)*g.cellW,
		Y: g.origin.Y + float64(row)*g.cellH,
		W: g.cellW,
		H: g.cellH,
	}
}

// cellForPoint returns the interior (row, col) of the cell containing
// point, and whether point lies within the grid's covered area at all.
func (g *clusterGrid) cellForPoint(point Point) (row, col int, ok bool) {
	col = int(math.Floor((point.X - g.origin.X) / g.cellW))
	row = int(math.Floor((point.Y - g.origin.Y) / g.cellH))
	if col < 0 || col >= g.width || row < 0 || row >= g.height {
		return 0, 0, false
	}
	return row, col, true
}
