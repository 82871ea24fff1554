// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geocluster

// Cluster is one unit of the output of a clustering pass: either a
// single annotation standing alone, or two or more annotations merged
// because their grid footprints overlapped.
type Cluster struct {
	// ID is stable across refreshes for the same underlying member
	// set, computed by the caller during reconciliation (Controller),
	// not by the clustering pass itself.
	ID string

	members     []Annotation
	centroid    Coordinate
	radius      float64
	planarPoint Point // mean projected point; used only for grid quadrant classification
}

// newCluster computes centroid and radius from members. members must
// be non-empty; its annotations are copied into a new slice and
// members itself is not retained. The planar point
// used for grid quadrant classification is the mean of points.
//
// preferBatched selects which of the two equivalent centroid/radius
// implementations runs (Config.PreferBatchedGeometry, gated by
// hasSIMDAcceleration): the batched path computes every member's
// contribution into a flat slice before reducing it, so the host's
// vector unit can work the transcendental-heavy radius computation as
// one tight loop; the incremental path folds sum-and-compare in a
// single pass with no extra allocation. Both produce the same result.
func newCluster(members []internalPoint, preferBatched bool) *Cluster {
	annotations := make([]Annotation, len(members))
	var sumX, sumY float64
	for i, m := range members {
		annotations[i] = m.annotation
		sumX += m.point.X
		sumY += m.point.Y
	}
	n := float64(len(members))

	c := &Cluster{members: annotations, planarPoint: Point{X: sumX / n, Y: sumY / n}}
	if preferBatched {
		c.centroid = c.computeCentroidBatched()
		c.radius = c.computeRadiusBatched()
	} else {
		c.centroid = c.computeCentroid()
		c.radius = c.computeRadius()
	}
	return c
}

// mergeClusters combines two clusters' memberships into a new
// cluster, recomputing centroid, radius, and planar point from the
// combined set.
func mergeClusters(a, b *Cluster, preferBatched bool) *Cluster {
	n := len(a.members) + len(b.members)
	members := make([]internalPoint, 0, n)
	members = append(members, clusterAsInternalPoints(a)...)
	members = append(members, clusterAsInternalPoints(b)...)
	return newCluster(members, preferBatched)
}

func clusterAsInternalPoints(c *Cluster) []internalPoint {
	out := make([]internalPoint, len(c.members))
	// Reconstruct each member's planar point from the cluster's own
	// mean; exact per-member planar points aren't retained once a
	// cluster is built, so merges approximate sub-member placement by
	// the parent cluster's shared point. The merged planarPoint is
	// still the exact mean of all members' planar points. Pass 2
	// classifies each cell's quadrant once, in pass 1, and does not
	// read planarPoint again after a merge; centroid and radius are
	// computed from AnnotationCoordinate, not from planarPoint.
	for i, m := range c.members {
		out[i] = internalPoint{annotation: m, point: c.planarPoint}
	}
	return out
}

func (c *Cluster) computeCentroid() Coordinate {
	var sumLat, sumLng float64
	for _, m := range c.members {
		coord := m.AnnotationCoordinate()
		sumLat += coord.Latitude
		sumLng += coord.Longitude
	}
	n := float64(len(c.members))
	return Coordinate{Latitude: sumLat / n, Longitude: sumLng / n}
}

func (c *Cluster) computeRadius() float64 {
	var maxDist float64
	for _, m := range c.members {
		d := DistanceMeters(c.centroid, m.AnnotationCoordinate())
		if d > maxDist {
			maxDist = d
		}
	}
	return maxDist
}

// computeCentroidBatched is computeCentroid's batched counterpart:
// latitude and longitude are gathered into their own flat slices
// first, then reduced separately, instead of accumulating both sums
// in one interleaved pass. Two straight-line reductions over
// contiguous []float64s vectorize on hosts with SIMD acceleration;
// the interleaved version's branchless-but-paired accumulation does
// not.
func (c *Cluster) computeCentroidBatched() Coordinate {
	lats := make([]float64, len(c.members))
	lngs := make([]float64, len(c.members))
	for i, m := range c.members {
		coord := m.AnnotationCoordinate()
		lats[i] = coord.Latitude
		lngs[i] = coord.Longitude
	}

	var sumLat, sumLng float64
	for _, v := range lats {
		sumLat += v
	}
	for _, v := range lngs {
		sumLng += v
	}

	n := float64(len(c.members))
	return Coordinate{Latitude: sumLat / n, Longitude: sumLng / n}
}

// computeRadiusBatched is computeRadius's batched counterpart:
// every member's Haversine distance to the centroid is computed into
// a flat slice first, isolating the trigonometric work into one
// tight loop, then the max is reduced from that slice in a second,
// branch-only pass.
func (c *Cluster) computeRadiusBatched() float64 {
	distances := make([]float64, len(c.members))
	for i, m := range c.members {
		distances[i] = DistanceMeters(c.centroid, m.AnnotationCoordinate())
	}

	var maxDist float64
	for _, d := range distances {
		if d > maxDist {
			maxDist = d
		}
	}
	return maxDist
}

// Members returns the annotations this cluster represents. The
// returned slice must not be modified.
func (c *Cluster) Members() []Annotation { return c.members }

// Coordinate returns the cluster's centroid: the mean latitude and
// longitude of its members.
func (c *Cluster) Coordinate() Coordinate { return c.centroid }

// Radius returns the greatest great-circle distance, in meters, from
// the centroid to any member.
func (c *Cluster) Radius() float64 { return c.radius }

// IsCluster reports whether this represents two or more annotations
// merged together, as opposed to a single annotation standing alone.
func (c *Cluster) IsCluster() bool { return len(c.members) >= 2 }

// Count returns the number of annotations represented.
func (c *Cluster) Count() int { return len(c.members) }
