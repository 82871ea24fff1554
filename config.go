// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geocluster

import "time"

// Config holds the clustering controller's tunables (spec §6
// "Configuration (enumerated)").
type Config struct {
	// GridCellW/GridCellH are the clustering grid's cell dimensions
	// in planar map space. Default such that one cell is roughly
	// twice AnnotationSize.
	GridCellW, GridCellH float64

	// AnnotationSize and AnnotationCenterOffset parameterize the
	// default rectangle-intersection overlap predicate (§6).
	AnnotationSize         Point
	AnnotationCenterOffset Point

	// AnimationDuration and AnimationOptions are carried for the host.
	// Refresh does not read them: without an AnimationDriverHook it
	// applies changes immediately, with no animation of its own.
	AnimationDuration time.Duration
	AnimationOptions  any

	// ClusteringEnabled, when false, makes Refresh return all
	// in-viewport annotations unmerged. A host ShouldClusterHook can
	// override this per refresh.
	ClusteringEnabled bool

	// MinimalZoomChange is the hysteresis threshold: Refresh
	// short-circuits when the zoom delta since the last refresh is
	// smaller than this and the refresh isn't forced.
	MinimalZoomChange float64

	// PreferBatchedGeometry selects the batched centroid/radius
	// computation (gather into flat slices, then reduce) instead of
	// the incremental fold, for every cluster a pass builds or merges.
	// Its default is hasSIMDAcceleration().
	PreferBatchedGeometry bool
}

// DefaultConfig returns the configuration spec.md §6 describes as the
// reference defaults.
func DefaultConfig() Config {
	return Config{
		GridCellW:              128,
		GridCellH:              128,
		AnnotationSize:         Point{X: 64, Y: 64},
		AnnotationCenterOffset: Point{X: 0, Y: 0},
		AnimationDuration:      300 * time.Millisecond,
		ClusteringEnabled:      true,
		MinimalZoomChange:      0.3,
		PreferBatchedGeometry:  hasSIMDAcceleration(),
	}
}
