// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geocluster

// Host is the set of services the controller needs from its embedding
// map view (spec §6 "Host-supplied services"). All methods are
// required; optional host behavior is expressed as separate
// interfaces below, type-asserted at call time, mirroring the
// Objective-C @optional delegate methods this was distilled from.
type Host interface {
	// Project converts a geographic coordinate to the planar map
	// point used by the tree and grid.
	Project(Coordinate) Point

	// Unproject is Project's inverse. The controller itself never
	// calls it.
	Unproject(Point) Coordinate

	// CurrentViewportRect returns the visible map region in planar
	// space.
	CurrentViewportRect() Rect

	// CurrentZoomLevel returns the host's current zoom level, used
	// for the minimal_zoom_change hysteresis.
	CurrentZoomLevel() float64

	// IsMapVisible reports whether the host's map view is currently
	// on screen. Refresh short-circuits when this is false and the
	// refresh isn't forced (spec §4.6), the same way it short-circuits
	// on an insufficient zoom change.
	IsMapVisible() bool

	// PointForAnnotationInView returns a cluster's position in
	// view-space (as opposed to planar map space), used by the
	// default overlap predicate.
	PointForAnnotationInView(*Cluster) Point

	// AddAnnotations and RemoveAnnotations mutate the host's
	// displayed annotation set.
	AddAnnotations(clusters []*Cluster)
	RemoveAnnotations(clusters []*Cluster)
}

// ShouldClusterHook lets a host override Config.ClusteringEnabled on a
// per-refresh basis. When present and it returns false, Refresh treats
// every in-viewport annotation as its own degenerate (size-1) cluster.
type ShouldClusterHook interface {
	ShouldCluster(viewport Rect, zoom float64) bool
}

// ConfigureAnnotationHook lets a host attach display data (title,
// subtitle, image) to a cluster just before it's added to the map.
// The clustering core has no opinion on this policy (spec §4.5).
type ConfigureAnnotationHook interface {
	ConfigureAnnotationForDisplay(c *Cluster)
}

// VisibleAnnotationsHook notifies a host immediately before and after
// Refresh applies a reconciled add/remove set.
type VisibleAnnotationsHook interface {
	WillUpdateVisibleAnnotations(toAdd, toRemove []*Cluster)
	DidUpdateVisibleAnnotations(toAdd, toRemove []*Cluster)
}

// AnimationHook notifies a host around the animation of one annotation
// morphing into another (e.g. a cluster splitting or merging across a
// refresh).
type AnimationHook interface {
	WillAnimateAnnotation(from, to *Cluster)
	DidAnimateAnnotation(from, to *Cluster)
}

// AnimationDriverHook lets a host drive the actual animation.
// Refresh calls PerformAnimations synchronously with a closure that
// applies the reconciled changes; the host must invoke completion
// exactly once, with true if the animation ran to completion.
// Without this hook the controller applies changes immediately and
// treats them as completed.
type AnimationDriverHook interface {
	PerformAnimations(animations func(), completion func(finished bool))
}
