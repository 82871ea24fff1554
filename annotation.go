// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geocluster

// Annotation is the host-supplied entity placed on the map. The engine
// never mutates it and never inspects anything beyond its identity and
// coordinate.
type Annotation interface {
	// AnnotationID returns a stable identity used for set membership
	// (Cluster equality, reconciliation diffing).
	AnnotationID() string

	// AnnotationCoordinate returns the annotation's geographic position.
	AnnotationCoordinate() Coordinate
}

// ProjectionFunc converts a geographic coordinate into the planar map
// point used by the tree and grid. Supplied by the host; must be a pure
// function of its input.
type ProjectionFunc func(Coordinate) Point

// internalPoint pairs an annotation with its pre-projected planar point.
// Tree construction uses it so projection happens exactly once per
// annotation (spec.md §4.2 build step 1); searchPoints returns it so
// the clustering pass can build clusters without re-projecting.
type internalPoint struct {
	annotation Annotation
	point      Point
}
