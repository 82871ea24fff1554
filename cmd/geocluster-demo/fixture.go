// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"math"
	"math/rand"

	"github.com/google/uuid"

	"github.com/mapkit/geocluster"
)

// demoAnnotation is the CLI's concrete geocluster.Annotation: a stable
// uuid identity plus a geographic coordinate.
type demoAnnotation struct {
	id    string
	coord geocluster.Coordinate
}

func (a *demoAnnotation) AnnotationID() string                       { return a.id }
func (a *demoAnnotation) AnnotationCoordinate() geocluster.Coordinate { return a.coord }

// newAnnotation mints a demoAnnotation with a fresh stable identity.
func newAnnotation(coord geocluster.Coordinate) *demoAnnotation {
	return &demoAnnotation{id: uuid.NewString(), coord: coord}
}

// genFixture builds a set of annotations scattered around the given
// centers, jittered by up to jitterDegrees in each direction. The
// coordinates are deterministic per seed; each identity is a fresh
// random uuid. Roughly count/len(centers) annotations land near each
// center.
func genFixture(seed int64, count int, centers []geocluster.Coordinate, jitterDegrees float64) []geocluster.Annotation {
	rng := rand.New(rand.NewSource(seed))
	out := make([]geocluster.Annotation, count)
	for i := range out {
		center := centers[i%len(centers)]
		coord := geocluster.Coordinate{
			Latitude:  center.Latitude + (rng.Float64()*2-1)*jitterDegrees,
			Longitude: center.Longitude + (rng.Float64()*2-1)*jitterDegrees,
		}
		out[i] = newAnnotation(coord)
	}
	return out
}

// mercatorProjection is a simple spherical Mercator projection
// adequate for demo purposes; not geodetically accurate beyond
// illustrating that Build/Cluster operate on planar points.
func mercatorProjection(c geocluster.Coordinate) geocluster.Point {
	const earthRadius = 6378137.0
	return geocluster.Point{
		X: earthRadius * c.Longitude * math.Pi / 180,
		Y: earthRadius * math.Log(math.Tan(math.Pi/4+(c.Latitude*math.Pi/180)/2)),
	}
}
