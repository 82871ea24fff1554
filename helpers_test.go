// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geocluster_test

import (
	"fmt"
	"math/rand"

	"github.com/mapkit/geocluster"
)

// testAnnotation is the geocluster.Annotation used across this
// package's tests: an identity plus a coordinate that is also, for
// test convenience, directly usable as a planar point via
// identityProjection.
type testAnnotation struct {
	id    string
	coord geocluster.Coordinate
}

func (a *testAnnotation) AnnotationID() string                       { return a.id }
func (a *testAnnotation) AnnotationCoordinate() geocluster.Coordinate { return a.coord }

func newTestAnnotation(id string, x, y float64) *testAnnotation {
	return &testAnnotation{id: id, coord: geocluster.Coordinate{Latitude: y, Longitude: x}}
}

// identityProjection treats Longitude/Latitude directly as planar
// X/Y, so tests can reason about tree/grid geometry without a real
// map projection in the loop.
func identityProjection(c geocluster.Coordinate) geocluster.Point {
	return geocluster.Point{X: c.Longitude, Y: c.Latitude}
}

// genTestAnnotations builds n annotations scattered uniformly at
// random in [0, extent) x [0, extent), with deterministic IDs and a
// fixed seed for reproducibility.
func genTestAnnotations(n int, extent float64, seed int64) []geocluster.Annotation {
	rng := rand.New(rand.NewSource(seed))
	out := make([]geocluster.Annotation, n)
	for i := 0; i < n; i++ {
		out[i] = newTestAnnotation(fmt.Sprintf("a%d", i), rng.Float64()*extent, rng.Float64()*extent)
	}
	return out
}

// annotationIDs extracts the identities of annotations, in input order,
// for set-equality comparisons in tests (callers sort them).
func annotationIDs(annotations []geocluster.Annotation) []string {
	ids := make([]string, len(annotations))
	for i, a := range annotations {
		ids[i] = a.AnnotationID()
	}
	return ids
}
