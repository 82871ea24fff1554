// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/mapkit/geocluster"
)

// demoHost is a minimal geocluster.Host for headless CLI use: a fixed
// viewport and zoom, and console logging in place of a real map view.
type demoHost struct {
	viewport geocluster.Rect
	zoom     float64
	verbose  bool
}

func (h *demoHost) Project(c geocluster.Coordinate) geocluster.Point { return mercatorProjection(c) }

func (h *demoHost) Unproject(p geocluster.Point) geocluster.Coordinate {
	// Always returns the zero Coordinate, which suffices for a demo:
	// the CLI never round-trips a projected point back through this.
	return geocluster.Coordinate{}
}

func (h *demoHost) CurrentViewportRect() geocluster.Rect { return h.viewport }
func (h *demoHost) CurrentZoomLevel() float64            { return h.zoom }

// IsMapVisible always reports true: a headless CLI has no on/off-screen
// concept, and every demo command forces its refresh anyway.
func (h *demoHost) IsMapVisible() bool { return true }

func (h *demoHost) PointForAnnotationInView(c *geocluster.Cluster) geocluster.Point {
	return mercatorProjection(c.Coordinate())
}

func (h *demoHost) AddAnnotations(clusters []*geocluster.Cluster) {
	if !h.verbose {
		return
	}
	for _, c := range clusters {
		fmt.Printf("  + cluster %s: %d member(s) at (%.5f, %.5f), radius %.1fm\n",
			c.ID[:8], c.Count(), c.Coordinate().Latitude, c.Coordinate().Longitude, c.Radius())
	}
}

func (h *demoHost) RemoveAnnotations(clusters []*geocluster.Cluster) {
	if !h.verbose {
		return
	}
	for _, c := range clusters {
		fmt.Printf("  - cluster %s\n", c.ID[:8])
	}
}
