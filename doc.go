// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package geocluster implements a 2-D spatial clustering engine for map
// annotations.
//
// Given a large static set of annotations projected onto a planar map
// surface, the package builds a static k-d tree once (Build) and then,
// for each viewport refresh, snaps the viewport to a uniform cell grid
// and runs a grid clustering pass (Cluster) that range-queries the tree
// per cell and merges clusters whose footprints overlap across adjacent
// cells. A Controller wraps both the tree and the clustering pass and
// reconciles the set of visible clusters against a host's map view
// across successive refreshes.
//
// The core performs no I/O, never persists state, and never mutates an
// annotation once it has been handed to Build.
package geocluster
