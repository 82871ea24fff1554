// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mapkit/geocluster"
)

// demoConfig is the on-disk YAML form of geocluster.Config; fixture
// generation is controlled by command-line flags, not by this file.
// AnnotationCenterOffset and AnimationOptions are not carried. Field
// names are chosen to
// read naturally in YAML rather than mirroring Go's exported names
// one-for-one.
type demoConfig struct {
	GridCellWidth         float64 `yaml:"grid_cell_width"`
	GridCellHeight        float64 `yaml:"grid_cell_height"`
	AnnotationWidth       float64 `yaml:"annotation_width"`
	AnnotationHeight      float64 `yaml:"annotation_height"`
	AnimationDurationMS   int     `yaml:"animation_duration_ms"`
	ClusteringEnabled     bool    `yaml:"clustering_enabled"`
	MinimalZoomChange     float64 `yaml:"minimal_zoom_change"`
	PreferBatchedGeometry bool    `yaml:"prefer_batched_geometry"`
}

func defaultDemoConfig() demoConfig {
	c := geocluster.DefaultConfig()
	return demoConfig{
		GridCellWidth:         c.GridCellW,
		GridCellHeight:        c.GridCellH,
		AnnotationWidth:       c.AnnotationSize.X,
		AnnotationHeight:      c.AnnotationSize.Y,
		AnimationDurationMS:   int(c.AnimationDuration / time.Millisecond),
		ClusteringEnabled:     c.ClusteringEnabled,
		MinimalZoomChange:     c.MinimalZoomChange,
		PreferBatchedGeometry: c.PreferBatchedGeometry,
	}
}

func loadDemoConfig(path string) (demoConfig, error) {
	cfg := defaultDemoConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return demoConfig{}, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return demoConfig{}, err
	}
	return cfg, nil
}

func (d demoConfig) toGeoclusterConfig() geocluster.Config {
	return geocluster.Config{
		GridCellW:             d.GridCellWidth,
		GridCellH:             d.GridCellHeight,
		AnnotationSize:        geocluster.Point{X: d.AnnotationWidth, Y: d.AnnotationHeight},
		AnimationDuration:     time.Duration(d.AnimationDurationMS) * time.Millisecond,
		ClusteringEnabled:     d.ClusteringEnabled,
		MinimalZoomChange:     d.MinimalZoomChange,
		PreferBatchedGeometry: d.PreferBatchedGeometry,
	}
}
