// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/mapkit/geocluster"
)

var configPath string

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "geocluster-demo",
	Short: "Exercise the geocluster spatial clustering engine against synthetic fixtures",
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to a YAML config file")
	rootCmd.AddCommand(clusterCmd)
	rootCmd.AddCommand(benchCmd)
}

var (
	clusterCount  int
	clusterSeed   int64
	clusterJitter float64
)

var clusterCmd = &cobra.Command{
	Use:   "cluster",
	Short: "Build a tree over a synthetic fixture and print the clustered result",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadDemoConfig(configPath)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		gcfg := cfg.toGeoclusterConfig()

		centers := []geocluster.Coordinate{
			{Latitude: 40.7128, Longitude: -73.9352},  // New York
			{Latitude: 37.8546, Longitude: -122.6780}, // Oakland
		}
		annotations := genFixture(clusterSeed, clusterCount, centers, clusterJitter)

		ctx := context.Background()
		host := &demoHost{
			viewport: worldViewport(),
			zoom:     4,
			verbose:  true,
		}
		controller := geocluster.NewController(host, gcfg)

		if err := controller.SetAnnotations(ctx, annotations); err != nil {
			return fmt.Errorf("set annotations: %w", err)
		}

		fmt.Printf("Built tree over %d annotations.\n", len(annotations))
		if err := controller.Refresh(ctx, false, true); err != nil {
			return fmt.Errorf("refresh: %w", err)
		}
		return nil
	},
}

func init() {
	clusterCmd.Flags().IntVar(&clusterCount, "count", 1000, "Number of synthetic annotations")
	clusterCmd.Flags().Int64Var(&clusterSeed, "seed", 1, "Random seed for fixture generation")
	clusterCmd.Flags().Float64Var(&clusterJitter, "jitter", 0.05, "Jitter, in degrees, around each fixture center")
}

var benchCount int

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Time Build and Cluster over a synthetic fixture",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadDemoConfig(configPath)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		gcfg := cfg.toGeoclusterConfig()

		centers := []geocluster.Coordinate{{Latitude: 0, Longitude: 0}}
		annotations := genFixture(1, benchCount, centers, 10)

		ctx := context.Background()

		start := time.Now()
		tree, err := geocluster.Build(ctx, annotations, mercatorProjection)
		if err != nil {
			return fmt.Errorf("build: %w", err)
		}
		buildElapsed := time.Since(start)

		start = time.Now()
		clusters, err := geocluster.Cluster(ctx, worldViewport(), gcfg.GridCellW, gcfg.GridCellH, tree, nil, gcfg.PreferBatchedGeometry)
		if err != nil {
			return fmt.Errorf("cluster: %w", err)
		}
		clusterElapsed := time.Since(start)

		fmt.Printf("Build:   %d annotations in %s\n", len(annotations), buildElapsed)
		fmt.Printf("Cluster: %d clusters in %s\n", len(clusters), clusterElapsed)
		return nil
	},
}

func init() {
	benchCmd.Flags().IntVar(&benchCount, "count", 100000, "Number of synthetic annotations")
}

// worldViewport is a planar rectangle large enough to cover the whole
// Mercator-projected world, used by the demo commands that don't
// otherwise care about a specific viewport.
func worldViewport() geocluster.Rect {
	const half = 20037508.34
	return geocluster.Rect{X: -half, Y: -half, W: 2 * half, H: 2 * half}
}
