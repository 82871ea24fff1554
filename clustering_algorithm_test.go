// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geocluster_test

import (
	"context"
	"fmt"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mapkit/geocluster"
)

// alwaysOverlap merges any two clusters whose cells end up adjacent,
// regardless of centroid distance; it isolates the grid/neighbor logic
// from centroid-distance thresholds in these tests.
func alwaysOverlap(a, b *geocluster.Cluster) bool { return true }

func buildAndCluster(t *testing.T, annotations []geocluster.Annotation, rect geocluster.Rect, cellW, cellH float64, overlap geocluster.OverlapPredicate) []*geocluster.Cluster {
	t.Helper()
	tree, err := geocluster.Build(context.Background(), annotations, identityProjection)
	require.NoError(t, err)

	clusters, err := geocluster.Cluster(context.Background(), rect, cellW, cellH, tree, overlap, false)
	require.NoError(t, err)
	return clusters
}

func TestClusterEmptyTreeProducesNoClusters(t *testing.T) {
	t.Parallel()

	clusters := buildAndCluster(t, nil, geocluster.Rect{X: 0, Y: 0, W: 100, H: 100}, 10, 10, alwaysOverlap)
	require.Empty(t, clusters)
}

func TestClusterInvalidRect(t *testing.T) {
	t.Parallel()

	tree, err := geocluster.Build(context.Background(), nil, identityProjection)
	require.NoError(t, err)

	_, err = geocluster.Cluster(context.Background(), geocluster.Rect{X: 0, Y: 0, W: -1, H: 10}, 10, 10, tree, nil, false)
	require.Error(t, err)
}

func TestClusterInvalidCellSize(t *testing.T) {
	t.Parallel()

	tree, err := geocluster.Build(context.Background(), nil, identityProjection)
	require.NoError(t, err)

	_, err = geocluster.Cluster(context.Background(), geocluster.Rect{X: 0, Y: 0, W: 100, H: 100}, 0, 10, tree, nil, false)
	require.Error(t, err)
}

// TestClusterSeparateGroupsStayDistinct is scenario S4: two tight
// groups of points, far apart, must not cross-contaminate into a
// single cluster.
func TestClusterSeparateGroupsStayDistinct(t *testing.T) {
	t.Parallel()

	annotations := []geocluster.Annotation{
		newTestAnnotation("g1-a", 1, 1),
		newTestAnnotation("g1-b", 1.1, 1.1),
		newTestAnnotation("g1-c", 0.9, 0.9),
		newTestAnnotation("g2-a", 500, 500),
		newTestAnnotation("g2-b", 500.1, 500.1),
	}

	clusters := buildAndCluster(t, annotations, geocluster.Rect{X: 0, Y: 0, W: 600, H: 600}, 5, 5, alwaysOverlap)

	require.Len(t, clusters, 2)
	counts := make(map[int]int)
	for _, c := range clusters {
		counts[c.Count()]++
	}
	require.Equal(t, 1, counts[3])
	require.Equal(t, 1, counts[2])
}

// TestClusterFourClosePointsMergeIntoOne is scenario S5: four points
// close enough together across adjacent cells converge into a single
// cluster.
func TestClusterFourClosePointsMergeIntoOne(t *testing.T) {
	t.Parallel()

	annotations := []geocluster.Annotation{
		newTestAnnotation("p1", 9, 9),
		newTestAnnotation("p2", 11, 9),
		newTestAnnotation("p3", 9, 11),
		newTestAnnotation("p4", 11, 11),
	}

	clusters := buildAndCluster(t, annotations, geocluster.Rect{X: 0, Y: 0, W: 20, H: 20}, 10, 10, alwaysOverlap)

	require.Len(t, clusters, 1)
	require.Equal(t, 4, clusters[0].Count())
	require.True(t, clusters[0].IsCluster())
}

// TestClusterIdempotent is invariant 9: clustering the same tree and
// rect twice produces the same membership partition.
func TestClusterIdempotent(t *testing.T) {
	t.Parallel()

	annotations := genTestAnnotations(300, 200, 9)
	tree, err := geocluster.Build(context.Background(), annotations, identityProjection)
	require.NoError(t, err)

	rect := geocluster.Rect{X: 0, Y: 0, W: 200, H: 200}

	first, err := geocluster.Cluster(context.Background(), rect, 10, 10, tree, nil, false)
	require.NoError(t, err)
	second, err := geocluster.Cluster(context.Background(), rect, 10, 10, tree, nil, false)
	require.NoError(t, err)

	require.Equal(t, memberSetSignatures(first), memberSetSignatures(second))
}

// TestClusterBatchedGeometryMatchesIncremental checks that
// PreferBatchedGeometry selects a different code path that still
// produces the same membership partition and centroid/radius values
// as the default incremental fold.
func TestClusterBatchedGeometryMatchesIncremental(t *testing.T) {
	t.Parallel()

	annotations := genTestAnnotations(300, 200, 11)
	tree, err := geocluster.Build(context.Background(), annotations, identityProjection)
	require.NoError(t, err)

	rect := geocluster.Rect{X: 0, Y: 0, W: 200, H: 200}

	incremental, err := geocluster.Cluster(context.Background(), rect, 10, 10, tree, nil, false)
	require.NoError(t, err)
	batched, err := geocluster.Cluster(context.Background(), rect, 10, 10, tree, nil, true)
	require.NoError(t, err)

	require.Equal(t, memberSetSignatures(incremental), memberSetSignatures(batched))

	bySignature := make(map[string]*geocluster.Cluster, len(incremental))
	for _, c := range incremental {
		ids := annotationIDs(c.Members())
		sort.Strings(ids)
		bySignature[fmt.Sprint(ids)] = c
	}
	for _, c := range batched {
		ids := annotationIDs(c.Members())
		sort.Strings(ids)
		want, ok := bySignature[fmt.Sprint(ids)]
		require.True(t, ok)
		require.InDelta(t, want.Coordinate().Latitude, c.Coordinate().Latitude, 1e-9)
		require.InDelta(t, want.Coordinate().Longitude, c.Coordinate().Longitude, 1e-9)
		require.InDelta(t, want.Radius(), c.Radius(), 1e-6)
	}
}

// TestClusterCancellationBeforePass3 ensures a cancelled context never
// yields a partial cluster list.
func TestClusterCancellationBeforePass3(t *testing.T) {
	t.Parallel()

	annotations := genTestAnnotations(5000, 1000, 3)
	tree, err := geocluster.Build(context.Background(), annotations, identityProjection)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	clusters, err := geocluster.Cluster(ctx, geocluster.Rect{X: 0, Y: 0, W: 1000, H: 1000}, 5, 5, tree, nil, false)
	require.Error(t, err)
	require.Nil(t, clusters)
}

func memberSetSignatures(clusters []*geocluster.Cluster) []string {
	sigs := make([]string, len(clusters))
	for i, c := range clusters {
		ids := annotationIDs(c.Members())
		sort.Strings(ids)
		sigs[i] = fmt.Sprint(ids)
	}
	sort.Strings(sigs)
	return sigs
}
