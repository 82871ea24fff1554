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

func TestBuildEmpty(t *testing.T) {
	t.Parallel()

	tree, err := geocluster.Build(context.Background(), nil, identityProjection)
	require.NoError(t, err)
	require.Equal(t, 0, tree.Len())
	require.Empty(t, geocluster.Members(tree))
}

func TestBuildRejectsNilProjection(t *testing.T) {
	t.Parallel()

	annotations := genTestAnnotations(3, 10, 1)
	_, err := geocluster.Build(context.Background(), annotations, nil)
	require.Error(t, err)
}

// TestBuildCompleteness is invariant 1 of spec §8: members(build(X)) =
// set(X) for any finite X.
func TestBuildCompleteness(t *testing.T) {
	t.Parallel()

	for _, n := range []int{0, 1, 2, 3, 7, 100, 1000} {
		n := n
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			t.Parallel()

			annotations := genTestAnnotations(n, 1000, int64(n))
			tree, err := geocluster.Build(context.Background(), annotations, identityProjection)
			require.NoError(t, err)
			require.Equal(t, n, tree.Len())

			want := annotationIDs(annotations)
			got := annotationIDs(geocluster.Members(tree))
			sort.Strings(want)
			sort.Strings(got)
			require.Equal(t, want, got)
		})
	}
}

// TestBuildDuplicateCoordinates exercises the backward-scan median
// disambiguation: many annotations sharing the same axis value must
// not be lost or duplicated.
func TestBuildDuplicateCoordinates(t *testing.T) {
	t.Parallel()

	annotations := make([]geocluster.Annotation, 50)
	for i := range annotations {
		annotations[i] = newTestAnnotation(fmt.Sprintf("dup%d", i), 5, 5)
	}

	tree, err := geocluster.Build(context.Background(), annotations, identityProjection)
	require.NoError(t, err)
	require.Equal(t, 50, tree.Len())

	want := annotationIDs(annotations)
	got := annotationIDs(geocluster.Members(tree))
	sort.Strings(want)
	sort.Strings(got)
	require.Equal(t, want, got)
}

// TestSearchWorldRectReturnsEverything is invariant-adjacent to scenario S6: searching
// the whole world rect returns every member exactly once.
func TestSearchWorldRectReturnsEverything(t *testing.T) {
	t.Parallel()

	annotations := genTestAnnotations(500, 1000, 42)
	tree, err := geocluster.Build(context.Background(), annotations, identityProjection)
	require.NoError(t, err)

	results := geocluster.Search(tree, geocluster.Point{X: -1, Y: -1}, geocluster.Point{X: 1001, Y: 1001})
	require.Len(t, results, len(annotations))

	want := annotationIDs(annotations)
	got := annotationIDs(results)
	sort.Strings(want)
	sort.Strings(got)
	require.Equal(t, want, got)
}

func TestSearchRestrictsToRect(t *testing.T) {
	t.Parallel()

	annotations := []geocluster.Annotation{
		newTestAnnotation("inside-1", 1, 1),
		newTestAnnotation("inside-2", 9, 9),
		newTestAnnotation("outside", 50, 50),
	}
	tree, err := geocluster.Build(context.Background(), annotations, identityProjection)
	require.NoError(t, err)

	results := geocluster.Search(tree, geocluster.Point{X: 0, Y: 0}, geocluster.Point{X: 10, Y: 10})
	got := annotationIDs(results)
	sort.Strings(got)
	require.Equal(t, []string{"inside-1", "inside-2"}, got)
}

func TestSearchEmptyTree(t *testing.T) {
	t.Parallel()

	tree, err := geocluster.Build(context.Background(), nil, identityProjection)
	require.NoError(t, err)
	require.Empty(t, geocluster.Search(tree, geocluster.Point{}, geocluster.Point{X: 1, Y: 1}))
}

func TestBuildCancellation(t *testing.T) {
	t.Parallel()

	annotations := genTestAnnotations(10000, 1000, 7)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := geocluster.Build(ctx, annotations, identityProjection)
	require.Error(t, err)
}
