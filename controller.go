// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geocluster

import (
	"context"
	"sort"
	"strings"
	"sync/atomic"
)

// Controller holds the current tree, the current visible-cluster set,
// and the configuration driving successive refreshes against a Host
// (spec §4.6). A Controller is not safe for concurrent Refresh calls;
// Refresh itself rejects concurrent invocations rather than racing.
type Controller struct {
	host   Host
	config Config

	tree     *Tree
	lastZoom float64
	haveZoom bool

	visible map[string]*Cluster // keyed by clusterSetKey of the members

	refreshing atomic.Bool
}

// NewController creates a controller bound to host with the given
// configuration.
func NewController(host Host, config Config) *Controller {
	return &Controller{
		host:    host,
		config:  config,
		visible: make(map[string]*Cluster),
	}
}

// SetAnnotations rebuilds the tree from scratch. The next Refresh
// recomputes everything against the new tree; the previously visible
// set is left untouched until then, matching spec.md §4.6.
func (c *Controller) SetAnnotations(ctx context.Context, annotations []Annotation) error {
	tree, err := Build(ctx, annotations, c.host.Project)
	if err != nil {
		return wrapError("set_annotations", err)
	}
	if c.tree != nil {
		c.tree.Release()
	}
	c.tree = tree
	return nil
}

// Refresh recomputes clusters for the host's current viewport and
// reconciles them against the previously visible set, emitting
// add/remove/animation events through the Host's optional hooks.
//
// It rejects concurrent invocations with ErrBusy rather than
// serializing them, leaving the visible set untouched (spec §7).
func (c *Controller) Refresh(ctx context.Context, animated, force bool) error {
	if !c.refreshing.CompareAndSwap(false, true) {
		return wrapError("refresh", ErrBusy)
	}
	defer c.refreshing.Store(false)

	if !force && !c.host.IsMapVisible() {
		return nil
	}

	zoom := c.host.CurrentZoomLevel()
	if !force && c.haveZoom {
		delta := zoom - c.lastZoom
		if delta < 0 {
			delta = -delta
		}
		if delta < c.config.MinimalZoomChange {
			return nil
		}
	}

	viewport := c.host.CurrentViewportRect()

	clusteringEnabled := c.config.ClusteringEnabled
	if hook, ok := c.host.(ShouldClusterHook); ok {
		clusteringEnabled = hook.ShouldCluster(viewport, zoom)
	}

	var next []*Cluster
	if c.tree != nil {
		if clusteringEnabled {
			overlap := c.defaultOverlapPredicate()
			clusters, err := Cluster(ctx, viewport, c.config.GridCellW, c.config.GridCellH, c.tree, overlap, c.config.PreferBatchedGeometry)
			if err != nil {
				return wrapError("refresh", err)
			}
			next = clusters
		} else {
			members := Search(c.tree, viewport.Min(), viewport.Max())
			next = make([]*Cluster, 0, len(members))
			for _, m := range members {
				point := internalPoint{annotation: m, point: c.host.Project(m.AnnotationCoordinate())}
				next = append(next, newCluster([]internalPoint{point}, c.config.PreferBatchedGeometry))
			}
		}
	}

	for _, cl := range next {
		cl.ID = clusterSetKey(cl.members)
		if hook, ok := c.host.(ConfigureAnnotationHook); ok {
			hook.ConfigureAnnotationForDisplay(cl)
		}
	}

	nextByID := make(map[string]*Cluster, len(next))
	for _, cl := range next {
		nextByID[cl.ID] = cl
	}

	var toAdd, toRemove []*Cluster
	for id, cl := range nextByID {
		if _, ok := c.visible[id]; !ok {
			toAdd = append(toAdd, cl)
		}
	}
	for id, cl := range c.visible {
		if _, ok := nextByID[id]; !ok {
			toRemove = append(toRemove, cl)
		}
	}

	if len(toAdd) == 0 && len(toRemove) == 0 {
		c.lastZoom, c.haveZoom = zoom, true
		return nil
	}

	if hook, ok := c.host.(VisibleAnnotationsHook); ok {
		hook.WillUpdateVisibleAnnotations(toAdd, toRemove)
	}

	apply := func() {
		c.applyAnimationEvents(toRemove, nextByID)
		c.host.RemoveAnnotations(toRemove)
		c.host.AddAnnotations(toAdd)
		for _, cl := range toAdd {
			c.visible[cl.ID] = cl
		}
		for _, cl := range toRemove {
			delete(c.visible, cl.ID)
		}
	}

	if animated {
		if driver, ok := c.host.(AnimationDriverHook); ok {
			done := make(chan bool, 1)
			driver.PerformAnimations(apply, func(finished bool) { done <- finished })
			<-done
		} else {
			apply()
		}
	} else {
		apply()
	}

	if hook, ok := c.host.(VisibleAnnotationsHook); ok {
		hook.DidUpdateVisibleAnnotations(toAdd, toRemove)
	}

	c.lastZoom, c.haveZoom = zoom, true
	return nil
}

// applyAnimationEvents fires WillAnimateAnnotation/DidAnimateAnnotation
// for each removed cluster that has a plausible replacement in next
// (spec.md §4.6: "for each annotation being removed that also has a
// containing cluster in N"). Best-effort: a panicking hook must not
// corrupt the controller (spec §7), so each call is isolated.
func (c *Controller) applyAnimationEvents(toRemove []*Cluster, nextByID map[string]*Cluster) {
	hook, ok := c.host.(AnimationHook)
	if !ok {
		return
	}
	for _, removed := range toRemove {
		replacement := c.replacementFor(removed, nextByID)
		if replacement == nil {
			continue
		}
		c.safeAnimate(func() { hook.WillAnimateAnnotation(removed, replacement) })
		c.safeAnimate(func() { hook.DidAnimateAnnotation(removed, replacement) })
	}
}

func (c *Controller) safeAnimate(fn func()) {
	defer func() { recover() }()
	fn()
}

// replacementFor finds the newly visible cluster, if any, that
// absorbed one of removed's members — the intuitive "this is what it
// turned into" relationship. removed may have been a multi-member
// cluster whose members scattered across several replacements; any
// member match is enough to report one.
func (c *Controller) replacementFor(removed *Cluster, nextByID map[string]*Cluster) *Cluster {
	for _, next := range nextByID {
		for _, m := range next.members {
			for _, rm := range removed.members {
				if m.AnnotationID() == rm.AnnotationID() {
					return next
				}
			}
		}
	}
	return nil
}

// defaultOverlapPredicate builds the §6 reference overlap predicate:
// project each cluster's centroid into view space, build a rectangle
// of the configured annotation size centered (with offset) on it, and
// test rectangle intersection.
func (c *Controller) defaultOverlapPredicate() OverlapPredicate {
	return func(a, b *Cluster) bool {
		return c.rectFor(a).Intersects(c.rectFor(b))
	}
}

func (c *Controller) rectFor(cl *Cluster) Rect {
	p := c.host.PointForAnnotationInView(cl)
	return Rect{
		X: p.X + c.config.AnnotationCenterOffset.X - c.config.AnnotationSize.X/2,
		Y: p.Y + c.config.AnnotationCenterOffset.Y - c.config.AnnotationSize.Y/2,
		W: c.config.AnnotationSize.X,
		H: c.config.AnnotationSize.Y,
	}
}

// clusterSetKey computes a cluster's stable identity: its members'
// identities, sorted and joined with NUL separators, so that two
// clusters with the same membership, built on different refreshes,
// compare equal.
func clusterSetKey(members []Annotation) string {
	ids := make([]string, len(members))
	for i, m := range members {
		ids[i] = m.AnnotationID()
	}
	sort.Strings(ids)
	return strings.Join(ids, "\x00")
}
