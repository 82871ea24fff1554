// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geocluster

import (
	"context"
	"sync/atomic"
)

// cancelChecker provides cheap, periodic context-cancellation checks
// for tight loops — Build's and Cluster's explicit-stack traversals
// can visit tens of thousands of nodes, and a raw select on ctx.Done()
// every iteration measurably slows them down. Checking every
// checkInterval iterations keeps responsiveness to cancellation
// without paying the channel-select cost on every node.
//
// The engine has no internal timeouts (spec §5): cancelChecker only
// ever reacts to the caller's own ctx, never imposes one.
type cancelChecker struct {
	ctx           context.Context
	checkInterval int64
	counter       int64
	cancelled     atomic.Bool
}

func newCancelChecker(ctx context.Context, checkInterval int) *cancelChecker {
	if ctx == nil {
		ctx = context.Background()
	}
	if checkInterval <= 0 {
		checkInterval = 1024
	}
	return &cancelChecker{ctx: ctx, checkInterval: int64(checkInterval)}
}

// Check returns true once ctx is done. It only actually selects on
// ctx.Done() every checkInterval calls.
func (c *cancelChecker) Check() bool {
	if c.cancelled.Load() {
		return true
	}
	c.counter++
	if c.counter%c.checkInterval != 0 {
		return false
	}
	select {
	case <-c.ctx.Done():
		c.cancelled.Store(true)
		return true
	default:
		return false
	}
}

// Err returns the context's error once Check has observed cancellation.
func (c *cancelChecker) Err() error {
	return c.ctx.Err()
}
