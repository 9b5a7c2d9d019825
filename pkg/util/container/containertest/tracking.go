// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package containertest

import (
	"context"
	"testing"

	"github.com/cockroachdb/containers/pkg/util/container/alloc"
	"github.com/stretchr/testify/require"
)

// TrackingAllocator wraps an allocator and records every call made
// through it.
type TrackingAllocator[T any] struct {
	inner alloc.Allocator[T]

	Allocs      int
	Deallocs    int
	Constructs  int
	Destroys    int
	LiveSlots   int
	OpenSlots   int
	DestroyLog  []T
	logDestroys bool
}

var _ alloc.Allocator[int] = (*TrackingAllocator[int])(nil)

// NewTrackingAllocator wraps inner. A nil inner means alloc.Default.
func NewTrackingAllocator[T any](inner alloc.Allocator[T]) *TrackingAllocator[T] {
	if inner == nil {
		inner = alloc.Default[T]()
	}
	return &TrackingAllocator[T]{inner: inner}
}

// LogDestroys makes the allocator record the value of every destroyed
// element in DestroyLog.
func (a *TrackingAllocator[T]) LogDestroys() *TrackingAllocator[T] {
	a.logDestroys = true
	return a
}

// ResetLog empties DestroyLog.
func (a *TrackingAllocator[T]) ResetLog() {
	a.DestroyLog = a.DestroyLog[:0]
}

// Allocate implements alloc.Allocator.
func (a *TrackingAllocator[T]) Allocate(ctx context.Context, n int) (alloc.Block[T], error) {
	b, err := a.inner.Allocate(ctx, n)
	if err != nil {
		return nil, err
	}
	if n > 0 {
		a.Allocs++
		a.OpenSlots += n
	}
	return b, nil
}

// Deallocate implements alloc.Allocator.
func (a *TrackingAllocator[T]) Deallocate(ctx context.Context, b alloc.Block[T], n int) {
	if n > 0 {
		a.Deallocs++
		a.OpenSlots -= n
	}
	a.inner.Deallocate(ctx, b, n)
}

// Construct implements alloc.Allocator.
func (a *TrackingAllocator[T]) Construct(s *alloc.Slot[T], v T) {
	a.Constructs++
	a.LiveSlots++
	a.inner.Construct(s, v)
}

// Destroy implements alloc.Allocator.
func (a *TrackingAllocator[T]) Destroy(s *alloc.Slot[T]) {
	if a.logDestroys {
		a.DestroyLog = append(a.DestroyLog, *s.Ptr())
	}
	a.Destroys++
	a.LiveSlots--
	a.inner.Destroy(s)
}

// Resource implements alloc.Allocator.
func (a *TrackingAllocator[T]) Resource() alloc.Resource {
	return a.inner.Resource()
}

// CheckLifecycle asserts that every construction was matched by a
// destruction and every block handed out was returned.
func CheckLifecycle[T any](t testing.TB, a *TrackingAllocator[T]) {
	t.Helper()
	require.Equal(t, a.Constructs, a.Destroys, "constructs vs destroys")
	require.Zero(t, a.LiveSlots, "live slots")
	require.Equal(t, a.Allocs, a.Deallocs, "allocs vs deallocs")
	require.Zero(t, a.OpenSlots, "outstanding slots")
}
