// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package containertest

import (
	"context"
	"testing"

	"github.com/cockroachdb/containers/pkg/util/container/alloc"
	"github.com/cockroachdb/containers/pkg/util/randutil"
	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
)

func TestModelApply(t *testing.T) {
	m := Model{1, 2, 3}
	require.Equal(t, Model{1, 2, 3, 4}, m.Apply(Op{Kind: PushBack, Val: 4}))
	require.Equal(t, Model{0, 1, 2, 3}, m.Apply(Op{Kind: PushFront, Val: 0}))
	require.Equal(t, Model{1, 2}, m.Apply(Op{Kind: PopBack}))
	require.Equal(t, Model{2, 3}, m.Apply(Op{Kind: PopFront}))
	require.Equal(t, Model{1, 9, 2, 3}, m.Apply(Op{Kind: Insert, Pos: 1, Val: 9}))
	require.Equal(t, Model{1, 2, 7, 7, 3}, m.Apply(Op{Kind: InsertN, Pos: 2, N: 2, Val: 7}))
	require.Equal(t, Model{1, 3}, m.Apply(Op{Kind: Erase, Pos: 1}))
	require.Equal(t, Model{3}, m.Apply(Op{Kind: EraseRange, Pos: 0, End: 2}))
	require.Equal(t, Model{}, m.Apply(Op{Kind: Clear}))
	require.Equal(t, Model{1, 2, 3, 5, 5}, m.Apply(Op{Kind: Resize, N: 5, Val: 5}))
	require.Equal(t, Model{1}, m.Apply(Op{Kind: Resize, N: 1}))
	// Apply never aliases its receiver.
	require.Equal(t, Model{1, 2, 3}, m)
}

func TestRandomOpsAreValid(t *testing.T) {
	rng, _ := randutil.NewTestRand()
	all := []OpKind{PushBack, PushFront, PopBack, PopFront, Insert, InsertN, Erase, EraseRange, Clear, Resize}
	m := Model{}
	for _, o := range RandomOps(rng, 500, 0, all...) {
		// Apply panics on an out-of-range op.
		m = m.Apply(o)
		require.NotEmpty(t, o.String())
	}
}

func TestFailingResource(t *testing.T) {
	ctx := context.Background()
	var r FailingResource
	a := NewTrackingAllocator[int](alloc.New[int](&r))

	b, err := a.Allocate(ctx, 2)
	require.NoError(t, err)
	r.FailAfter(1)
	b2, err := a.Allocate(ctx, 1)
	require.NoError(t, err)
	_, err = a.Allocate(ctx, 4)
	require.True(t, errors.Is(err, ErrInjected))
	require.True(t, alloc.IsAllocationFailure(err))
	require.Equal(t, 1, r.Failures)
	require.Equal(t, 3*alloc.SlotSize[int](), r.Used())

	r.Disarm()
	a.Construct(&b[0], 1)
	a.Destroy(&b[0])
	a.Deallocate(ctx, b, 2)
	a.Deallocate(ctx, b2, 1)
	require.Zero(t, r.Used())
	CheckLifecycle[int](t, a)
}
