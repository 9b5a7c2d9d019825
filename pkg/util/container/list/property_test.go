// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package list

import (
	"context"
	"slices"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestProperties(t *testing.T) {
	ctx := context.Background()
	params := gopter.DefaultTestParameters()
	params.MinSuccessfulTests = 200
	properties := gopter.NewProperties(params)

	properties.Property("the ring closes after Len()+1 steps in both directions",
		prop.ForAll(func(front, back []int) bool {
			l := New[int]()
			defer l.Close(ctx)
			for _, v := range front {
				if l.PushFront(ctx, v) != nil {
					return false
				}
			}
			for _, v := range back {
				if l.PushBack(ctx, v) != nil {
					return false
				}
			}
			fwd, bwd := l.End(), l.End()
			for i := 0; i < l.Len(); i++ {
				fwd, bwd = fwd.Next(), bwd.Prev()
				if fwd == l.End() || bwd == l.End() {
					return false
				}
			}
			return fwd.Next() == l.End() && bwd.Prev() == l.End() &&
				l.Len() == len(front)+len(back) && l.checkRing() == nil
		}, gen.SliceOf(gen.Int()), gen.SliceOf(gen.Int())))

	properties.Property("push-front reverses and push-back preserves order",
		prop.ForAll(func(vals []int) bool {
			f, b := New[int](), New[int]()
			defer f.Close(ctx)
			defer b.Close(ctx)
			for _, v := range vals {
				if f.PushFront(ctx, v) != nil || b.PushBack(ctx, v) != nil {
					return false
				}
			}
			rev := slices.Clone(vals)
			slices.Reverse(rev)
			return slices.Equal(vals, b.ToSlice()) && slices.Equal(rev, f.ToSlice())
		}, gen.SliceOf(gen.Int())))

	properties.Property("erasing other elements keeps an iterator valid",
		prop.ForAll(func(vals []int, keep uint) bool {
			if len(vals) == 0 {
				return true
			}
			l, err := FromSlice(ctx, vals)
			if err != nil {
				return false
			}
			defer l.Close(ctx)
			idx := int(keep % uint(len(vals)))
			it := at(l, idx)
			l.EraseRange(ctx, l.Begin(), it)
			l.EraseRange(ctx, it.Next(), l.End())
			return l.Len() == 1 && *it.Value() == vals[idx] && l.Begin() == it
		}, gen.SliceOf(gen.Int()), gen.UInt()))

	properties.Property("a clone is equal and owns its nodes",
		prop.ForAll(func(vals []int) bool {
			l, err := FromSlice(ctx, vals)
			if err != nil {
				return false
			}
			defer l.Close(ctx)
			c, err := l.Clone(ctx)
			if err != nil {
				return false
			}
			if !Equal(l, c) {
				return false
			}
			c.Close(ctx)
			return slices.Equal(vals, l.ToSlice())
		}, gen.SliceOf(gen.Int())))

	properties.TestingRun(t)
}
