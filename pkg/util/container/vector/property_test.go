// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package vector

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

	properties.Property("push-back then pop-back restores length and capacity only grows",
		prop.ForAll(func(vals []int) bool {
			v := New[int]()
			defer v.Close(ctx)
			prevCap := 0
			for i, x := range vals {
				if v.PushBack(ctx, x) != nil {
					return false
				}
				if v.Len() != i+1 || v.Cap() < v.Len() || v.Cap() < prevCap || *v.Back() != x {
					return false
				}
				prevCap = v.Cap()
			}
			for i := len(vals); i > 0; i-- {
				v.PopBack()
				if v.Len() != i-1 || v.Cap() != prevCap {
					return false
				}
			}
			return v.Empty()
		}, gen.SliceOf(gen.Int())))

	properties.Property("insert then erase at the same position is the identity",
		prop.ForAll(func(vals []int, at uint, x int) bool {
			v, err := FromSlice(ctx, vals)
			if err != nil {
				return false
			}
			defer v.Close(ctx)
			pos := int(at % uint(len(vals)+1))
			got, err := v.Insert(ctx, pos, x)
			if err != nil || got != pos || *v.At(pos) != x {
				return false
			}
			v.Erase(pos)
			return slices.Equal(vals, v.ToSlice())
		}, gen.SliceOf(gen.Int()), gen.UInt(), gen.Int()))

	properties.Property("reserve preserves contents and never shrinks",
		prop.ForAll(func(vals []int, n uint8) bool {
			v, err := FromSlice(ctx, vals)
			if err != nil {
				return false
			}
			defer v.Close(ctx)
			before := v.Cap()
			if v.Reserve(ctx, int(n)) != nil {
				return false
			}
			return v.Cap() >= int(n) && v.Cap() >= before && slices.Equal(vals, v.ToSlice())
		}, gen.SliceOf(gen.Int()), gen.UInt8()))

	properties.Property("a clone is equal and independent",
		prop.ForAll(func(vals []int) bool {
			v, err := FromSlice(ctx, vals)
			if err != nil {
				return false
			}
			defer v.Close(ctx)
			c, err := v.Clone(ctx)
			if err != nil {
				return false
			}
			defer c.Close(ctx)
			if !Equal(v, c) {
				return false
			}
			if c.PushBack(ctx, 1) != nil {
				return false
			}
			return v.Len() == len(vals) && slices.Equal(vals, v.ToSlice())
		}, gen.SliceOf(gen.Int())))

	properties.TestingRun(t)
}
