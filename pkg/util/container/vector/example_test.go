// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package vector_test

import (
	"context"
	"fmt"

	"github.com/cockroachdb/containers/pkg/util/container/alloc"
	"github.com/cockroachdb/containers/pkg/util/container/vector"
	"github.com/cockroachdb/containers/pkg/util/mon"
)

func Example() {
	ctx := context.Background()
	v := vector.New[int]()
	defer v.Close(ctx)

	for i := 1; i <= 4; i++ {
		if err := v.PushBack(ctx, i); err != nil {
			panic(err)
		}
	}
	if _, err := v.Insert(ctx, 2, 10); err != nil {
		panic(err)
	}
	v.Erase(0)

	for i, x := range v.All() {
		fmt.Println(i, x)
	}
	fmt.Println(v, v.Len(), v.Cap())

	// Output:
	// 0 2
	// 1 10
	// 2 3
	// 3 4
	// [2 10 3 4] 4 8
}

// A vector drawing on a memory monitor reports a budget error instead of
// growing past the limit.
func Example_budget() {
	ctx := context.Background()
	m := mon.NewMonitor("example", 4*alloc.SlotSize[int](), nil)
	acc := m.MakeBoundAccount()
	v := vector.New(vector.WithResource[int](&acc))

	var err error
	for i := 0; err == nil; i++ {
		err = v.PushBack(ctx, i)
	}
	fmt.Println(v, mon.IsMemoryBudgetExceededError(err))

	v.Close(ctx)
	acc.Close(ctx)
	m.Stop(ctx)

	// Output:
	// [0 1] true
}
