// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package list_test

import (
	"context"
	"fmt"

	"github.com/cockroachdb/containers/pkg/util/container/list"
)

func Example() {
	ctx := context.Background()

	// Create a new list and put some numbers in it.
	l := list.New[int]()
	defer l.Close(ctx)
	must := func(err error) {
		if err != nil {
			panic(err)
		}
	}
	must(l.PushBack(ctx, 4))
	must(l.PushFront(ctx, 1))
	e4 := l.End().Prev()
	_, err := l.Insert(ctx, e4, 3)
	must(err)
	_, err = l.Insert(ctx, l.Begin().Next(), 2)
	must(err)

	// Iterate through list and print its contents.
	for e := l.Begin(); e != l.End(); e = e.Next() {
		fmt.Println(*e.Value())
	}

	// Output:
	// 1
	// 2
	// 3
	// 4
}
