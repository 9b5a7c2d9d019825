// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

// Package mon implements memory monitors and the accounts that draw on
// them. A MemoryMonitor enforces a byte limit over all the accounts
// created from it; a BoundAccount tracks the bytes one client (typically
// one container) has reserved.
//
// A *BoundAccount satisfies alloc.Resource, so a container can be bounded
// by a memory budget:
//
//	m := mon.NewMonitor("rows", 64<<20, nil)
//	acc := m.MakeBoundAccount()
//	v := vector.New[row](vector.WithResource[row](&acc))
//	...
//	v.Close(ctx)
//	acc.Close(ctx)
//	m.Stop(ctx)
package mon
