// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

// Package alloc defines the allocator capability the containers in
// pkg/util/container are built on.
//
// Storage is handed out as Blocks of Slots. A Slot is room for one element
// that may or may not currently hold a constructed value; only Construct
// and Destroy move a slot between the two states. Memory for a block is
// obtained from the Go heap, but only after the allocator's Resource has
// agreed to the reservation, which is how a container is bounded by a
// memory budget (see pkg/util/mon) and how allocation failures arise.
package alloc
