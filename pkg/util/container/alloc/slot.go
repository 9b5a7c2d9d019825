// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package alloc

import "unsafe"

// Slot is storage for a single element which may or may not be
// constructed.
type Slot[T any] struct {
	// value must stay the first field, see SlotOf.
	value T
	live  bool
}

// SlotOf returns the slot whose value p points to. p must have been
// obtained from Ptr.
func SlotOf[T any](p *T) *Slot[T] {
	return (*Slot[T])(unsafe.Pointer(p))
}

// Ptr returns a pointer to the slot's value. Dereferencing it is only
// meaningful while the slot is constructed.
func (s *Slot[T]) Ptr() *T {
	return &s.value
}

// Live returns whether the slot holds a constructed value.
func (s *Slot[T]) Live() bool {
	return s.live
}

// Block is a run of contiguous slots returned by an Allocator.
type Block[T any] []Slot[T]

// BlockOf returns the single-slot block whose only slot is s. It is used
// to hand a node allocated with Allocate(ctx, 1) back to Deallocate when
// only a pointer to the slot was kept.
func BlockOf[T any](s *Slot[T]) Block[T] {
	return unsafe.Slice(s, 1)
}

// SlotSize is the number of bytes a single Slot[T] occupies.
func SlotSize[T any]() int64 {
	var s Slot[T]
	return int64(unsafe.Sizeof(s))
}

// Cloner is implemented by element types that need more than a shallow
// copy when a container is copied.
type Cloner[T any] interface {
	Clone() T
}

// Copy returns a copy of v suitable for copy construction: v.Clone() if T
// implements Cloner[T], v itself otherwise.
func Copy[T any](v T) T {
	if c, ok := any(v).(Cloner[T]); ok {
		return c.Clone()
	}
	return v
}
