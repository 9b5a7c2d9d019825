// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package alloc

import (
	"context"
	"fmt"

	"github.com/cockroachdb/containers/pkg/util/buildutil"
	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/redact"
)

// ErrAllocationFailed marks every error returned by Allocate.
var ErrAllocationFailed = errors.New("allocation failed")

// IsAllocationFailure returns whether err came out of an allocator.
func IsAllocationFailure(err error) bool {
	return errors.Is(err, ErrAllocationFailed)
}

// Resource is the source of memory an allocator draws on. Its method set
// matches mon.BoundAccount, so a *mon.BoundAccount is a Resource.
type Resource interface {
	// Grow reserves bytes, or returns an error leaving the resource
	// unchanged.
	Grow(ctx context.Context, bytes int64) error
	// Shrink releases bytes previously reserved with Grow.
	Shrink(ctx context.Context, bytes int64)
}

type heapResource struct{}

// Grow implements Resource.
func (heapResource) Grow(context.Context, int64) error { return nil }

// Shrink implements Resource.
func (heapResource) Shrink(context.Context, int64) {}

// Heap is the unlimited Resource. Reservations against it always succeed.
var Heap Resource = heapResource{}

// Allocator is the capability a container uses for every allocation,
// deallocation, construction and destruction of its elements.
type Allocator[T any] interface {
	// Allocate returns n unconstructed slots. A zero n returns a nil block.
	Allocate(ctx context.Context, n int) (Block[T], error)
	// Deallocate releases a block previously returned by Allocate with the
	// same n. Every slot must have been destroyed.
	Deallocate(ctx context.Context, b Block[T], n int)
	// Construct initializes the unconstructed slot s with v.
	Construct(s *Slot[T], v T)
	// Destroy finalizes the constructed slot s.
	Destroy(s *Slot[T])
	// Resource returns the memory source, so that the allocator can be
	// rebound to another element type.
	Resource() Resource
}

// Standard is the default Allocator. It charges SlotSize[T]() bytes per
// slot to its Resource and obtains the slots themselves from the Go heap.
type Standard[T any] struct {
	res Resource
}

var _ Allocator[int] = Standard[int]{}

// New returns a Standard allocator drawing on res. A nil res means Heap.
func New[T any](res Resource) Standard[T] {
	if res == nil {
		res = Heap
	}
	return Standard[T]{res: res}
}

// Default returns the Standard allocator on the Heap resource.
func Default[T any]() Allocator[T] {
	return New[T](Heap)
}

// Rebind returns an allocator for U drawing on the same Resource as a.
func Rebind[U, T any](a Allocator[T]) Allocator[U] {
	return New[U](a.Resource())
}

// Resource implements Allocator.
func (a Standard[T]) Resource() Resource {
	if a.res == nil {
		return Heap
	}
	return a.res
}

// Allocate implements Allocator.
func (a Standard[T]) Allocate(ctx context.Context, n int) (Block[T], error) {
	if n < 0 {
		return nil, errors.AssertionFailedf("allocating %d slots", n)
	}
	if n == 0 {
		return nil, nil
	}
	if err := a.Resource().Grow(ctx, int64(n)*SlotSize[T]()); err != nil {
		return nil, errors.Mark(
			errors.Wrapf(err, "allocating %d slots of %s", n, typeName[T]()),
			ErrAllocationFailed)
	}
	return make(Block[T], n), nil
}

// Deallocate implements Allocator.
func (a Standard[T]) Deallocate(ctx context.Context, b Block[T], n int) {
	if buildutil.Invariants {
		if len(b) != n {
			panic(errors.AssertionFailedf("deallocating block of %d slots as %d", len(b), n))
		}
		for i := range b {
			if b[i].live {
				panic(errors.AssertionFailedf("deallocating block with live slot %d", i))
			}
		}
	}
	if n == 0 {
		return
	}
	a.Resource().Shrink(ctx, int64(n)*SlotSize[T]())
}

// Construct implements Allocator.
func (Standard[T]) Construct(s *Slot[T], v T) {
	if buildutil.Invariants && s.live {
		panic(errors.AssertionFailedf("constructing into a live slot"))
	}
	s.value = v
	s.live = true
}

// Destroy implements Allocator. The value is zeroed so that anything it
// referenced can be collected.
func (Standard[T]) Destroy(s *Slot[T]) {
	if buildutil.Invariants && !s.live {
		panic(errors.AssertionFailedf("destroying an unconstructed slot"))
	}
	var zero T
	s.value = zero
	s.live = false
}

func typeName[T any]() redact.SafeString {
	var zero T
	return redact.SafeString(fmt.Sprintf("%T", any(&zero))[1:])
}
