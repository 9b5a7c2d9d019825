// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

// Package vector implements Vector, a contiguous growable array whose
// storage is obtained from an alloc.Allocator.
package vector

import (
	"context"
	"iter"

	"github.com/cockroachdb/containers/pkg/util/buildutil"
	"github.com/cockroachdb/containers/pkg/util/container/alloc"
	"github.com/cockroachdb/containers/pkg/util/log"
	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/redact"
)

// ErrIndexOutOfRange marks errors returned by the checked accessor Get.
var ErrIndexOutOfRange = errors.New("index out of range")

// Vector is a contiguous sequence of elements with a separate logical
// length and physical capacity. Elements live in slots [0, Len()) of a
// single block of Cap() slots; slots [Len(), Cap()) are allocated but not
// constructed.
//
// Positions are plain indexes; Begin() is 0 and End() is Len().
// Reallocation (growth past Cap(), ShrinkToFit, Close) invalidates every
// position and every pointer returned by At, Front or Back. Insertions and
// erasures invalidate the positions and pointers at or after the point of
// the mutation.
//
// Accessors that take a position do not check it. Out-of-range positions
// are undefined behavior and are only asserted when built with the
// invariants tag. Get is the checked alternative.
//
// The zero value is an empty vector using the default allocator. A Vector
// is not safe for concurrent use.
type Vector[T any] struct {
	alloc alloc.Allocator[T]
	data  alloc.Block[T]
	size  int
	name  redact.SafeString
}

// Option configures a Vector at construction.
type Option[T any] func(*Vector[T])

// WithAllocator makes the vector use a for all of its storage and element
// lifecycles.
func WithAllocator[T any](a alloc.Allocator[T]) Option[T] {
	return func(v *Vector[T]) {
		v.alloc = a
	}
}

// WithResource makes the vector use the standard allocator drawing on res.
func WithResource[T any](res alloc.Resource) Option[T] {
	return func(v *Vector[T]) {
		v.alloc = alloc.New[T](res)
	}
}

// WithName sets the name the vector logs under.
func WithName[T any](name redact.SafeString) Option[T] {
	return func(v *Vector[T]) {
		v.name = name
	}
}

// New returns an empty vector. No storage is allocated until the first
// element is added or capacity is reserved.
func New[T any](opts ...Option[T]) *Vector[T] {
	v := &Vector[T]{}
	for _, o := range opts {
		o(v)
	}
	return v
}

// MakeN returns a vector of n zero values with a capacity of exactly n.
func MakeN[T any](ctx context.Context, n int, opts ...Option[T]) (*Vector[T], error) {
	var zero T
	return MakeFilled(ctx, n, zero, opts...)
}

// MakeFilled returns a vector of n copies of val with a capacity of
// exactly n.
func MakeFilled[T any](ctx context.Context, n int, val T, opts ...Option[T]) (*Vector[T], error) {
	v := New(opts...)
	if err := v.initFrom(ctx, n, func(int) T { return alloc.Copy(val) }); err != nil {
		return nil, err
	}
	return v, nil
}

// FromSlice returns a vector holding copies of vals, in order, with a
// capacity of exactly len(vals).
func FromSlice[T any](ctx context.Context, vals []T, opts ...Option[T]) (*Vector[T], error) {
	v := New(opts...)
	if err := v.initFrom(ctx, len(vals), func(i int) T { return alloc.Copy(vals[i]) }); err != nil {
		return nil, err
	}
	return v, nil
}

func (v *Vector[T]) initFrom(ctx context.Context, n int, at func(int) T) error {
	a := v.allocator()
	b, err := a.Allocate(ctx, n)
	if err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		a.Construct(&b[i], at(i))
	}
	v.data, v.size = b, n
	return nil
}

func (v *Vector[T]) allocator() alloc.Allocator[T] {
	if v.alloc == nil {
		v.alloc = alloc.Default[T]()
	}
	return v.alloc
}

// Allocator returns the allocator the vector uses.
func (v *Vector[T]) Allocator() alloc.Allocator[T] {
	return v.allocator()
}

func (v *Vector[T]) logName() redact.SafeString {
	if v.name == "" {
		return "vector"
	}
	return v.name
}

// Len returns the number of elements.
func (v *Vector[T]) Len() int {
	return v.size
}

// Cap returns the number of slots backed by the current block.
func (v *Vector[T]) Cap() int {
	return len(v.data)
}

// Empty returns whether the vector holds no elements. A cleared vector is
// empty even though it keeps its block.
func (v *Vector[T]) Empty() bool {
	return v.size == 0
}

// Begin returns the position of the first element.
func (v *Vector[T]) Begin() int {
	return 0
}

// End returns the position one past the last element.
func (v *Vector[T]) End() int {
	return v.size
}

// At returns a pointer to the element at position i. The position is not
// checked.
func (v *Vector[T]) At(i int) *T {
	if buildutil.Invariants && (i < 0 || i >= v.size) {
		panic(errors.AssertionFailedf("position %d out of range [0,%d)", i, v.size))
	}
	return v.data[i].Ptr()
}

// Get returns a copy of the element at position i, or an error marked
// with ErrIndexOutOfRange.
func (v *Vector[T]) Get(i int) (T, error) {
	if i < 0 || i >= v.size {
		var zero T
		return zero, errors.Mark(
			errors.Newf("position %d out of range [0,%d)", i, v.size), ErrIndexOutOfRange)
	}
	return *v.data[i].Ptr(), nil
}

// Front returns a pointer to the first element. The vector must not be
// empty.
func (v *Vector[T]) Front() *T {
	return v.At(0)
}

// Back returns a pointer to the last element. The vector must not be
// empty.
func (v *Vector[T]) Back() *T {
	return v.At(v.size - 1)
}

// Reserve makes sure the vector can hold at least n elements without
// reallocating. When it has to grow, the new capacity is the larger of n
// and twice the current capacity. If the allocation fails the vector is
// left untouched.
func (v *Vector[T]) Reserve(ctx context.Context, n int) error {
	if n <= len(v.data) {
		return nil
	}
	return v.reallocate(ctx, max(n, 2*len(v.data)))
}

// reallocate relocates the elements into a fresh block of exactly n slots,
// n >= v.size. The old elements are only destroyed once every element
// has been constructed in the new block.
func (v *Vector[T]) reallocate(ctx context.Context, n int) error {
	a := v.allocator()
	nb, err := a.Allocate(ctx, n)
	if err != nil {
		return err
	}
	for i := 0; i < v.size; i++ {
		a.Construct(&nb[i], *v.data[i].Ptr())
	}
	for i := 0; i < v.size; i++ {
		a.Destroy(&v.data[i])
	}
	if v.data != nil {
		a.Deallocate(ctx, v.data, len(v.data))
	}
	log.VEventf(ctx, 2, "%s: reallocated %d elements from %d to %d slots",
		v.logName(), v.size, len(v.data), n)
	v.data = nb
	return nil
}

// ensureSpare grows the vector so that n more elements fit.
func (v *Vector[T]) ensureSpare(ctx context.Context, n int) error {
	if v.size+n > len(v.data) {
		return v.Reserve(ctx, v.size+n)
	}
	return nil
}

// constructBack constructs val into the first free slot. It never grows
// the vector: the caller must have made room.
func (v *Vector[T]) constructBack(val T) {
	if buildutil.Invariants && v.size >= len(v.data) {
		panic(errors.AssertionFailedf("no free slot: len %d, cap %d", v.size, len(v.data)))
	}
	v.allocator().Construct(&v.data[v.size], val)
	v.size++
}

// PushBack appends a copy of val made with alloc.Copy, growing the vector
// if it is full.
func (v *Vector[T]) PushBack(ctx context.Context, val T) error {
	if err := v.ensureSpare(ctx, 1); err != nil {
		return err
	}
	v.constructBack(alloc.Copy(val))
	return nil
}

// PopBack destroys the last element. The vector must not be empty.
func (v *Vector[T]) PopBack() {
	if buildutil.Invariants && v.size == 0 {
		panic(errors.AssertionFailedf("PopBack on empty vector"))
	}
	v.size--
	v.allocator().Destroy(&v.data[v.size])
}

// Insert inserts a copy of val made with alloc.Copy before position pos
// and returns the position of the inserted element.
func (v *Vector[T]) Insert(ctx context.Context, pos int, val T) (int, error) {
	if err := v.openGap(ctx, pos, 1); err != nil {
		return pos, err
	}
	v.allocator().Construct(&v.data[pos], alloc.Copy(val))
	return pos, nil
}

// InsertN inserts n copies of val before position pos and returns the
// position of the first inserted element. Inserting zero copies returns
// pos.
func (v *Vector[T]) InsertN(ctx context.Context, pos int, n int, val T) (int, error) {
	if n == 0 {
		return pos, nil
	}
	if err := v.openGap(ctx, pos, n); err != nil {
		return pos, err
	}
	a := v.allocator()
	for i := pos; i < pos+n; i++ {
		a.Construct(&v.data[i], alloc.Copy(val))
	}
	return pos, nil
}

// InsertSlice inserts copies of vals, in order, before position pos and
// returns the position of the first inserted element.
func (v *Vector[T]) InsertSlice(ctx context.Context, pos int, vals []T) (int, error) {
	if len(vals) == 0 {
		return pos, nil
	}
	if err := v.openGap(ctx, pos, len(vals)); err != nil {
		return pos, err
	}
	a := v.allocator()
	for i, val := range vals {
		a.Construct(&v.data[pos+i], alloc.Copy(val))
	}
	return pos, nil
}

// openGap makes room for n elements at pos: the elements at or after pos
// move n slots to the right, last one first, so that no element is
// overwritten before it has been moved. On return slots [pos, pos+n) are
// unconstructed and already counted in the length.
func (v *Vector[T]) openGap(ctx context.Context, pos int, n int) error {
	if buildutil.Invariants && (pos < 0 || pos > v.size) {
		panic(errors.AssertionFailedf("insert position %d out of range [0,%d]", pos, v.size))
	}
	if err := v.ensureSpare(ctx, n); err != nil {
		return err
	}
	a := v.allocator()
	for i := v.size - 1; i >= pos; i-- {
		a.Construct(&v.data[i+n], *v.data[i].Ptr())
		a.Destroy(&v.data[i])
	}
	v.size += n
	return nil
}

// Erase removes the element at pos and returns the position of the element
// that followed it, which is End() if it was the last one.
func (v *Vector[T]) Erase(pos int) int {
	return v.EraseRange(pos, pos+1)
}

// EraseRange removes the elements in [first, last) and returns first, the
// position now holding the element that followed the range.
func (v *Vector[T]) EraseRange(first, last int) int {
	if buildutil.Invariants && (first < 0 || first > last || last > v.size) {
		panic(errors.AssertionFailedf("erase range [%d,%d) out of range [0,%d]", first, last, v.size))
	}
	count := last - first
	if count == 0 {
		return first
	}
	for i := last; i < v.size; i++ {
		*v.data[i-count].Ptr() = *v.data[i].Ptr()
	}
	a := v.allocator()
	for i := v.size - count; i < v.size; i++ {
		a.Destroy(&v.data[i])
	}
	v.size -= count
	return first
}

// Resize changes the length to n. Extra elements are destroyed; missing
// ones are zero values.
func (v *Vector[T]) Resize(ctx context.Context, n int) error {
	var zero T
	return v.ResizeWith(ctx, n, zero)
}

// ResizeWith changes the length to n. Extra elements are destroyed;
// missing ones are copies of val.
func (v *Vector[T]) ResizeWith(ctx context.Context, n int, val T) error {
	if n < v.size {
		a := v.allocator()
		for i := n; i < v.size; i++ {
			a.Destroy(&v.data[i])
		}
		v.size = n
		return nil
	}
	if n > v.size {
		if err := v.Reserve(ctx, n); err != nil {
			return err
		}
		for v.size < n {
			v.constructBack(alloc.Copy(val))
		}
	}
	return nil
}

// Clear destroys every element, in index order. The capacity is kept.
func (v *Vector[T]) Clear() {
	if v.size == 0 {
		return
	}
	a := v.allocator()
	for i := 0; i < v.size; i++ {
		a.Destroy(&v.data[i])
	}
	v.size = 0
}

// ShrinkToFit reallocates the vector to a block of exactly Len() slots, or
// releases its block if it is empty.
func (v *Vector[T]) ShrinkToFit(ctx context.Context) error {
	if v.size == len(v.data) {
		return nil
	}
	return v.reallocate(ctx, v.size)
}

// Assign replaces the contents with n copies of val. If the allocation
// fails the vector is left untouched.
func (v *Vector[T]) Assign(ctx context.Context, n int, val T) error {
	return v.assign(ctx, n, func(int) T { return alloc.Copy(val) })
}

// AssignSlice replaces the contents with copies of vals. If the allocation
// fails the vector is left untouched.
func (v *Vector[T]) AssignSlice(ctx context.Context, vals []T) error {
	return v.assign(ctx, len(vals), func(i int) T { return alloc.Copy(vals[i]) })
}

func (v *Vector[T]) assign(ctx context.Context, n int, at func(int) T) error {
	a := v.allocator()
	if n <= len(v.data) {
		v.Clear()
		for i := 0; i < n; i++ {
			v.constructBack(at(i))
		}
		return nil
	}
	nb, err := a.Allocate(ctx, max(n, 2*len(v.data)))
	if err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		a.Construct(&nb[i], at(i))
	}
	v.Clear()
	if v.data != nil {
		a.Deallocate(ctx, v.data, len(v.data))
	}
	v.data, v.size = nb, n
	return nil
}

// Clone returns a copy of the vector with its own block of exactly Len()
// slots, using the same allocator. Elements are copied with alloc.Copy.
func (v *Vector[T]) Clone(ctx context.Context) (*Vector[T], error) {
	c := &Vector[T]{alloc: v.allocator(), name: v.name}
	if err := c.initFrom(ctx, v.size, func(i int) T { return alloc.Copy(*v.data[i].Ptr()) }); err != nil {
		return nil, err
	}
	return c, nil
}

// MoveFrom releases the vector's own elements and storage, then takes over
// those of src, leaving src empty with no block. No element is copied.
func (v *Vector[T]) MoveFrom(ctx context.Context, src *Vector[T]) {
	if v == src {
		return
	}
	v.Close(ctx)
	v.alloc, v.data, v.size = src.allocator(), src.data, src.size
	src.data, src.size = nil, 0
}

// Swap exchanges the contents, storage, allocators and names of the two
// vectors.
func (v *Vector[T]) Swap(other *Vector[T]) {
	v.alloc, other.alloc = other.alloc, v.alloc
	v.name, other.name = other.name, v.name
	v.data, other.data = other.data, v.data
	v.size, other.size = other.size, v.size
}

// Close destroys every element and releases the block. The vector can be
// reused afterwards.
func (v *Vector[T]) Close(ctx context.Context) {
	v.Clear()
	if v.data != nil {
		v.allocator().Deallocate(ctx, v.data, len(v.data))
		v.data = nil
	}
}

// EqualFunc reports whether both vectors have the same length and eq
// holds for every pair of elements at the same position.
func (v *Vector[T]) EqualFunc(other *Vector[T], eq func(a, b T) bool) bool {
	if v.size != other.size {
		return false
	}
	for i := 0; i < v.size; i++ {
		if !eq(*v.data[i].Ptr(), *other.data[i].Ptr()) {
			return false
		}
	}
	return true
}

// Equal reports whether a and b hold equal elements in the same order.
func Equal[T comparable](a, b *Vector[T]) bool {
	return a.EqualFunc(b, func(x, y T) bool { return x == y })
}

// All returns an iterator over the positions and elements, front to back.
func (v *Vector[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := 0; i < v.size; i++ {
			if !yield(i, *v.data[i].Ptr()) {
				return
			}
		}
	}
}

// Backward returns an iterator over the positions and elements, back to
// front.
func (v *Vector[T]) Backward() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := v.size - 1; i >= 0; i-- {
			if !yield(i, *v.data[i].Ptr()) {
				return
			}
		}
	}
}

// ToSlice returns the elements in a newly allocated slice.
func (v *Vector[T]) ToSlice() []T {
	s := make([]T, v.size)
	for i := range s {
		s[i] = *v.data[i].Ptr()
	}
	return s
}

// SafeFormat implements redact.SafeFormatter. Elements are printed as
// unsafe values.
func (v *Vector[T]) SafeFormat(w redact.SafePrinter, _ rune) {
	w.SafeRune('[')
	for i := 0; i < v.size; i++ {
		if i > 0 {
			w.SafeRune(' ')
		}
		w.Print(*v.data[i].Ptr())
	}
	w.SafeRune(']')
}

// String implements fmt.Stringer.
func (v *Vector[T]) String() string {
	return redact.StringWithoutMarkers(v)
}
