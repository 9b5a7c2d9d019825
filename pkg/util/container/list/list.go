// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

// Package list implements List, a doubly linked list whose nodes are
// obtained from an alloc.Allocator.
//
// The nodes form a ring closed by a sentinel node embedded in the List.
// The sentinel never holds an element: it is the End() position, its next
// node is the front and its previous node the back. Iterators are node
// handles and stay valid until the node they refer to is erased.
//
// Each element lives in a one-slot block obtained from the list's
// allocator, so the allocator sees every element allocation and can refuse
// it. The node holding the links is obtained from the same allocator
// rebound to the node type.
package list

import (
	"context"
	"iter"

	"github.com/cockroachdb/containers/pkg/util/buildutil"
	"github.com/cockroachdb/containers/pkg/util/container/alloc"
	"github.com/cockroachdb/containers/pkg/util/log"
	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/redact"
)

type node[T any] struct {
	next, prev *node[T]
	// elem is nil for the sentinel.
	elem alloc.Block[T]
}

// Iterator is a position in a List: either an element or End(). Two
// iterators are equal if they refer to the same node.
type Iterator[T any] struct {
	n *node[T]
}

// Next returns the following position. The successor of the last element
// is End(), and the successor of End() is the first element.
func (it Iterator[T]) Next() Iterator[T] {
	return Iterator[T]{n: it.n.next}
}

// Prev returns the preceding position.
func (it Iterator[T]) Prev() Iterator[T] {
	return Iterator[T]{n: it.n.prev}
}

// Value returns a pointer to the element at the position, which must not
// be End().
func (it Iterator[T]) Value() *T {
	if buildutil.Invariants && it.n.elem == nil {
		panic(errors.AssertionFailedf("dereferencing a position without an element"))
	}
	return it.n.elem[0].Ptr()
}

// List is a doubly linked list. Insertion and erasure anywhere are O(1)
// and never move other elements.
//
// The zero value is an empty list using the default allocator. A List must
// not be copied after first use. A List is not safe for concurrent use.
type List[T any] struct {
	root  node[T]
	size  int
	alloc alloc.Allocator[T]
	nodes alloc.Allocator[node[T]]
	name  redact.SafeString
}

// Option configures a List at construction.
type Option[T any] func(*List[T])

// WithAllocator makes the list allocate, construct, destroy and free its
// elements with a, and allocate its nodes from a's resource.
func WithAllocator[T any](a alloc.Allocator[T]) Option[T] {
	return func(l *List[T]) {
		l.alloc = a
	}
}

// WithResource makes the list use the standard allocator drawing on res.
func WithResource[T any](res alloc.Resource) Option[T] {
	return func(l *List[T]) {
		l.alloc = alloc.New[T](res)
	}
}

// WithName sets the name the list logs under.
func WithName[T any](name redact.SafeString) Option[T] {
	return func(l *List[T]) {
		l.name = name
	}
}

// New returns an empty list.
func New[T any](opts ...Option[T]) *List[T] {
	l := &List[T]{}
	for _, o := range opts {
		o(l)
	}
	l.lazyInit()
	return l
}

// MakeN returns a list of n zero values.
func MakeN[T any](ctx context.Context, n int, opts ...Option[T]) (*List[T], error) {
	var zero T
	return MakeFilled(ctx, n, zero, opts...)
}

// MakeFilled returns a list of n copies of val.
func MakeFilled[T any](ctx context.Context, n int, val T, opts ...Option[T]) (*List[T], error) {
	l := New(opts...)
	if _, err := l.insertFunc(ctx, l.End(), n, func(int) T { return alloc.Copy(val) }); err != nil {
		return nil, err
	}
	return l, nil
}

// FromSlice returns a list holding copies of vals, in order.
func FromSlice[T any](ctx context.Context, vals []T, opts ...Option[T]) (*List[T], error) {
	l := New(opts...)
	if _, err := l.insertFunc(ctx, l.End(), len(vals), func(i int) T { return alloc.Copy(vals[i]) }); err != nil {
		return nil, err
	}
	return l, nil
}

// lazyInit links the sentinel to itself and sets up the allocators of a
// zero List.
func (l *List[T]) lazyInit() {
	if l.root.next == nil {
		l.root.next = &l.root
		l.root.prev = &l.root
	}
	if l.alloc == nil {
		l.alloc = alloc.Default[T]()
	}
	if l.nodes == nil {
		l.nodes = alloc.Rebind[node[T]](l.alloc)
	}
}

// Allocator returns the allocator the list uses for its elements.
func (l *List[T]) Allocator() alloc.Allocator[T] {
	l.lazyInit()
	return l.alloc
}

func (l *List[T]) logName() redact.SafeString {
	if l.name == "" {
		return "list"
	}
	return l.name
}

// Len returns the number of elements.
func (l *List[T]) Len() int {
	return l.size
}

// Empty returns whether the list holds no elements, that is whether the
// sentinel is linked to itself.
func (l *List[T]) Empty() bool {
	l.lazyInit()
	return l.root.next == &l.root
}

// Begin returns the position of the first element, or End() if the list
// is empty.
func (l *List[T]) Begin() Iterator[T] {
	l.lazyInit()
	return Iterator[T]{n: l.root.next}
}

// End returns the position past the last element.
func (l *List[T]) End() Iterator[T] {
	l.lazyInit()
	return Iterator[T]{n: &l.root}
}

// Front returns a pointer to the first element. The list must not be
// empty.
func (l *List[T]) Front() *T {
	return l.Begin().Value()
}

// Back returns a pointer to the last element. The list must not be empty.
func (l *List[T]) Back() *T {
	return l.End().Prev().Value()
}

// insertBefore allocates an element slot and a node, links the node in
// front of at and constructs val in the slot. If either allocation fails
// the ring is untouched.
func (l *List[T]) insertBefore(ctx context.Context, at *node[T], val T) (*node[T], error) {
	l.lazyInit()
	eb, err := l.alloc.Allocate(ctx, 1)
	if err != nil {
		return nil, err
	}
	nb, err := l.nodes.Allocate(ctx, 1)
	if err != nil {
		l.alloc.Deallocate(ctx, eb, 1)
		return nil, err
	}
	l.nodes.Construct(&nb[0], node[T]{elem: eb})
	n := nb[0].Ptr()
	n.prev = at.prev
	n.next = at
	at.prev.next = n
	at.prev = n
	l.alloc.Construct(&eb[0], val)
	l.size++
	return n, nil
}

// remove unlinks n, destroys its element and frees it. It returns the
// node that followed n.
func (l *List[T]) remove(ctx context.Context, n *node[T]) *node[T] {
	next := n.next
	n.prev.next = next
	next.prev = n.prev
	l.free(ctx, n)
	l.size--
	return next
}

func (l *List[T]) free(ctx context.Context, n *node[T]) {
	l.alloc.Destroy(&n.elem[0])
	l.alloc.Deallocate(ctx, n.elem, 1)
	s := alloc.SlotOf(n)
	l.nodes.Destroy(s)
	l.nodes.Deallocate(ctx, alloc.BlockOf(s), 1)
}

// PushBack appends a copy of val made with alloc.Copy.
func (l *List[T]) PushBack(ctx context.Context, val T) error {
	l.lazyInit()
	_, err := l.insertBefore(ctx, &l.root, alloc.Copy(val))
	return err
}

// PushFront prepends a copy of val made with alloc.Copy.
func (l *List[T]) PushFront(ctx context.Context, val T) error {
	l.lazyInit()
	_, err := l.insertBefore(ctx, l.root.next, alloc.Copy(val))
	return err
}

// Insert inserts a copy of val before pos and returns its position. On
// failure pos is returned with the error.
func (l *List[T]) Insert(ctx context.Context, pos Iterator[T], val T) (Iterator[T], error) {
	n, err := l.insertBefore(ctx, pos.n, alloc.Copy(val))
	if err != nil {
		return pos, err
	}
	return Iterator[T]{n: n}, nil
}

// InsertN inserts n copies of val before pos and returns the position of
// the first one, or pos if n is zero. If an allocation fails, the copies
// inserted so far are erased again.
func (l *List[T]) InsertN(ctx context.Context, pos Iterator[T], n int, val T) (Iterator[T], error) {
	return l.insertFunc(ctx, pos, n, func(int) T { return alloc.Copy(val) })
}

// InsertSlice inserts copies of vals, in order, before pos and returns the
// position of the first one, or pos if vals is empty. If an allocation
// fails, the elements inserted so far are erased again.
func (l *List[T]) InsertSlice(ctx context.Context, pos Iterator[T], vals []T) (Iterator[T], error) {
	return l.insertFunc(ctx, pos, len(vals), func(i int) T { return alloc.Copy(vals[i]) })
}

func (l *List[T]) insertFunc(
	ctx context.Context, pos Iterator[T], n int, at func(int) T,
) (Iterator[T], error) {
	first := pos
	for i := 0; i < n; i++ {
		nn, err := l.insertBefore(ctx, pos.n, at(i))
		if err != nil {
			if i > 0 {
				log.VEventf(ctx, 2, "%s: rolling back %d of %d inserted elements", l.logName(), i, n)
				l.EraseRange(ctx, first, pos)
			}
			return pos, err
		}
		if i == 0 {
			first = Iterator[T]{n: nn}
		}
	}
	return first, nil
}

// Erase removes the element at pos, which must not be End(), and returns
// the position that followed it. Only iterators to the erased element are
// invalidated.
func (l *List[T]) Erase(ctx context.Context, pos Iterator[T]) Iterator[T] {
	if buildutil.Invariants && (pos.n == &l.root || pos.n.elem == nil) {
		panic(errors.AssertionFailedf("erasing a position without an element"))
	}
	return Iterator[T]{n: l.remove(ctx, pos.n)}
}

// EraseRange removes the elements in [first, last) and returns last.
func (l *List[T]) EraseRange(ctx context.Context, first, last Iterator[T]) Iterator[T] {
	for first != last {
		first = l.Erase(ctx, first)
	}
	return last
}

// PopFront removes the first element. The list must not be empty.
func (l *List[T]) PopFront(ctx context.Context) {
	l.Erase(ctx, l.Begin())
}

// PopBack removes the last element. The list must not be empty.
func (l *List[T]) PopBack(ctx context.Context) {
	l.Erase(ctx, l.End().Prev())
}

// Clear removes every element, front to back.
func (l *List[T]) Clear(ctx context.Context) {
	l.lazyInit()
	if buildutil.Invariants {
		if err := l.checkRing(); err != nil {
			panic(err)
		}
	}
	for n := l.root.next; n != &l.root; {
		next := n.next
		l.free(ctx, n)
		n = next
	}
	l.root.next = &l.root
	l.root.prev = &l.root
	l.size = 0
}

// Close releases every element. The list can be reused afterwards.
func (l *List[T]) Close(ctx context.Context) {
	l.Clear(ctx)
}

// Assign replaces the contents with n copies of val. If an allocation
// fails the list is left untouched.
func (l *List[T]) Assign(ctx context.Context, n int, val T) error {
	return l.assign(ctx, n, func(int) T { return alloc.Copy(val) })
}

// AssignSlice replaces the contents with copies of vals. If an allocation
// fails the list is left untouched.
func (l *List[T]) AssignSlice(ctx context.Context, vals []T) error {
	return l.assign(ctx, len(vals), func(i int) T { return alloc.Copy(vals[i]) })
}

func (l *List[T]) assign(ctx context.Context, n int, at func(int) T) error {
	l.lazyInit()
	tmp := &List[T]{alloc: l.alloc, nodes: l.nodes, name: l.name}
	tmp.lazyInit()
	if _, err := tmp.insertFunc(ctx, tmp.End(), n, at); err != nil {
		return err
	}
	l.MoveFrom(ctx, tmp)
	return nil
}

// Clone returns a copy of the list with its own nodes, using the same
// allocator. Elements are copied with alloc.Copy. If an allocation fails
// the partial copy is released.
func (l *List[T]) Clone(ctx context.Context) (*List[T], error) {
	l.lazyInit()
	c := &List[T]{alloc: l.alloc, nodes: l.nodes, name: l.name}
	c.lazyInit()
	for n := l.root.next; n != &l.root; n = n.next {
		if err := c.PushBack(ctx, *n.elem[0].Ptr()); err != nil {
			c.Clear(ctx)
			return nil, err
		}
	}
	return c, nil
}

// MoveFrom releases the list's own elements, then takes over the nodes and
// allocator of src, leaving src empty. No element is copied and iterators
// into src now refer to l, except src.End() which stays src's.
func (l *List[T]) MoveFrom(ctx context.Context, src *List[T]) {
	if l == src {
		return
	}
	l.Clear(ctx)
	src.lazyInit()
	l.alloc, l.nodes = src.alloc, src.nodes
	if src.root.next != &src.root {
		l.root.next, l.root.prev = src.root.next, src.root.prev
		l.root.next.prev = &l.root
		l.root.prev.next = &l.root
	}
	l.size = src.size
	src.root.next, src.root.prev = &src.root, &src.root
	src.size = 0
	log.VEventf(ctx, 2, "%s: took over %d elements", l.logName(), l.size)
}

// checkRing verifies that the nodes form a ring through the sentinel, with
// matching forward and backward links and Len() elements.
func (l *List[T]) checkRing() error {
	count := 0
	for n := &l.root; ; {
		if n.next == nil || n.next.prev != n {
			return errors.AssertionFailedf("%s: broken link after node %d", l.logName(), count)
		}
		n = n.next
		if n == &l.root {
			break
		}
		if len(n.elem) != 1 || !n.elem[0].Live() {
			return errors.AssertionFailedf("%s: node %d holds no element", l.logName(), count)
		}
		count++
		if count > l.size {
			return errors.AssertionFailedf("%s: ring longer than length %d", l.logName(), l.size)
		}
	}
	if count != l.size {
		return errors.AssertionFailedf("%s: ring has %d nodes, length is %d", l.logName(), count, l.size)
	}
	return nil
}

// EqualFunc reports whether both lists have the same length and eq holds
// for every pair of elements in iteration order.
func (l *List[T]) EqualFunc(other *List[T], eq func(a, b T) bool) bool {
	if l.size != other.size {
		return false
	}
	a, b := l.Begin(), other.Begin()
	for a != l.End() {
		if !eq(*a.Value(), *b.Value()) {
			return false
		}
		a, b = a.Next(), b.Next()
	}
	return true
}

// Equal reports whether a and b hold equal elements in the same order.
func Equal[T comparable](a, b *List[T]) bool {
	return a.EqualFunc(b, func(x, y T) bool { return x == y })
}

// All returns an iterator over the elements, front to back.
func (l *List[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for it := l.Begin(); it != l.End(); it = it.Next() {
			if !yield(*it.Value()) {
				return
			}
		}
	}
}

// Backward returns an iterator over the elements, back to front.
func (l *List[T]) Backward() iter.Seq[T] {
	return func(yield func(T) bool) {
		for it := l.End().Prev(); it != l.End(); it = it.Prev() {
			if !yield(*it.Value()) {
				return
			}
		}
	}
}

// ToSlice returns the elements in a newly allocated slice.
func (l *List[T]) ToSlice() []T {
	s := make([]T, 0, l.size)
	for v := range l.All() {
		s = append(s, v)
	}
	return s
}

// SafeFormat implements redact.SafeFormatter.
func (l *List[T]) SafeFormat(w redact.SafePrinter, _ rune) {
	w.SafeRune('[')
	for it := l.Begin(); it != l.End(); it = it.Next() {
		if it.n != l.root.next {
			w.SafeRune(' ')
		}
		w.Print(*it.Value())
	}
	w.SafeRune(']')
}

// String implements fmt.Stringer.
func (l *List[T]) String() string {
	return redact.StringWithoutMarkers(l)
}
