// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package containertest

import (
	"fmt"
	"math/rand"
	"slices"
)

// OpKind enumerates the mutations the randomized tests perform.
type OpKind int

const (
	PushBack OpKind = iota
	PushFront
	PopBack
	PopFront
	Insert
	InsertN
	Erase
	EraseRange
	Clear
	Resize
)

var opNames = [...]string{
	PushBack:   "push-back",
	PushFront:  "push-front",
	PopBack:    "pop-back",
	PopFront:   "pop-front",
	Insert:     "insert",
	InsertN:    "insert-n",
	Erase:      "erase",
	EraseRange: "erase-range",
	Clear:      "clear",
	Resize:     "resize",
}

func (k OpKind) String() string {
	return opNames[k]
}

// Op is one mutation. Pos and End are positions counted from the front,
// N is a count and Val the value written by pushes, inserts and resizes.
type Op struct {
	Kind OpKind
	Pos  int
	End  int
	N    int
	Val  int
}

func (o Op) String() string {
	switch o.Kind {
	case PushBack, PushFront:
		return fmt.Sprintf("%s(%d)", o.Kind, o.Val)
	case Insert:
		return fmt.Sprintf("%s(pos=%d, %d)", o.Kind, o.Pos, o.Val)
	case InsertN:
		return fmt.Sprintf("%s(pos=%d, n=%d, %d)", o.Kind, o.Pos, o.N, o.Val)
	case Erase:
		return fmt.Sprintf("%s(pos=%d)", o.Kind, o.Pos)
	case EraseRange:
		return fmt.Sprintf("%s(%d, %d)", o.Kind, o.Pos, o.End)
	case Resize:
		return fmt.Sprintf("%s(n=%d, %d)", o.Kind, o.N, o.Val)
	default:
		return o.Kind.String()
	}
}

// Model is the reference sequence the containers are checked against.
type Model []int

// Apply performs o on a copy of m and returns it.
func (m Model) Apply(o Op) Model {
	m = slices.Clone(m)
	switch o.Kind {
	case PushBack:
		return append(m, o.Val)
	case PushFront:
		return slices.Insert(m, 0, o.Val)
	case PopBack:
		return m[:len(m)-1]
	case PopFront:
		return m[1:]
	case Insert:
		return slices.Insert(m, o.Pos, o.Val)
	case InsertN:
		return slices.Insert(m, o.Pos, slices.Repeat([]int{o.Val}, o.N)...)
	case Erase:
		return slices.Delete(m, o.Pos, o.Pos+1)
	case EraseRange:
		return slices.Delete(m, o.Pos, o.End)
	case Clear:
		return m[:0]
	case Resize:
		if o.N <= len(m) {
			return m[:o.N]
		}
		return append(m, slices.Repeat([]int{o.Val}, o.N-len(m))...)
	default:
		panic(fmt.Sprintf("unknown op %d", o.Kind))
	}
}

// RandomOps returns n operations drawn from kinds that are valid for a
// sequence that starts out with start elements. Pops and erases are never
// generated against an empty sequence; a push-back is generated instead.
// Values are distinct and increasing.
func RandomOps(rng *rand.Rand, n int, start int, kinds ...OpKind) []Op {
	ops := make([]Op, 0, n)
	length := start
	val := 1000
	for len(ops) < n {
		o := Op{Kind: kinds[rng.Intn(len(kinds))]}
		if length == 0 {
			switch o.Kind {
			case PopBack, PopFront, Erase:
				o.Kind = PushBack
			}
		}
		switch o.Kind {
		case PushBack, PushFront:
			val++
			o.Val = val
			length++
		case PopBack, PopFront:
			length--
		case Insert:
			val++
			o.Pos, o.Val = rng.Intn(length+1), val
			length++
		case InsertN:
			val++
			o.Pos, o.N, o.Val = rng.Intn(length+1), rng.Intn(4), val
			length += o.N
		case Erase:
			o.Pos = rng.Intn(length)
			length--
		case EraseRange:
			o.Pos = rng.Intn(length + 1)
			o.End = o.Pos + rng.Intn(length-o.Pos+1)
			length -= o.End - o.Pos
		case Clear:
			length = 0
		case Resize:
			val++
			o.N, o.Val = rng.Intn(length+4), val
			length = o.N
		}
		ops = append(ops, o)
	}
	return ops
}
