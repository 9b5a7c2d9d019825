// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package containertest

import (
	"context"

	"github.com/cockroachdb/containers/pkg/util/container/alloc"
	"github.com/cockroachdb/errors"
)

// ErrInjected marks the failures produced by a FailingResource.
var ErrInjected = errors.New("injected allocation failure")

// FailingResource is an alloc.Resource whose reservations start failing
// once an armed countdown runs out. It also tracks the bytes it has
// outstanding.
type FailingResource struct {
	used      int64
	armed     bool
	remaining int

	Grows    int
	Failures int
}

var _ alloc.Resource = (*FailingResource)(nil)

// FailAfter lets the next n reservations succeed and fails every one after
// that until Disarm is called.
func (r *FailingResource) FailAfter(n int) {
	r.armed = true
	r.remaining = n
}

// Disarm stops injecting failures.
func (r *FailingResource) Disarm() {
	r.armed = false
}

// Used returns the number of bytes currently reserved.
func (r *FailingResource) Used() int64 {
	return r.used
}

// Grow implements alloc.Resource.
func (r *FailingResource) Grow(_ context.Context, bytes int64) error {
	if r.armed {
		if r.remaining == 0 {
			r.Failures++
			return errors.Mark(errors.Newf("refusing %d bytes", bytes), ErrInjected)
		}
		r.remaining--
	}
	r.Grows++
	r.used += bytes
	return nil
}

// Shrink implements alloc.Resource.
func (r *FailingResource) Shrink(_ context.Context, bytes int64) {
	if bytes > r.used {
		panic(errors.AssertionFailedf("releasing %d bytes, only %d reserved", bytes, r.used))
	}
	r.used -= bytes
}
