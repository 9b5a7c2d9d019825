// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package mon

import (
	"context"

	"github.com/cockroachdb/containers/pkg/util/buildutil"
	"github.com/cockroachdb/containers/pkg/util/log"
	"github.com/cockroachdb/errors"
)

// BoundAccount tracks the cumulated allocations for one client of a
// monitor. It is not thread-safe: like the containers it serves, it is
// owned by a single goroutine.
//
// The zero value is an unbound account that accepts every reservation.
type BoundAccount struct {
	used int64
	mon  *MemoryMonitor
}

// Used returns the number of bytes currently allocated through this account.
func (b *BoundAccount) Used() int64 {
	return b.used
}

// Monitor returns the monitor the account draws on, or nil.
func (b *BoundAccount) Monitor() *MemoryMonitor {
	return b.mon
}

// Grow is an accessor for b.mon.reserveBytes. It returns an error marked
// with ErrBudgetExceeded if the monitor refuses the reservation, in which
// case the account is unchanged.
func (b *BoundAccount) Grow(ctx context.Context, x int64) error {
	if x < 0 {
		return errors.AssertionFailedf("negative growth %d", x)
	}
	if b.mon != nil {
		if err := b.mon.reserveBytes(ctx, x); err != nil {
			return err
		}
	}
	b.used += x
	return nil
}

// Shrink releases part of the cumulated allocations by the specified size.
func (b *BoundAccount) Shrink(ctx context.Context, delta int64) {
	if b.used < delta {
		log.Errorf(ctx, "no bytes in account to release, current %d, free %d", b.used, delta)
		if buildutil.Invariants {
			panic(errors.AssertionFailedf("shrinking account by %d bytes, only %d used", delta, b.used))
		}
		delta = b.used
	}
	b.used -= delta
	if b.mon != nil {
		b.mon.releaseBytes(ctx, delta)
	}
}

// Resize requests a size change for an object already registered in the
// account. On failure the account is unchanged.
func (b *BoundAccount) Resize(ctx context.Context, oldSz, newSz int64) error {
	delta := newSz - oldSz
	switch {
	case delta > 0:
		return b.Grow(ctx, delta)
	case delta < 0:
		b.Shrink(ctx, -delta)
	}
	return nil
}

// Clear releases all the cumulated allocations of an account at once and
// primes it for reuse.
func (b *BoundAccount) Clear(ctx context.Context) {
	if b.used != 0 {
		b.Shrink(ctx, b.used)
	}
}

// Close releases all the cumulated allocations of an account at once.
func (b *BoundAccount) Close(ctx context.Context) {
	b.Clear(ctx)
}
