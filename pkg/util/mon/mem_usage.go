// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package mon

import (
	"context"
	"math"
	"time"

	"github.com/cockroachdb/containers/pkg/util/buildutil"
	"github.com/cockroachdb/containers/pkg/util/humanizeutil"
	"github.com/cockroachdb/containers/pkg/util/log"
	"github.com/cockroachdb/containers/pkg/util/metric"
	"github.com/cockroachdb/containers/pkg/util/syncutil"
	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/redact"
)

// ErrBudgetExceeded marks errors returned when a reservation would push a
// monitor past its limit.
var ErrBudgetExceeded = errors.New("memory budget exceeded")

// IsMemoryBudgetExceededError returns whether err was caused by a refused
// reservation.
func IsMemoryBudgetExceededError(err error) bool {
	return errors.Is(err, ErrBudgetExceeded)
}

func newMemoryBudgetExceededError(
	name redact.SafeString, requestedBytes int64, reservedBytes int64, budgetBytes int64,
) error {
	err := errors.Newf(
		"%s: memory budget exceeded: %d bytes requested, %d currently allocated, %d bytes in budget",
		name, requestedBytes, reservedBytes, budgetBytes)
	err = errors.Mark(err, ErrBudgetExceeded)
	err = errors.WithDetailf(err, "budget %s, in use %s",
		humanizeutil.IBytes(budgetBytes), humanizeutil.IBytes(reservedBytes))
	return errors.WithHint(err, "Consider increasing the memory limit of the monitor.")
}

// Metrics holds the metrics a monitor reports to.
type Metrics struct {
	CurBytesCount *metric.Gauge
	MaxBytesCount *metric.Gauge
	RefusedCount  *metric.Counter
}

// MakeMetrics creates monitor metrics whose names start with prefix.
func MakeMetrics(prefix string) Metrics {
	return Metrics{
		CurBytesCount: metric.NewGauge(metric.Metadata{
			Name:        prefix + ".mem.cur",
			Help:        "Current bytes reserved from the monitor",
			Measurement: "Memory",
			Unit:        metric.Unit_BYTES,
		}),
		MaxBytesCount: metric.NewGauge(metric.Metadata{
			Name:        prefix + ".mem.max",
			Help:        "High-water mark of bytes reserved from the monitor",
			Measurement: "Memory",
			Unit:        metric.Unit_BYTES,
		}),
		RefusedCount: metric.NewCounter(metric.Metadata{
			Name:        prefix + ".mem.refused",
			Help:        "Number of reservations refused because of the memory limit",
			Measurement: "Reservations",
			Unit:        metric.Unit_COUNT,
		}),
	}
}

// Register adds the metrics to the registry.
func (m *Metrics) Register(r *metric.Registry) {
	r.AddMetric(m.CurBytesCount)
	r.AddMetric(m.MaxBytesCount)
	r.AddMetric(m.RefusedCount)
}

// MemoryMonitor defines an object that can track and limit memory usage by
// other objects using BoundAccounts.
type MemoryMonitor struct {
	name  redact.SafeString
	limit int64

	mu struct {
		syncutil.Mutex
		// curAllocated tracks the current amount of memory allocated by all
		// the accounts of this monitor.
		curAllocated int64
		// maxAllocated tracks the high water mark of allocations.
		maxAllocated int64
		stopped      bool
	}

	metrics *Metrics
	// refusedEvery limits how often refused reservations are logged.
	refusedEvery log.EveryN
}

// NewMonitor creates a monitor that refuses reservations past limit bytes.
// metrics may be nil.
func NewMonitor(name redact.SafeString, limit int64, metrics *Metrics) *MemoryMonitor {
	return &MemoryMonitor{
		name:         name,
		limit:        limit,
		metrics:      metrics,
		refusedEvery: log.Every(10 * time.Second),
	}
}

// NewUnlimitedMonitor creates a monitor that never refuses a reservation.
func NewUnlimitedMonitor(name redact.SafeString) *MemoryMonitor {
	return NewMonitor(name, math.MaxInt64, nil)
}

// Name returns the name of the monitor.
func (mm *MemoryMonitor) Name() redact.SafeString {
	return mm.name
}

// Limit returns the byte limit of the monitor.
func (mm *MemoryMonitor) Limit() int64 {
	return mm.limit
}

// AllocBytes returns the current number of allocated bytes in this monitor.
func (mm *MemoryMonitor) AllocBytes() int64 {
	mm.mu.Lock()
	defer mm.mu.Unlock()
	return mm.mu.curAllocated
}

// MaximumBytes returns the maximum number of bytes that were allocated by this
// monitor at one time since it was started.
func (mm *MemoryMonitor) MaximumBytes() int64 {
	mm.mu.Lock()
	defer mm.mu.Unlock()
	return mm.mu.maxAllocated
}

// SafeFormat implements redact.SafeFormatter.
func (mm *MemoryMonitor) SafeFormat(s redact.SafePrinter, _ rune) {
	s.Print(mm.name)
}

// String implements fmt.Stringer.
func (mm *MemoryMonitor) String() string {
	return redact.StringWithoutMarkers(mm)
}

// MakeBoundAccount creates a BoundAccount connected to the given monitor.
func (mm *MemoryMonitor) MakeBoundAccount() BoundAccount {
	return BoundAccount{mon: mm}
}

// Stop completes a monitoring region. Memory still reserved at this point
// indicates an account that was not closed.
func (mm *MemoryMonitor) Stop(ctx context.Context) {
	mm.mu.Lock()
	defer mm.mu.Unlock()
	if mm.mu.curAllocated != 0 {
		log.Errorf(ctx, "%s: unexpected %d leftover bytes", mm.name, mm.mu.curAllocated)
		if buildutil.Invariants {
			panic(errors.AssertionFailedf("%s: unexpected %d leftover bytes", mm.name, mm.mu.curAllocated))
		}
		mm.releaseBytesLocked(mm.mu.curAllocated)
	}
	mm.mu.stopped = true
	log.VEventf(ctx, 1, "%s: memory usage max %s", mm.name, humanizeutil.IBytes(mm.mu.maxAllocated))
}

// reserveBytes declares an allocation to this monitor. An error is returned
// if the allocation is denied.
func (mm *MemoryMonitor) reserveBytes(ctx context.Context, x int64) error {
	mm.mu.Lock()
	defer mm.mu.Unlock()
	if mm.mu.stopped {
		return errors.AssertionFailedf("%s: reservation on a stopped monitor", mm.name)
	}
	if mm.mu.curAllocated > mm.limit-x {
		if mm.metrics != nil {
			mm.metrics.RefusedCount.Inc(1)
		}
		if mm.refusedEvery.ShouldLog() {
			log.Warningf(ctx, "%s: refusing reservation of %s, %s in use out of %s",
				mm.name, humanizeutil.IBytes(x), humanizeutil.IBytes(mm.mu.curAllocated),
				humanizeutil.IBytes(mm.limit))
		}
		return newMemoryBudgetExceededError(mm.name, x, mm.mu.curAllocated, mm.limit)
	}
	mm.mu.curAllocated += x
	if mm.mu.maxAllocated < mm.mu.curAllocated {
		mm.mu.maxAllocated = mm.mu.curAllocated
	}
	if mm.metrics != nil {
		mm.metrics.CurBytesCount.Inc(x)
		mm.metrics.MaxBytesCount.Update(mm.mu.maxAllocated)
	}
	if log.V(2) {
		log.Infof(ctx, "%s: now at %d bytes (+%d)", mm.name, mm.mu.curAllocated, x)
	}
	return nil
}

// releaseBytes releases memory previously successfully registered via
// reserveBytes().
func (mm *MemoryMonitor) releaseBytes(ctx context.Context, sz int64) {
	mm.mu.Lock()
	defer mm.mu.Unlock()
	if mm.mu.curAllocated < sz {
		log.Errorf(ctx, "%s: no bytes to release, current %d, free %d", mm.name, mm.mu.curAllocated, sz)
		if buildutil.Invariants {
			panic(errors.AssertionFailedf("%s: releasing %d bytes, only %d reserved", mm.name, sz, mm.mu.curAllocated))
		}
		sz = mm.mu.curAllocated
	}
	mm.releaseBytesLocked(sz)
	if log.V(2) {
		log.Infof(ctx, "%s: now at %d bytes (-%d)", mm.name, mm.mu.curAllocated, sz)
	}
}

func (mm *MemoryMonitor) releaseBytesLocked(sz int64) {
	mm.mu.AssertHeld()
	mm.mu.curAllocated -= sz
	if mm.metrics != nil {
		mm.metrics.CurBytesCount.Dec(sz)
	}
}
