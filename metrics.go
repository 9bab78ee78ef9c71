package viewdb

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus
// (see the observability package for a ready-made adapter).
type MetricsCollector interface {
	// RecordSelect is called after each selection pass over a store or a
	// read view. scanned is the number of elements the predicate saw,
	// matched the number kept.
	RecordSelect(scanned, matched int, duration time.Duration, err error)

	// RecordNarrow is called after each narrowing of a mutable view.
	RecordNarrow(before, after int, duration time.Duration, err error)

	// RecordViolation is called for every rejected access.
	RecordViolation(err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordSelect(int, int, time.Duration, error) {}
func (NoopMetricsCollector) RecordNarrow(int, int, time.Duration, error) {}
func (NoopMetricsCollector) RecordViolation(error)                       {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	SelectCount      atomic.Int64
	SelectErrors     atomic.Int64
	SelectScanned    atomic.Int64
	SelectMatched    atomic.Int64
	SelectTotalNanos atomic.Int64
	NarrowCount      atomic.Int64
	NarrowErrors     atomic.Int64
	NarrowReleased   atomic.Int64
	Violations       atomic.Int64
}

// RecordSelect implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSelect(scanned, matched int, duration time.Duration, err error) {
	b.SelectCount.Add(1)
	b.SelectScanned.Add(int64(scanned))
	b.SelectMatched.Add(int64(matched))
	b.SelectTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.SelectErrors.Add(1)
	}
}

// RecordNarrow implements MetricsCollector.
func (b *BasicMetricsCollector) RecordNarrow(before, after int, duration time.Duration, err error) {
	b.NarrowCount.Add(1)
	if err != nil {
		b.NarrowErrors.Add(1)
		return
	}
	b.NarrowReleased.Add(int64(before - after))
}

// RecordViolation implements MetricsCollector.
func (b *BasicMetricsCollector) RecordViolation(error) {
	b.Violations.Add(1)
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector.
type BasicMetricsStats struct {
	SelectCount    int64
	SelectErrors   int64
	SelectScanned  int64
	SelectMatched  int64
	SelectAvgNanos int64
	NarrowCount    int64
	NarrowErrors   int64
	NarrowReleased int64
	Violations     int64
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		SelectCount:    b.SelectCount.Load(),
		SelectErrors:   b.SelectErrors.Load(),
		SelectScanned:  b.SelectScanned.Load(),
		SelectMatched:  b.SelectMatched.Load(),
		SelectAvgNanos: b.getAvgSelectNanos(),
		NarrowCount:    b.NarrowCount.Load(),
		NarrowErrors:   b.NarrowErrors.Load(),
		NarrowReleased: b.NarrowReleased.Load(),
		Violations:     b.Violations.Load(),
	}
}

func (b *BasicMetricsCollector) getAvgSelectNanos() int64 {
	count := b.SelectCount.Load()
	if count == 0 {
		return 0
	}
	return b.SelectTotalNanos.Load() / count
}
