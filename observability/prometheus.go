package observability

import (
	"errors"
	"time"

	"github.com/hupe1980/viewdb"
	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusCollector implements viewdb.MetricsCollector.
type PrometheusCollector struct {
	opLatency  *prometheus.HistogramVec
	scanned    prometheus.Counter
	matched    prometheus.Counter
	released   prometheus.Counter
	violations *prometheus.CounterVec
}

var _ viewdb.MetricsCollector = (*PrometheusCollector)(nil)

// NewPrometheusCollector creates the collector and registers its metrics
// with reg. A nil reg leaves the metrics unregistered.
func NewPrometheusCollector(reg prometheus.Registerer) *PrometheusCollector {
	c := &PrometheusCollector{
		opLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "viewdb_operation_latency_seconds",
			Help:    "Latency of view operations",
			Buckets: prometheus.DefBuckets,
		}, []string{"op", "status"}),
		scanned: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "viewdb_select_scanned_total",
			Help: "Elements evaluated by select predicates",
		}),
		matched: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "viewdb_select_matched_total",
			Help: "Elements kept by select predicates",
		}),
		released: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "viewdb_narrow_released_total",
			Help: "Elements released by narrowing mutable views",
		}),
		violations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "viewdb_access_violations_total",
			Help: "Rejected accesses by kind",
		}, []string{"kind"}),
	}

	if reg != nil {
		reg.MustRegister(c.opLatency, c.scanned, c.matched, c.released, c.violations)
	}
	return c
}

// RecordSelect implements viewdb.MetricsCollector.
func (c *PrometheusCollector) RecordSelect(scanned, matched int, d time.Duration, err error) {
	c.opLatency.WithLabelValues("select", status(err)).Observe(d.Seconds())
	c.scanned.Add(float64(scanned))
	c.matched.Add(float64(matched))
}

// RecordNarrow implements viewdb.MetricsCollector.
func (c *PrometheusCollector) RecordNarrow(before, after int, d time.Duration, err error) {
	c.opLatency.WithLabelValues("narrow", status(err)).Observe(d.Seconds())
	if err == nil {
		c.released.Add(float64(before - after))
	}
}

// RecordViolation implements viewdb.MetricsCollector.
func (c *PrometheusCollector) RecordViolation(err error) {
	c.violations.WithLabelValues(kind(err)).Inc()
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

func kind(err error) string {
	switch {
	case errors.Is(err, viewdb.ErrStaleReference):
		return "stale"
	case errors.Is(err, viewdb.ErrExclusiveConflict):
		return "conflict"
	case errors.Is(err, viewdb.ErrConsumed):
		return "consumed"
	case errors.Is(err, viewdb.ErrClosed):
		return "closed"
	default:
		return "other"
	}
}
