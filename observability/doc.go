// Package observability exports viewdb metrics to Prometheus.
//
// Usage:
//
//	pc := observability.NewPrometheusCollector(prometheus.DefaultRegisterer)
//	s := viewdb.New(records, viewdb.WithMetricsCollector(pc))
//	http.Handle("/metrics", promhttp.Handler())
package observability
