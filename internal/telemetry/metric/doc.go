// Package metric provides Prometheus metrics for Redisgate.
//
// This package implements metrics collection and exposition:
//
//   - prometheus.go: Prometheus registry and HTTP handler
//   - collector.go: Custom collector for pool statistics
//
// Metrics include:
//
//   - Request latency histograms per route
//   - Backing-store command counters per operation
//   - Pool acquire, discard and in-use counters
//   - WebSocket connection and message counters
//
// Metrics are exposed at /metrics in Prometheus format.
package metric
