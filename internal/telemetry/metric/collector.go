// Package metric provides Prometheus metrics for Redisgate.
package metric

import "github.com/prometheus/client_golang/prometheus"

// PoolStats is a point-in-time snapshot of connection pool occupancy.
type PoolStats struct {
	Active int
	Idle   int
}

// PoolCollector exposes pool occupancy as gauges, sampled at scrape time
// rather than updated on every borrow.
type PoolCollector struct {
	stats func() PoolStats

	activeDesc *prometheus.Desc
	idleDesc   *prometheus.Desc
}

// NewPoolCollector creates a collector that samples stats on each scrape.
func NewPoolCollector(stats func() PoolStats) *PoolCollector {
	return &PoolCollector{
		stats: stats,
		activeDesc: prometheus.NewDesc(
			"redisgate_pool_active",
			"Connections currently borrowed from the pool.",
			nil, nil,
		),
		idleDesc: prometheus.NewDesc(
			"redisgate_pool_idle",
			"Idle connections held by the pool.",
			nil, nil,
		),
	}
}

// Describe implements prometheus.Collector.
func (c *PoolCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.activeDesc
	ch <- c.idleDesc
}

// Collect implements prometheus.Collector.
func (c *PoolCollector) Collect(ch chan<- prometheus.Metric) {
	s := c.stats()
	ch <- prometheus.MustNewConstMetric(c.activeDesc, prometheus.GaugeValue, float64(s.Active))
	ch <- prometheus.MustNewConstMetric(c.idleDesc, prometheus.GaugeValue, float64(s.Idle))
}
