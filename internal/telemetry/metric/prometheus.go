// Package metric provides Prometheus metrics for Redisgate.
//
// It exposes metrics in Prometheus format for monitoring
// request rates, latencies, pool behavior, and system health.
package metric

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds all application metrics.
type Registry struct {
	// Request metrics
	RequestsTotal   CounterVec
	RequestDuration HistogramVec

	// Backing-store metrics
	CommandsTotal CounterVec

	// Pool metrics
	PoolAcquires        Counter
	PoolAcquireFailures Counter
	PoolDiscards        Counter
	PoolInUse           Gauge

	// WebSocket metrics
	WSConnections Gauge
	WSMessages    CounterVec

	prom *prometheus.Registry
}

// Counter is a cumulative metric that only increases.
type Counter interface {
	Inc()
	Add(float64)
}

// CounterVec is a Counter with labels.
type CounterVec interface {
	WithLabelValues(lvs ...string) Counter
}

// Gauge is a metric that can go up and down.
type Gauge interface {
	Set(float64)
	Inc()
	Dec()
	Add(float64)
	Sub(float64)
}

// Histogram samples observations and counts them in buckets.
type Histogram interface {
	Observe(float64)
}

// HistogramVec is a Histogram with labels.
type HistogramVec interface {
	WithLabelValues(lvs ...string) Histogram
}

// counterVec adapts a prometheus CounterVec to the local interface.
type counterVec struct {
	vec *prometheus.CounterVec
}

func (c counterVec) WithLabelValues(lvs ...string) Counter {
	return c.vec.WithLabelValues(lvs...)
}

// histogramVec adapts a prometheus HistogramVec to the local interface.
type histogramVec struct {
	vec *prometheus.HistogramVec
}

func (h histogramVec) WithLabelValues(lvs ...string) Histogram {
	return h.vec.WithLabelValues(lvs...)
}

// NewRegistry creates a new metrics registry with all application
// metrics registered on a dedicated Prometheus registry.
func NewRegistry() *Registry {
	prom := prometheus.NewRegistry()
	prom.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	requestsTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "redisgate",
		Name:      "http_requests_total",
		Help:      "Total HTTP requests by method, route and status code.",
	}, []string{"method", "route", "status"})

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "redisgate",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by method and route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	commandsTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "redisgate",
		Name:      "commands_total",
		Help:      "Backing-store commands by operation and outcome.",
	}, []string{"op", "status"})

	poolAcquires := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "redisgate",
		Name:      "pool_acquires_total",
		Help:      "Successful connection acquisitions from the pool.",
	})

	poolAcquireFailures := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "redisgate",
		Name:      "pool_acquire_failures_total",
		Help:      "Failed connection acquisitions, including wait timeouts.",
	})

	poolDiscards := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "redisgate",
		Name:      "pool_discards_total",
		Help:      "Connections discarded after transport errors.",
	})

	poolInUse := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "redisgate",
		Name:      "pool_in_use",
		Help:      "Connections currently loaned out.",
	})

	wsConnections := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "redisgate",
		Name:      "ws_connections",
		Help:      "Open WebSocket connections.",
	})

	wsMessages := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "redisgate",
		Name:      "ws_messages_total",
		Help:      "WebSocket messages by endpoint and direction.",
	}, []string{"endpoint", "direction"})

	prom.MustRegister(
		requestsTotal, requestDuration, commandsTotal,
		poolAcquires, poolAcquireFailures, poolDiscards, poolInUse,
		wsConnections, wsMessages,
	)

	return &Registry{
		RequestsTotal:       counterVec{requestsTotal},
		RequestDuration:     histogramVec{requestDuration},
		CommandsTotal:       counterVec{commandsTotal},
		PoolAcquires:        poolAcquires,
		PoolAcquireFailures: poolAcquireFailures,
		PoolDiscards:        poolDiscards,
		PoolInUse:           poolInUse,
		WSConnections:       wsConnections,
		WSMessages:          counterVec{wsMessages},
		prom:                prom,
	}
}

// Register adds a custom collector to the underlying registry.
func (r *Registry) Register(c prometheus.Collector) error {
	return r.prom.Register(c)
}

// Handler returns an HTTP handler for the /metrics endpoint.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.prom, promhttp.HandlerOpts{})
}
