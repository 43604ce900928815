package metric

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
)

func scrape(t *testing.T, r *Registry) string {
	t.Helper()
	srv := httptest.NewServer(r.Handler())
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL)
	if err != nil {
		t.Fatalf("scrape: %v", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return string(body)
}

func TestRegistryExposesMetrics(t *testing.T) {
	r := NewRegistry()

	r.RequestsTotal.WithLabelValues("GET", "/api/v1/redis/string/{key}", "200").Inc()
	r.RequestDuration.WithLabelValues("GET", "/api/v1/redis/string/{key}").Observe(0.01)
	r.CommandsTotal.WithLabelValues("strings.get", "ok").Inc()
	r.PoolAcquires.Inc()
	r.PoolAcquireFailures.Inc()
	r.PoolDiscards.Inc()
	r.PoolInUse.Set(3)
	r.WSConnections.Inc()
	r.WSMessages.WithLabelValues("string", "in").Add(2)

	body := scrape(t, r)
	for _, want := range []string{
		"redisgate_http_requests_total",
		"redisgate_http_request_duration_seconds",
		"redisgate_commands_total",
		"redisgate_pool_acquires_total 1",
		"redisgate_pool_acquire_failures_total 1",
		"redisgate_pool_discards_total 1",
		"redisgate_pool_in_use 3",
		"redisgate_ws_connections 1",
		"redisgate_ws_messages_total",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("scrape output missing %q", want)
		}
	}
}

func TestPoolCollector(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(NewPoolCollector(func() PoolStats {
		return PoolStats{Active: 2, Idle: 5}
	})); err != nil {
		t.Fatalf("Register: %v", err)
	}

	body := scrape(t, r)
	if !strings.Contains(body, "redisgate_pool_active 2") {
		t.Errorf("missing active gauge in %q", body)
	}
	if !strings.Contains(body, "redisgate_pool_idle 5") {
		t.Errorf("missing idle gauge in %q", body)
	}
}
