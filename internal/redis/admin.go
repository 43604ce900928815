package redis

import (
	"context"
	"strings"
	"time"
)

// Admin wraps the server administration command set.
type Admin struct {
	pool *Pool
}

// NewAdmin creates the admin primitive over pool.
func NewAdmin(pool *Pool) *Admin {
	return &Admin{pool: pool}
}

// HealthStatus is a point-in-time snapshot of backing-store health.
type HealthStatus struct {
	Healthy   bool   `json:"healthy"`
	LatencyMS int64  `json:"latency_ms"`
	Version   string `json:"version,omitempty"`
	Error     string `json:"error,omitempty"`
}

// Ping checks that the backing store answers.
func (a *Admin) Ping(ctx context.Context) error {
	return a.pool.do(ctx, "admin.ping", func(conn *Conn) error {
		return conn.Ping(ctx).Err()
	})
}

// Info returns the raw INFO text.
func (a *Admin) Info(ctx context.Context) (info string, err error) {
	err = a.pool.do(ctx, "admin.info", func(conn *Conn) error {
		v, ierr := conn.Info(ctx).Result()
		info = v
		return ierr
	})
	return info, err
}

// InfoSection returns the raw INFO text for one section (e.g. "server",
// "memory", "stats").
func (a *Admin) InfoSection(ctx context.Context, section string) (info string, err error) {
	if section == "" {
		return a.Info(ctx)
	}
	err = a.pool.do(ctx, "admin.info", func(conn *Conn) error {
		v, ierr := conn.Info(ctx, section).Result()
		info = v
		return ierr
	})
	return info, err
}

// DBSize returns the number of keys in the selected database.
func (a *Admin) DBSize(ctx context.Context) (size int64, err error) {
	err = a.pool.do(ctx, "admin.dbsize", func(conn *Conn) error {
		v, derr := conn.DBSize(ctx).Result()
		size = v
		return derr
	})
	return size, err
}

// FlushDB removes every key from the selected database.
func (a *Admin) FlushDB(ctx context.Context) error {
	return a.pool.do(ctx, "admin.flushdb", func(conn *Conn) error {
		return conn.FlushDB(ctx).Err()
	})
}

// FlushAll removes every key from every database.
func (a *Admin) FlushAll(ctx context.Context) error {
	return a.pool.do(ctx, "admin.flushall", func(conn *Conn) error {
		return conn.FlushAll(ctx).Err()
	})
}

// ConfigGet returns the server configuration values matching parameter
// (glob patterns allowed).
func (a *Admin) ConfigGet(ctx context.Context, parameter string) (values map[string]string, err error) {
	if parameter == "" {
		return nil, argError("admin.config_get", "parameter must not be empty")
	}
	err = a.pool.do(ctx, "admin.config_get", func(conn *Conn) error {
		v, cerr := conn.ConfigGet(ctx, parameter).Result()
		values = v
		return cerr
	})
	return values, err
}

// ConfigSet sets one server configuration parameter.
func (a *Admin) ConfigSet(ctx context.Context, parameter, value string) error {
	if parameter == "" {
		return argError("admin.config_set", "parameter must not be empty")
	}
	return a.pool.do(ctx, "admin.config_set", func(conn *Conn) error {
		return conn.ConfigSet(ctx, parameter, value).Err()
	})
}

// Time returns the server clock.
func (a *Admin) Time(ctx context.Context) (t time.Time, err error) {
	err = a.pool.do(ctx, "admin.time", func(conn *Conn) error {
		v, terr := conn.Time(ctx).Result()
		t = v
		return terr
	})
	return t, err
}

// Health pings the backing store and, when reachable, samples the server
// version from INFO. A failed ping yields Healthy=false with the error
// text, not an error return; callers decide the transport representation.
func (a *Admin) Health(ctx context.Context) HealthStatus {
	start := time.Now()
	if err := a.Ping(ctx); err != nil {
		return HealthStatus{
			Healthy:   false,
			LatencyMS: time.Since(start).Milliseconds(),
			Error:     err.Error(),
		}
	}
	status := HealthStatus{
		Healthy:   true,
		LatencyMS: time.Since(start).Milliseconds(),
	}
	// Version is best effort; INFO may be disabled on managed providers.
	if info, err := a.InfoSection(ctx, "server"); err == nil {
		status.Version = parseInfoField(info, "redis_version")
	}
	return status
}

// parseInfoField extracts one "field:value" line from INFO output.
func parseInfoField(info, field string) string {
	for _, line := range strings.Split(info, "\n") {
		line = strings.TrimSpace(line)
		if v, ok := strings.CutPrefix(line, field+":"); ok {
			return v
		}
	}
	return ""
}
