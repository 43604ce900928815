// Package config defines the server configuration structure.
package config

import "time"

// ServerConfig is the root configuration for redisgate-server.
type ServerConfig struct {
	Server    ServerSection    `koanf:"server"`
	Redis     RedisSection     `koanf:"redis"`
	RateLimit RateLimitSection `koanf:"ratelimit"`
	Metrics   MetricsSection   `koanf:"metrics"`
	Log       LogSection       `koanf:"log"`
}

// ServerSection configures the HTTP/WebSocket listener.
type ServerSection struct {
	// Addr is the listen address for the REST and WebSocket surface.
	Addr string `koanf:"addr"`

	// TLSCertFile and TLSKeyFile enable TLS when both are set.
	TLSCertFile string `koanf:"tls_cert_file"`
	TLSKeyFile  string `koanf:"tls_key_file"`

	// ReadTimeout and WriteTimeout bound request I/O.
	ReadTimeout  time.Duration `koanf:"read_timeout"`
	WriteTimeout time.Duration `koanf:"write_timeout"`

	// ShutdownTimeout bounds graceful drain on termination.
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`

	// CORSAllowedOrigins lists browser origins allowed to call the API.
	// Empty leaves CORS headers off entirely.
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins"`
}

// RedisSection configures the backing-store connection pool.
type RedisSection struct {
	// URL is the connection URL (redis:// or rediss://).
	URL string `koanf:"url"`

	// MaxActive bounds the number of live connections.
	MaxActive int `koanf:"max_active"`

	// MaxIdle bounds the idle connections kept for reuse.
	MaxIdle int `koanf:"max_idle"`

	// MinIdle is the number of idle connections kept warm.
	MinIdle int `koanf:"min_idle"`

	// WaitTimeout bounds how long a request waits for a free connection.
	WaitTimeout time.Duration `koanf:"wait_timeout"`

	// DialTimeout, ReadTimeout and WriteTimeout are driver timeouts.
	DialTimeout  time.Duration `koanf:"dial_timeout"`
	ReadTimeout  time.Duration `koanf:"read_timeout"`
	WriteTimeout time.Duration `koanf:"write_timeout"`
}

// RateLimitSection configures per-client request throttling.
type RateLimitSection struct {
	// Enabled turns the HTTP rate limiter on.
	Enabled bool `koanf:"enabled"`

	// RPS is the sustained requests-per-second budget per client.
	RPS float64 `koanf:"rps"`

	// Burst is the short-term burst allowance per client.
	Burst int `koanf:"burst"`
}

// MetricsSection configures Prometheus exposition.
type MetricsSection struct {
	// Enabled mounts the /metrics endpoint.
	Enabled bool `koanf:"enabled"`
}

// LogSection configures logging.
type LogSection struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}
