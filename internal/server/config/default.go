// Package config defines the server configuration structure.
package config

import "time"

// Default configuration values.
const (
	DefaultAddr            = "127.0.0.1:8080"
	DefaultShutdownTimeout = 10 * time.Second

	DefaultRedisURL    = "redis://127.0.0.1:6379/0"
	DefaultMaxActive   = 16
	DefaultWaitTimeout = 5 * time.Second

	DefaultRateLimitRPS   = 100.0
	DefaultRateLimitBurst = 200

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
)

// Default returns the default server configuration.
func Default() *ServerConfig {
	return &ServerConfig{
		Server: ServerSection{
			Addr:            DefaultAddr,
			ShutdownTimeout: DefaultShutdownTimeout,
		},
		Redis: RedisSection{
			URL:         DefaultRedisURL,
			MaxActive:   DefaultMaxActive,
			WaitTimeout: DefaultWaitTimeout,
		},
		RateLimit: RateLimitSection{
			Enabled: false,
			RPS:     DefaultRateLimitRPS,
			Burst:   DefaultRateLimitBurst,
		},
		Metrics: MetricsSection{
			Enabled: true,
		},
		Log: LogSection{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}
