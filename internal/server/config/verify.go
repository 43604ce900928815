// Package config defines the server configuration structure.
package config

import (
	"errors"
	"net"
	"os"
	"strings"
)

// Verify validates the configuration.
func Verify(cfg *ServerConfig) error {
	if err := verifyServer(&cfg.Server); err != nil {
		return err
	}
	if err := verifyRedis(&cfg.Redis); err != nil {
		return err
	}
	return verifyRateLimit(&cfg.RateLimit)
}

func verifyServer(cfg *ServerSection) error {
	if cfg.Addr == "" {
		return errors.New("server.addr is required")
	}
	if _, _, err := net.SplitHostPort(cfg.Addr); err != nil {
		return errors.New("server.addr is not host:port: " + err.Error())
	}

	// TLS needs both halves of the pair.
	if (cfg.TLSCertFile == "") != (cfg.TLSKeyFile == "") {
		return errors.New("server.tls_cert_file and server.tls_key_file must be set together")
	}
	if cfg.TLSCertFile != "" {
		if _, err := os.Stat(cfg.TLSCertFile); err != nil {
			return errors.New("server.tls_cert_file: " + err.Error())
		}
		if _, err := os.Stat(cfg.TLSKeyFile); err != nil {
			return errors.New("server.tls_key_file: " + err.Error())
		}
	}
	return nil
}

func verifyRedis(cfg *RedisSection) error {
	if cfg.URL == "" {
		return errors.New("redis.url is required")
	}
	if !strings.HasPrefix(cfg.URL, "redis://") && !strings.HasPrefix(cfg.URL, "rediss://") {
		return errors.New("redis.url must use the redis:// or rediss:// scheme")
	}
	if cfg.MaxActive < 0 {
		return errors.New("redis.max_active must not be negative")
	}
	if cfg.MaxIdle < 0 {
		return errors.New("redis.max_idle must not be negative")
	}
	if cfg.MinIdle < 0 {
		return errors.New("redis.min_idle must not be negative")
	}
	if cfg.MaxIdle > 0 && cfg.MinIdle > cfg.MaxIdle {
		return errors.New("redis.min_idle must not exceed redis.max_idle")
	}
	return nil
}

func verifyRateLimit(cfg *RateLimitSection) error {
	if !cfg.Enabled {
		return nil
	}
	if cfg.RPS <= 0 {
		return errors.New("ratelimit.rps must be positive when enabled")
	}
	if cfg.Burst < 1 {
		return errors.New("ratelimit.burst must be at least 1 when enabled")
	}
	return nil
}
