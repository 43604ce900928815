// Package config defines the server configuration structure.
package config

import "github.com/redisgate/redisgate/internal/telemetry/logger"

// Sanitize returns a copy of the config with sensitive fields masked.
//
// This is used for logging configuration without exposing credentials
// embedded in the connection URL.
func Sanitize(cfg *ServerConfig) *ServerConfig {
	sanitized := *cfg
	sanitized.Redis.URL = logger.RedactURL(cfg.Redis.URL)
	return &sanitized
}
