// Package main provides the entry point for redisgate-server.
//
// The server is the Redisgate gateway process that provides:
//
//   - REST API over the backing store's string, hash, set, admin and
//     script commands
//   - WebSocket endpoints for command streaming without per-request
//     connection setup
//   - Prometheus metrics and health reporting
//
// Usage:
//
//	redisgate-server [flags]
//	redisgate-server --config /path/to/config.yaml
//
// The server loads configuration, connects the backing-store pool, and
// serves until it receives SIGINT or SIGTERM.
package main
