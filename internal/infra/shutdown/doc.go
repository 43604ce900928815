// Package shutdown provides graceful shutdown for Redisgate.
//
// This package handles process termination signals:
//
//   - Signal handling (SIGINT, SIGTERM)
//   - Timeout-based forced shutdown
//   - Cleanup callback registration
//   - Shutdown coordination
//
// Hooks run in reverse order of registration so that dependents stop
// before their dependencies (HTTP server before the connection pool).
package shutdown
