// Package handler provides HTTP request handlers for Redisgate.
//
// This package implements the REST endpoints under /api/v1/redis:
//
//   - strings.go: string-family operations
//   - hashes.go: hash-family operations
//   - sets.go: set-family operations
//   - admin.go: server administration operations
//   - scripts.go: precanned Lua script operations
//   - health.go: liveness endpoint
//
// Every JSON response uses the {success, data, error} envelope defined
// in types.go. Key absence is reported as a successful response with a
// null payload, never as an HTTP error.
package handler
