// Package httpserver provides the HTTP/HTTPS server for Redisgate.
//
// This package implements the REST transport:
//
//   - server.go: net/http server lifecycle
//   - router.go: route table and middleware wiring
//   - middleware.go: request ID, recovery, logging, metrics, rate limiting
//
// Request handlers live in the handler subpackage; the WebSocket
// transport is mounted by the router but implemented in
// internal/server/wsserver.
package httpserver
