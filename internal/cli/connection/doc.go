// Package connection provides the HTTP client for redisgate-cli.
package connection
