// Package main provides the entry point for redisgate-cli.
//
// The CLI talks to a Redisgate gateway over its REST API. Commands are
// grouped by key type:
//
//	redisgate-cli string get KEY
//	redisgate-cli hash getall KEY
//	redisgate-cli set members KEY
//	redisgate-cli admin health
//
// The gateway address comes from --server or REDISGATE_CLI_SERVER.
package main
