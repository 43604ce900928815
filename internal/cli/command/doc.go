// Package command provides CLI command definitions for redisgate-cli.
package command
