// Package main provides the entry point for redisgate-cli.
//
// redisgate-cli is the command-line client for a running Redisgate
// gateway, covering string, hash, set and admin operations.
package main

import (
	"fmt"
	"os"

	"github.com/redisgate/redisgate/internal/cli/command"
)

func main() {
	app := command.App()

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
