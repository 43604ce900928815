// Package command provides CLI command definitions for redisgate-cli.
//
// It uses urfave/cli/v2 for command parsing. Every command talks to a
// running redisgate-server over its REST API.
package command

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/redisgate/redisgate/internal/cli/connection"
	"github.com/redisgate/redisgate/internal/infra/buildinfo"
)

const apiPrefix = "/api/v1/redis"

// App creates the CLI application.
func App() *cli.App {
	return &cli.App{
		Name:    "redisgate-cli",
		Usage:   "Redisgate command-line client",
		Version: buildinfo.Get().String(),
		Flags:   globalFlags(),
		Commands: []*cli.Command{
			StringCommand(),
			HashCommand(),
			SetCommand(),
			AdminCommand(),
		},
	}
}

// globalFlags returns the global CLI flags.
func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "server",
			Aliases: []string{"s"},
			Usage:   "Redisgate server address (e.g., localhost:8080)",
			EnvVars: []string{"REDISGATE_CLI_SERVER"},
			Value:   "localhost:8080",
		},
		&cli.DurationFlag{
			Name:    "timeout",
			Aliases: []string{"t"},
			Usage:   "Request timeout",
			Value:   30 * time.Second,
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output format: plain, json",
			Value:   "plain",
		},
	}
}

// clientFor builds the HTTP client from the global flags.
func clientFor(c *cli.Context) *connection.Client {
	return connection.NewClient(c.String("server"), c.Duration("timeout"))
}

// keyPath builds an API path with the key escaped as a path segment.
func keyPath(family, key string, rest ...string) string {
	p := apiPrefix + "/" + family + "/" + url.PathEscape(key)
	for _, r := range rest {
		p += "/" + r
	}
	return p
}

// printResult writes data in the selected output format.
func printResult(c *cli.Context, data any) error {
	if c.String("output") == "json" {
		raw, err := json.MarshalIndent(data, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(c.App.Writer, string(raw))
		return nil
	}
	fmt.Fprintln(c.App.Writer, data)
	return nil
}

// PrintError prints an error message to stderr.
func PrintError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
}
