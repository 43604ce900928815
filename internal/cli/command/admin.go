// Package command provides CLI command definitions for redisgate-cli.
package command

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

// AdminCommand returns the admin command group.
func AdminCommand() *cli.Command {
	return &cli.Command{
		Name:  "admin",
		Usage: "Server administration",
		Subcommands: []*cli.Command{
			{
				Name:   "ping",
				Usage:  "Check that the gateway can reach its backing store",
				Action: adminPingAction,
			},
			{
				Name:  "info",
				Usage: "Show backing-store INFO output",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "section",
						Usage: "Restrict to one INFO section (e.g. server, memory)",
					},
				},
				Action: adminInfoAction,
			},
			{
				Name:   "dbsize",
				Usage:  "Show the number of keys in the database",
				Action: adminDBSizeAction,
			},
			{
				Name:   "health",
				Usage:  "Show the gateway health snapshot",
				Action: adminHealthAction,
			},
			{
				Name:   "flushdb",
				Usage:  "Remove every key from the selected database",
				Action: adminFlushDBAction,
			},
		},
	}
}

func adminPingAction(c *cli.Context) error {
	if err := clientFor(c).Get(c.Context, apiPrefix+"/admin/ping", nil); err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, "PONG")
	return nil
}

func adminInfoAction(c *cli.Context) error {
	path := apiPrefix + "/admin/info"
	if section := c.String("section"); section != "" {
		path += "?section=" + section
	}

	var result struct {
		Info string `json:"info"`
	}
	if err := clientFor(c).Get(c.Context, path, &result); err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, result.Info)
	return nil
}

func adminDBSizeAction(c *cli.Context) error {
	var result struct {
		Size int64 `json:"size"`
	}
	if err := clientFor(c).Get(c.Context, apiPrefix+"/admin/dbsize", &result); err != nil {
		return err
	}
	return printResult(c, result.Size)
}

func adminHealthAction(c *cli.Context) error {
	var result struct {
		Healthy   bool   `json:"healthy"`
		LatencyMS int64  `json:"latency_ms"`
		Version   string `json:"version,omitempty"`
		Error     string `json:"error,omitempty"`
	}
	if err := clientFor(c).Get(c.Context, apiPrefix+"/admin/health", &result); err != nil {
		return err
	}
	if c.String("output") == "json" {
		return printResult(c, result)
	}
	status := "healthy"
	if !result.Healthy {
		status = "unhealthy: " + result.Error
	}
	fmt.Fprintf(c.App.Writer, "%s (latency %dms", status, result.LatencyMS)
	if result.Version != "" {
		fmt.Fprintf(c.App.Writer, ", redis %s", result.Version)
	}
	fmt.Fprintln(c.App.Writer, ")")
	return nil
}

func adminFlushDBAction(c *cli.Context) error {
	if err := clientFor(c).Post(c.Context, apiPrefix+"/admin/flushdb", nil, nil); err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, "OK")
	return nil
}
