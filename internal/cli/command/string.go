// Package command provides CLI command definitions for redisgate-cli.
package command

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

// StringCommand returns the string command group.
func StringCommand() *cli.Command {
	return &cli.Command{
		Name:  "string",
		Usage: "String key operations",
		Subcommands: []*cli.Command{
			{
				Name:      "get",
				Usage:     "Get the value of a key",
				ArgsUsage: "KEY",
				Action:    stringGetAction,
			},
			{
				Name:      "set",
				Usage:     "Set the value of a key",
				ArgsUsage: "KEY VALUE",
				Flags: []cli.Flag{
					&cli.Int64Flag{
						Name:  "ttl",
						Usage: "Expiry in seconds (0 = no expiry)",
					},
				},
				Action: stringSetAction,
			},
			{
				Name:      "del",
				Usage:     "Delete a key",
				ArgsUsage: "KEY",
				Action:    stringDelAction,
			},
			{
				Name:      "incr",
				Usage:     "Increment the counter at a key",
				ArgsUsage: "KEY",
				Flags: []cli.Flag{
					&cli.Int64Flag{
						Name:  "by",
						Usage: "Increment amount",
						Value: 1,
					},
				},
				Action: stringIncrAction,
			},
			{
				Name:      "ttl",
				Usage:     "Show the remaining TTL of a key in seconds",
				ArgsUsage: "KEY",
				Action:    stringTTLAction,
			},
			{
				Name:      "keys",
				Usage:     "List keys matching a glob pattern",
				ArgsUsage: "[PATTERN]",
				Action:    stringKeysAction,
			},
		},
	}
}

func stringGetAction(c *cli.Context) error {
	key := c.Args().First()
	if key == "" {
		return fmt.Errorf("key required")
	}

	var value *string
	if err := clientFor(c).Get(c.Context, keyPath("strings", key), &value); err != nil {
		return err
	}
	if value == nil {
		fmt.Fprintln(c.App.Writer, "(nil)")
		return nil
	}
	return printResult(c, *value)
}

func stringSetAction(c *cli.Context) error {
	key, value := c.Args().Get(0), c.Args().Get(1)
	if key == "" || c.Args().Len() < 2 {
		return fmt.Errorf("key and value required")
	}

	body := map[string]any{"value": value}
	if ttl := c.Int64("ttl"); ttl > 0 {
		body["ttl"] = ttl
	}
	if err := clientFor(c).Post(c.Context, keyPath("strings", key), body, nil); err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, "OK")
	return nil
}

func stringDelAction(c *cli.Context) error {
	key := c.Args().First()
	if key == "" {
		return fmt.Errorf("key required")
	}

	var result struct {
		Deleted bool `json:"deleted"`
	}
	if err := clientFor(c).Delete(c.Context, keyPath("strings", key), &result); err != nil {
		return err
	}
	if result.Deleted {
		fmt.Fprintln(c.App.Writer, "deleted")
	} else {
		fmt.Fprintln(c.App.Writer, "no such key")
	}
	return nil
}

func stringIncrAction(c *cli.Context) error {
	key := c.Args().First()
	if key == "" {
		return fmt.Errorf("key required")
	}

	var result struct {
		Value int64 `json:"value"`
	}
	by := c.Int64("by")
	var err error
	if by == 1 {
		err = clientFor(c).Post(c.Context, keyPath("strings", key, "incr"), nil, &result)
	} else {
		err = clientFor(c).Post(c.Context, keyPath("strings", key, "incrby"),
			map[string]any{"delta": by}, &result)
	}
	if err != nil {
		return err
	}
	return printResult(c, result.Value)
}

func stringTTLAction(c *cli.Context) error {
	key := c.Args().First()
	if key == "" {
		return fmt.Errorf("key required")
	}

	var result struct {
		TTL int64 `json:"ttl"`
	}
	if err := clientFor(c).Get(c.Context, keyPath("strings", key, "ttl"), &result); err != nil {
		return err
	}
	return printResult(c, result.TTL)
}

func stringKeysAction(c *cli.Context) error {
	pattern := c.Args().First()
	path := apiPrefix + "/strings"
	if pattern != "" {
		path += "?pattern=" + pattern
	}

	var result struct {
		Keys []string `json:"keys"`
	}
	if err := clientFor(c).Get(c.Context, path, &result); err != nil {
		return err
	}
	for _, k := range result.Keys {
		fmt.Fprintln(c.App.Writer, k)
	}
	return nil
}
