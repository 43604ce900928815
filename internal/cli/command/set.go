// Package command provides CLI command definitions for redisgate-cli.
package command

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

// SetCommand returns the set command group.
func SetCommand() *cli.Command {
	return &cli.Command{
		Name:  "set",
		Usage: "Set key operations",
		Subcommands: []*cli.Command{
			{
				Name:      "add",
				Usage:     "Add members to a set",
				ArgsUsage: "KEY MEMBER [MEMBER...]",
				Action:    setAddAction,
			},
			{
				Name:      "rem",
				Usage:     "Remove members from a set",
				ArgsUsage: "KEY MEMBER [MEMBER...]",
				Action:    setRemAction,
			},
			{
				Name:      "members",
				Usage:     "List the members of a set",
				ArgsUsage: "KEY",
				Action:    setMembersAction,
			},
			{
				Name:      "card",
				Usage:     "Show the cardinality of a set",
				ArgsUsage: "KEY",
				Action:    setCardAction,
			},
			{
				Name:      "ismember",
				Usage:     "Check whether a value is a member of a set",
				ArgsUsage: "KEY MEMBER",
				Action:    setIsMemberAction,
			},
		},
	}
}

func setAddAction(c *cli.Context) error {
	if c.Args().Len() < 2 {
		return fmt.Errorf("key and at least one member required")
	}
	key := c.Args().First()
	members := c.Args().Slice()[1:]

	var result struct {
		Added int64 `json:"added"`
	}
	body := map[string]any{"members": members}
	if err := clientFor(c).Post(c.Context, keyPath("sets", key), body, &result); err != nil {
		return err
	}
	return printResult(c, result.Added)
}

func setRemAction(c *cli.Context) error {
	if c.Args().Len() < 2 {
		return fmt.Errorf("key and at least one member required")
	}
	key := c.Args().First()
	members := c.Args().Slice()[1:]

	var result struct {
		Removed int64 `json:"removed"`
	}
	body := map[string]any{"members": members}
	if err := clientFor(c).Post(c.Context, keyPath("sets", key, "remove"), body, &result); err != nil {
		return err
	}
	return printResult(c, result.Removed)
}

func setMembersAction(c *cli.Context) error {
	key := c.Args().First()
	if key == "" {
		return fmt.Errorf("key required")
	}

	var result struct {
		Members []string `json:"members"`
	}
	if err := clientFor(c).Get(c.Context, keyPath("sets", key), &result); err != nil {
		return err
	}
	if c.String("output") == "json" {
		return printResult(c, result.Members)
	}
	for _, m := range result.Members {
		fmt.Fprintln(c.App.Writer, m)
	}
	return nil
}

func setCardAction(c *cli.Context) error {
	key := c.Args().First()
	if key == "" {
		return fmt.Errorf("key required")
	}

	var result struct {
		Cardinality int64 `json:"cardinality"`
	}
	if err := clientFor(c).Get(c.Context, keyPath("sets", key, "cardinality"), &result); err != nil {
		return err
	}
	return printResult(c, result.Cardinality)
}

func setIsMemberAction(c *cli.Context) error {
	key, member := c.Args().Get(0), c.Args().Get(1)
	if key == "" || member == "" {
		return fmt.Errorf("key and member required")
	}

	var result struct {
		IsMember bool `json:"is_member"`
	}
	path := keyPath("sets", key, "exists", member)
	if err := clientFor(c).Get(c.Context, path, &result); err != nil {
		return err
	}
	return printResult(c, result.IsMember)
}
