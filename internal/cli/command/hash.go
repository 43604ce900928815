// Package command provides CLI command definitions for redisgate-cli.
package command

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

// HashCommand returns the hash command group.
func HashCommand() *cli.Command {
	return &cli.Command{
		Name:  "hash",
		Usage: "Hash key operations",
		Subcommands: []*cli.Command{
			{
				Name:      "get",
				Usage:     "Get one field of a hash",
				ArgsUsage: "KEY FIELD",
				Action:    hashGetAction,
			},
			{
				Name:      "set",
				Usage:     "Set one field of a hash",
				ArgsUsage: "KEY FIELD VALUE",
				Action:    hashSetAction,
			},
			{
				Name:      "getall",
				Usage:     "Show every field of a hash",
				ArgsUsage: "KEY",
				Action:    hashGetAllAction,
			},
			{
				Name:      "del",
				Usage:     "Delete fields from a hash",
				ArgsUsage: "KEY FIELD [FIELD...]",
				Action:    hashDelAction,
			},
			{
				Name:      "len",
				Usage:     "Show the number of fields in a hash",
				ArgsUsage: "KEY",
				Action:    hashLenAction,
			},
		},
	}
}

func hashGetAction(c *cli.Context) error {
	key, field := c.Args().Get(0), c.Args().Get(1)
	if key == "" || field == "" {
		return fmt.Errorf("key and field required")
	}

	var value *string
	path := keyPath("hashes", key, "fields", field)
	if err := clientFor(c).Get(c.Context, path, &value); err != nil {
		return err
	}
	if value == nil {
		fmt.Fprintln(c.App.Writer, "(nil)")
		return nil
	}
	return printResult(c, *value)
}

func hashSetAction(c *cli.Context) error {
	key, field, value := c.Args().Get(0), c.Args().Get(1), c.Args().Get(2)
	if key == "" || field == "" || c.Args().Len() < 3 {
		return fmt.Errorf("key, field and value required")
	}

	path := keyPath("hashes", key, "fields", field)
	if err := clientFor(c).Post(c.Context, path, map[string]any{"value": value}, nil); err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, "OK")
	return nil
}

func hashGetAllAction(c *cli.Context) error {
	key := c.Args().First()
	if key == "" {
		return fmt.Errorf("key required")
	}

	var result struct {
		Fields map[string]string `json:"fields"`
	}
	if err := clientFor(c).Get(c.Context, keyPath("hashes", key), &result); err != nil {
		return err
	}
	if c.String("output") == "json" {
		return printResult(c, result.Fields)
	}
	for f, v := range result.Fields {
		fmt.Fprintf(c.App.Writer, "%s\t%s\n", f, v)
	}
	return nil
}

func hashDelAction(c *cli.Context) error {
	if c.Args().Len() < 2 {
		return fmt.Errorf("key and at least one field required")
	}
	key := c.Args().First()
	fields := c.Args().Slice()[1:]

	var result struct {
		Deleted int64 `json:"deleted"`
	}
	// Single-field deletes go through the field route; multi-field
	// through the batch route.
	if len(fields) == 1 {
		path := keyPath("hashes", key, "fields", fields[0])
		if err := clientFor(c).Delete(c.Context, path, &result); err != nil {
			return err
		}
		return printResult(c, result.Deleted)
	}

	var batch struct {
		Deleted []int64 `json:"deleted"`
	}
	body := map[string]any{
		"ops": []map[string]any{{"key": key, "fields": fields}},
	}
	if err := clientFor(c).Post(c.Context, apiPrefix+"/hashes/batch/delete", body, &batch); err != nil {
		return err
	}
	var total int64
	for _, n := range batch.Deleted {
		total += n
	}
	return printResult(c, total)
}

func hashLenAction(c *cli.Context) error {
	key := c.Args().First()
	if key == "" {
		return fmt.Errorf("key required")
	}

	var result struct {
		Length int64 `json:"length"`
	}
	if err := clientFor(c).Get(c.Context, keyPath("hashes", key, "length"), &result); err != nil {
		return err
	}
	return printResult(c, result.Length)
}
