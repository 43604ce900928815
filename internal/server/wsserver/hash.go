// Package wsserver provides the WebSocket transport for Redisgate.
package wsserver

import (
	"context"
	"encoding/json"
)

// hashCommand is the decoded inbound frame for the hash family.
type hashCommand struct {
	ID     string            `json:"id,omitempty"`
	Type   string            `json:"type"`
	Key    string            `json:"key,omitempty"`
	Field  string            `json:"field,omitempty"`
	Value  string            `json:"value,omitempty"`
	Fields map[string]string `json:"fields,omitempty"`
	Names  []string          `json:"names,omitempty"`
	Delta  int64             `json:"delta,omitempty"`
}

// dispatchHash resolves one hash-family frame.
func (s *Server) dispatchHash(ctx context.Context, raw []byte) response {
	var cmd hashCommand
	if err := json.Unmarshal(raw, &cmd); err != nil {
		return fail("", "error", "malformed frame: "+err.Error())
	}

	switch cmd.Type {
	case "ping":
		return ok(cmd.ID, cmd.Type, "pong")

	case "hget":
		value, found, err := s.client.Hashes.GetField(ctx, cmd.Key, cmd.Field)
		if err != nil {
			return fail(cmd.ID, cmd.Type, err.Error())
		}
		if !found {
			return ok(cmd.ID, cmd.Type, nil)
		}
		return ok(cmd.ID, cmd.Type, value)

	case "hset":
		if len(cmd.Fields) > 0 {
			created, err := s.client.Hashes.SetFields(ctx, cmd.Key, cmd.Fields)
			if err != nil {
				return fail(cmd.ID, cmd.Type, err.Error())
			}
			return ok(cmd.ID, cmd.Type, map[string]any{"created": created})
		}
		created, err := s.client.Hashes.SetField(ctx, cmd.Key, cmd.Field, cmd.Value)
		if err != nil {
			return fail(cmd.ID, cmd.Type, err.Error())
		}
		return ok(cmd.ID, cmd.Type, map[string]any{"created": created})

	case "hdel":
		names := cmd.Names
		if len(names) == 0 && cmd.Field != "" {
			names = []string{cmd.Field}
		}
		deleted, err := s.client.Hashes.DeleteFields(ctx, cmd.Key, names...)
		if err != nil {
			return fail(cmd.ID, cmd.Type, err.Error())
		}
		return ok(cmd.ID, cmd.Type, map[string]any{"deleted": deleted})

	case "hgetall":
		fields, err := s.client.Hashes.GetAll(ctx, cmd.Key)
		if err != nil {
			return fail(cmd.ID, cmd.Type, err.Error())
		}
		return ok(cmd.ID, cmd.Type, fields)

	case "hmget":
		values, err := s.client.Hashes.GetFields(ctx, cmd.Key, cmd.Names)
		if err != nil {
			return fail(cmd.ID, cmd.Type, err.Error())
		}
		return ok(cmd.ID, cmd.Type, map[string]any{"values": values})

	case "hexists":
		exists, err := s.client.Hashes.FieldExists(ctx, cmd.Key, cmd.Field)
		if err != nil {
			return fail(cmd.ID, cmd.Type, err.Error())
		}
		return ok(cmd.ID, cmd.Type, map[string]any{"exists": exists})

	case "hlen":
		length, err := s.client.Hashes.Length(ctx, cmd.Key)
		if err != nil {
			return fail(cmd.ID, cmd.Type, err.Error())
		}
		return ok(cmd.ID, cmd.Type, map[string]any{"length": length})

	case "hkeys":
		names, err := s.client.Hashes.FieldNames(ctx, cmd.Key)
		if err != nil {
			return fail(cmd.ID, cmd.Type, err.Error())
		}
		return ok(cmd.ID, cmd.Type, map[string]any{"fields": names})

	case "hvals":
		values, err := s.client.Hashes.Values(ctx, cmd.Key)
		if err != nil {
			return fail(cmd.ID, cmd.Type, err.Error())
		}
		return ok(cmd.ID, cmd.Type, map[string]any{"values": values})

	case "hincrby":
		value, err := s.client.Hashes.IncrementField(ctx, cmd.Key, cmd.Field, cmd.Delta)
		if err != nil {
			return fail(cmd.ID, cmd.Type, err.Error())
		}
		return ok(cmd.ID, cmd.Type, map[string]any{"value": value})

	default:
		return fail(cmd.ID, cmd.Type, "unknown command type: "+cmd.Type)
	}
}
