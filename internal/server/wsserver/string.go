// Package wsserver provides the WebSocket transport for Redisgate.
package wsserver

import (
	"context"
	"encoding/json"

	"github.com/redisgate/redisgate/internal/redis"
)

// stringCommand is the decoded inbound frame for the string family.
// Every accepted type reads from this one superset; the Type switch in
// dispatchString is the closed command set.
type stringCommand struct {
	ID     string            `json:"id,omitempty"`
	Type   string            `json:"type"`
	Key    string            `json:"key,omitempty"`
	Value  string            `json:"value,omitempty"`
	TTL    int64             `json:"ttl,omitempty"`
	Delta  int64             `json:"delta,omitempty"`
	Keys   []string          `json:"keys,omitempty"`
	Pairs  map[string]string `json:"pairs,omitempty"`
	Deltas []redis.KeyDelta  `json:"deltas,omitempty"`
}

// dispatchString resolves one string-family frame.
func (s *Server) dispatchString(ctx context.Context, raw []byte) response {
	var cmd stringCommand
	if err := json.Unmarshal(raw, &cmd); err != nil {
		return fail("", "error", "malformed frame: "+err.Error())
	}

	switch cmd.Type {
	case "ping":
		return ok(cmd.ID, cmd.Type, "pong")

	case "get":
		value, found, err := s.client.Strings.Get(ctx, cmd.Key)
		if err != nil {
			return fail(cmd.ID, cmd.Type, err.Error())
		}
		if !found {
			return ok(cmd.ID, cmd.Type, nil)
		}
		return ok(cmd.ID, cmd.Type, value)

	case "set":
		var err error
		if cmd.TTL > 0 {
			err = s.client.Strings.SetWithTTL(ctx, cmd.Key, cmd.Value, cmd.TTL)
		} else {
			err = s.client.Strings.Set(ctx, cmd.Key, cmd.Value)
		}
		if err != nil {
			return fail(cmd.ID, cmd.Type, err.Error())
		}
		return ok(cmd.ID, cmd.Type, map[string]any{"key": cmd.Key})

	case "del":
		deleted, err := s.client.Strings.Delete(ctx, cmd.Key)
		if err != nil {
			return fail(cmd.ID, cmd.Type, err.Error())
		}
		return ok(cmd.ID, cmd.Type, map[string]any{"deleted": deleted})

	case "exists":
		exists, err := s.client.Strings.Exists(ctx, cmd.Key)
		if err != nil {
			return fail(cmd.ID, cmd.Type, err.Error())
		}
		return ok(cmd.ID, cmd.Type, map[string]any{"exists": exists})

	case "ttl":
		ttl, err := s.client.Strings.TTL(ctx, cmd.Key)
		if err != nil {
			return fail(cmd.ID, cmd.Type, err.Error())
		}
		return ok(cmd.ID, cmd.Type, map[string]any{"ttl": ttl})

	case "expire":
		set, err := s.client.Strings.Expire(ctx, cmd.Key, cmd.TTL)
		if err != nil {
			return fail(cmd.ID, cmd.Type, err.Error())
		}
		return ok(cmd.ID, cmd.Type, map[string]any{"set": set})

	case "incr":
		value, err := s.client.Strings.Incr(ctx, cmd.Key)
		if err != nil {
			return fail(cmd.ID, cmd.Type, err.Error())
		}
		return ok(cmd.ID, cmd.Type, map[string]any{"value": value})

	case "incrby":
		value, err := s.client.Strings.IncrBy(ctx, cmd.Key, cmd.Delta)
		if err != nil {
			return fail(cmd.ID, cmd.Type, err.Error())
		}
		return ok(cmd.ID, cmd.Type, map[string]any{"value": value})

	case "batch_get":
		values, err := s.client.Strings.BatchGet(ctx, cmd.Keys)
		if err != nil {
			return fail(cmd.ID, cmd.Type, err.Error())
		}
		return ok(cmd.ID, cmd.Type, map[string]any{"values": values})

	case "batch_set":
		if err := s.client.Strings.BatchSet(ctx, cmd.Pairs, cmd.TTL); err != nil {
			return fail(cmd.ID, cmd.Type, err.Error())
		}
		return ok(cmd.ID, cmd.Type, map[string]any{"count": len(cmd.Pairs)})

	case "batch_incrby":
		values, err := s.client.Strings.BatchIncrBy(ctx, cmd.Deltas)
		if err != nil {
			return fail(cmd.ID, cmd.Type, err.Error())
		}
		return ok(cmd.ID, cmd.Type, map[string]any{"values": values})

	case "batch_delete":
		deleted, err := s.client.Strings.BatchDelete(ctx, cmd.Keys)
		if err != nil {
			return fail(cmd.ID, cmd.Type, err.Error())
		}
		return ok(cmd.ID, cmd.Type, map[string]any{"deleted": deleted})

	default:
		return fail(cmd.ID, cmd.Type, "unknown command type: "+cmd.Type)
	}
}
