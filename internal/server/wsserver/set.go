// Package wsserver provides the WebSocket transport for Redisgate.
package wsserver

import (
	"context"
	"encoding/json"
)

// setCommand is the decoded inbound frame for the set family.
type setCommand struct {
	ID      string   `json:"id,omitempty"`
	Type    string   `json:"type"`
	Key     string   `json:"key,omitempty"`
	Member  string   `json:"member,omitempty"`
	Members []string `json:"members,omitempty"`
	Keys    []string `json:"keys,omitempty"`
	Count   int64    `json:"count,omitempty"`
}

// dispatchSet resolves one set-family frame.
func (s *Server) dispatchSet(ctx context.Context, raw []byte) response {
	var cmd setCommand
	if err := json.Unmarshal(raw, &cmd); err != nil {
		return fail("", "error", "malformed frame: "+err.Error())
	}

	members := cmd.Members
	if len(members) == 0 && cmd.Member != "" {
		members = []string{cmd.Member}
	}

	switch cmd.Type {
	case "ping":
		return ok(cmd.ID, cmd.Type, "pong")

	case "sadd":
		added, err := s.client.Sets.Add(ctx, cmd.Key, members...)
		if err != nil {
			return fail(cmd.ID, cmd.Type, err.Error())
		}
		return ok(cmd.ID, cmd.Type, map[string]any{"added": added})

	case "srem":
		removed, err := s.client.Sets.Remove(ctx, cmd.Key, members...)
		if err != nil {
			return fail(cmd.ID, cmd.Type, err.Error())
		}
		return ok(cmd.ID, cmd.Type, map[string]any{"removed": removed})

	case "smembers":
		found, err := s.client.Sets.Members(ctx, cmd.Key)
		if err != nil {
			return fail(cmd.ID, cmd.Type, err.Error())
		}
		return ok(cmd.ID, cmd.Type, map[string]any{"members": found})

	case "scard":
		count, err := s.client.Sets.Cardinality(ctx, cmd.Key)
		if err != nil {
			return fail(cmd.ID, cmd.Type, err.Error())
		}
		return ok(cmd.ID, cmd.Type, map[string]any{"cardinality": count})

	case "sismember":
		isMember, err := s.client.Sets.IsMember(ctx, cmd.Key, cmd.Member)
		if err != nil {
			return fail(cmd.ID, cmd.Type, err.Error())
		}
		return ok(cmd.ID, cmd.Type, map[string]any{"is_member": isMember})

	case "spop":
		if cmd.Count > 0 {
			popped, err := s.client.Sets.PopCount(ctx, cmd.Key, cmd.Count)
			if err != nil {
				return fail(cmd.ID, cmd.Type, err.Error())
			}
			return ok(cmd.ID, cmd.Type, map[string]any{"members": popped})
		}
		member, found, err := s.client.Sets.Pop(ctx, cmd.Key)
		if err != nil {
			return fail(cmd.ID, cmd.Type, err.Error())
		}
		if !found {
			return ok(cmd.ID, cmd.Type, nil)
		}
		return ok(cmd.ID, cmd.Type, member)

	case "srandmember":
		if cmd.Count > 0 {
			picked, err := s.client.Sets.RandomCount(ctx, cmd.Key, cmd.Count)
			if err != nil {
				return fail(cmd.ID, cmd.Type, err.Error())
			}
			return ok(cmd.ID, cmd.Type, map[string]any{"members": picked})
		}
		member, found, err := s.client.Sets.Random(ctx, cmd.Key)
		if err != nil {
			return fail(cmd.ID, cmd.Type, err.Error())
		}
		if !found {
			return ok(cmd.ID, cmd.Type, nil)
		}
		return ok(cmd.ID, cmd.Type, member)

	case "sunion":
		result, err := s.client.Sets.Union(ctx, cmd.Keys)
		if err != nil {
			return fail(cmd.ID, cmd.Type, err.Error())
		}
		return ok(cmd.ID, cmd.Type, map[string]any{"members": result})

	case "sinter":
		result, err := s.client.Sets.Intersect(ctx, cmd.Keys)
		if err != nil {
			return fail(cmd.ID, cmd.Type, err.Error())
		}
		return ok(cmd.ID, cmd.Type, map[string]any{"members": result})

	case "sdiff":
		result, err := s.client.Sets.Difference(ctx, cmd.Keys)
		if err != nil {
			return fail(cmd.ID, cmd.Type, err.Error())
		}
		return ok(cmd.ID, cmd.Type, map[string]any{"members": result})

	default:
		return fail(cmd.ID, cmd.Type, "unknown command type: "+cmd.Type)
	}
}
