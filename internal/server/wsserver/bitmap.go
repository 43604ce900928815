// Package wsserver provides the WebSocket transport for Redisgate.
package wsserver

import (
	"context"
	"encoding/json"
)

// bitmapCommand is the decoded inbound frame for the bitmap family.
// Value doubles as the bit to write for setbit and the bit to search
// for with bitpos.
type bitmapCommand struct {
	ID          string   `json:"id,omitempty"`
	Type        string   `json:"type"`
	Key         string   `json:"key,omitempty"`
	Offset      int64    `json:"offset,omitempty"`
	Value       bool     `json:"value,omitempty"`
	Destination string   `json:"destination,omitempty"`
	Keys        []string `json:"keys,omitempty"`
	TTL         int64    `json:"ttl,omitempty"`
}

// dispatchBitmap resolves one bitmap-family frame.
func (s *Server) dispatchBitmap(ctx context.Context, raw []byte) response {
	var cmd bitmapCommand
	if err := json.Unmarshal(raw, &cmd); err != nil {
		return fail("", "error", "malformed frame: "+err.Error())
	}

	switch cmd.Type {
	case "ping":
		return ok(cmd.ID, cmd.Type, "pong")

	case "setbit":
		previous, err := s.client.Bitmaps.SetBit(ctx, cmd.Key, cmd.Offset, cmd.Value)
		if err != nil {
			return fail(cmd.ID, cmd.Type, err.Error())
		}
		return ok(cmd.ID, cmd.Type, map[string]any{"previous": previous})

	case "getbit":
		value, err := s.client.Bitmaps.GetBit(ctx, cmd.Key, cmd.Offset)
		if err != nil {
			return fail(cmd.ID, cmd.Type, err.Error())
		}
		return ok(cmd.ID, cmd.Type, map[string]any{"bit": value})

	case "bitcount":
		count, err := s.client.Bitmaps.BitCount(ctx, cmd.Key)
		if err != nil {
			return fail(cmd.ID, cmd.Type, err.Error())
		}
		return ok(cmd.ID, cmd.Type, map[string]any{"count": count})

	case "bitpos":
		position, err := s.client.Bitmaps.BitPos(ctx, cmd.Key, cmd.Value)
		if err != nil {
			return fail(cmd.ID, cmd.Type, err.Error())
		}
		return ok(cmd.ID, cmd.Type, map[string]any{"position": position})

	case "bitop_and":
		size, err := s.client.Bitmaps.And(ctx, cmd.Destination, cmd.Keys)
		if err != nil {
			return fail(cmd.ID, cmd.Type, err.Error())
		}
		return ok(cmd.ID, cmd.Type, map[string]any{"size": size})

	case "bitop_or":
		size, err := s.client.Bitmaps.Or(ctx, cmd.Destination, cmd.Keys)
		if err != nil {
			return fail(cmd.ID, cmd.Type, err.Error())
		}
		return ok(cmd.ID, cmd.Type, map[string]any{"size": size})

	case "bitop_xor":
		size, err := s.client.Bitmaps.Xor(ctx, cmd.Destination, cmd.Keys)
		if err != nil {
			return fail(cmd.ID, cmd.Type, err.Error())
		}
		return ok(cmd.ID, cmd.Type, map[string]any{"size": size})

	case "bitop_not":
		if len(cmd.Keys) != 1 {
			return fail(cmd.ID, cmd.Type, "bitop_not takes exactly one source key")
		}
		size, err := s.client.Bitmaps.Not(ctx, cmd.Destination, cmd.Keys[0])
		if err != nil {
			return fail(cmd.ID, cmd.Type, err.Error())
		}
		return ok(cmd.ID, cmd.Type, map[string]any{"size": size})

	case "strlen":
		length, err := s.client.Bitmaps.Length(ctx, cmd.Key)
		if err != nil {
			return fail(cmd.ID, cmd.Type, err.Error())
		}
		return ok(cmd.ID, cmd.Type, map[string]any{"length": length})

	case "del":
		deleted, err := s.client.Bitmaps.Delete(ctx, cmd.Key)
		if err != nil {
			return fail(cmd.ID, cmd.Type, err.Error())
		}
		return ok(cmd.ID, cmd.Type, map[string]any{"deleted": deleted})

	case "exists":
		exists, err := s.client.Bitmaps.Exists(ctx, cmd.Key)
		if err != nil {
			return fail(cmd.ID, cmd.Type, err.Error())
		}
		return ok(cmd.ID, cmd.Type, map[string]any{"exists": exists})

	case "ttl":
		ttl, err := s.client.Bitmaps.TTL(ctx, cmd.Key)
		if err != nil {
			return fail(cmd.ID, cmd.Type, err.Error())
		}
		return ok(cmd.ID, cmd.Type, map[string]any{"ttl": ttl})

	case "expire":
		set, err := s.client.Bitmaps.Expire(ctx, cmd.Key, cmd.TTL)
		if err != nil {
			return fail(cmd.ID, cmd.Type, err.Error())
		}
		return ok(cmd.ID, cmd.Type, map[string]any{"set": set})

	default:
		return fail(cmd.ID, cmd.Type, "unknown command type: "+cmd.Type)
	}
}
