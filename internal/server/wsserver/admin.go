// Package wsserver provides the WebSocket transport for Redisgate.
package wsserver

import (
	"context"
	"encoding/json"
	"time"
)

// adminCommand is the decoded inbound frame for the admin family.
type adminCommand struct {
	ID      string `json:"id,omitempty"`
	Type    string `json:"type"`
	Section string `json:"section,omitempty"`
}

// dispatchAdmin resolves one admin-family frame.
func (s *Server) dispatchAdmin(ctx context.Context, raw []byte) response {
	var cmd adminCommand
	if err := json.Unmarshal(raw, &cmd); err != nil {
		return fail("", "error", "malformed frame: "+err.Error())
	}

	switch cmd.Type {
	case "ping":
		if err := s.client.Admin.Ping(ctx); err != nil {
			return fail(cmd.ID, cmd.Type, err.Error())
		}
		return ok(cmd.ID, cmd.Type, "pong")

	case "info":
		var (
			info string
			err  error
		)
		if cmd.Section != "" {
			info, err = s.client.Admin.InfoSection(ctx, cmd.Section)
		} else {
			info, err = s.client.Admin.Info(ctx)
		}
		if err != nil {
			return fail(cmd.ID, cmd.Type, err.Error())
		}
		return ok(cmd.ID, cmd.Type, map[string]any{"info": info})

	case "dbsize":
		size, err := s.client.Admin.DBSize(ctx)
		if err != nil {
			return fail(cmd.ID, cmd.Type, err.Error())
		}
		return ok(cmd.ID, cmd.Type, map[string]any{"keys": size})

	case "flushdb":
		if err := s.client.Admin.FlushDB(ctx); err != nil {
			return fail(cmd.ID, cmd.Type, err.Error())
		}
		return ok(cmd.ID, cmd.Type, map[string]any{"flushed": true})

	case "time":
		t, err := s.client.Admin.Time(ctx)
		if err != nil {
			return fail(cmd.ID, cmd.Type, err.Error())
		}
		return ok(cmd.ID, cmd.Type, map[string]any{
			"unix_seconds": t.Unix(),
			"rfc3339":      t.UTC().Format(time.RFC3339Nano),
		})

	case "health":
		status := s.client.Admin.Health(ctx)
		return ok(cmd.ID, cmd.Type, map[string]any{
			"healthy":    status.Healthy,
			"latency_ms": status.LatencyMS,
			"redis":      status.Version,
			"error":      status.Error,
		})

	default:
		return fail(cmd.ID, cmd.Type, "unknown command type: "+cmd.Type)
	}
}
