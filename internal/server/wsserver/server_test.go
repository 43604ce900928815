package wsserver

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gorilla/websocket"

	"github.com/redisgate/redisgate/internal/redis"
	"github.com/redisgate/redisgate/internal/telemetry/logger"
)

func newTestServer(t *testing.T) (*httptest.Server, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client, err := redis.NewClient(redis.PoolConfig{URL: "redis://" + mr.Addr()})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	t.Cleanup(func() { _ = client.Close(context.Background()) })

	log, err := logger.New(logger.Config{Level: "error", Output: io.Discard})
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}

	ws := New(client, log, nil)
	srv := httptest.NewServer(ws.Handler())
	t.Cleanup(srv.Close)
	t.Cleanup(func() { _ = ws.Close() })
	return srv, mr
}

func dial(t *testing.T, srv *httptest.Server, family string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/redis_ws/" + family + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial %s: %v", url, err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

// exchange sends one frame and reads the reply.
func exchange(t *testing.T, conn *websocket.Conn, req any) response {
	t.Helper()
	if err := conn.WriteJSON(req); err != nil {
		t.Fatalf("write: %v", err)
	}
	var resp response
	if err := conn.ReadJSON(&resp); err != nil {
		t.Fatalf("read: %v", err)
	}
	return resp
}

func TestStringFamilySetGet(t *testing.T) {
	srv, _ := newTestServer(t)
	conn := dial(t, srv, "string")

	resp := exchange(t, conn, map[string]any{
		"id": "1", "type": "set", "key": "greeting", "value": "hello",
	})
	if !resp.Success || resp.ID != "1" || resp.Type != "set" {
		t.Fatalf("set: %+v", resp)
	}

	resp = exchange(t, conn, map[string]any{"id": "2", "type": "get", "key": "greeting"})
	if !resp.Success || resp.Data != "hello" {
		t.Fatalf("get: %+v", resp)
	}
}

func TestStringFamilyMissingKeyIsNullData(t *testing.T) {
	srv, _ := newTestServer(t)
	conn := dial(t, srv, "string")

	resp := exchange(t, conn, map[string]any{"type": "get", "key": "absent"})
	if !resp.Success {
		t.Fatalf("miss should succeed: %+v", resp)
	}
	if resp.Data != nil {
		t.Fatalf("data = %v, want null", resp.Data)
	}
}

func TestStringFamilyPing(t *testing.T) {
	srv, _ := newTestServer(t)
	conn := dial(t, srv, "string")

	resp := exchange(t, conn, map[string]any{"type": "ping"})
	if !resp.Success || resp.Data != "pong" {
		t.Fatalf("ping: %+v", resp)
	}
}

func TestUnknownTypeKeepsConnectionOpen(t *testing.T) {
	srv, _ := newTestServer(t)
	conn := dial(t, srv, "string")

	resp := exchange(t, conn, map[string]any{"id": "9", "type": "bogus"})
	if resp.Success {
		t.Fatalf("unknown type succeeded: %+v", resp)
	}
	if resp.ID != "9" || resp.Error == "" {
		t.Fatalf("error frame = %+v, want id echo and error text", resp)
	}

	// The socket must survive the error frame.
	resp = exchange(t, conn, map[string]any{"type": "ping"})
	if !resp.Success {
		t.Fatalf("ping after error frame: %+v", resp)
	}
}

func TestMalformedFrameKeepsConnectionOpen(t *testing.T) {
	srv, _ := newTestServer(t)
	conn := dial(t, srv, "string")

	if err := conn.WriteMessage(websocket.TextMessage, []byte("{not json")); err != nil {
		t.Fatalf("write: %v", err)
	}
	var resp response
	if err := conn.ReadJSON(&resp); err != nil {
		t.Fatalf("read: %v", err)
	}
	if resp.Success || resp.Error == "" {
		t.Fatalf("malformed frame reply = %+v, want error frame", resp)
	}

	resp = exchange(t, conn, map[string]any{"type": "ping"})
	if !resp.Success {
		t.Fatalf("ping after malformed frame: %+v", resp)
	}
}

func TestHashFamily(t *testing.T) {
	srv, mr := newTestServer(t)
	conn := dial(t, srv, "hash")

	resp := exchange(t, conn, map[string]any{
		"type": "hset", "key": "user:1", "field": "name", "value": "ada",
	})
	if !resp.Success {
		t.Fatalf("hset: %+v", resp)
	}
	if got := mr.HGet("user:1", "name"); got != "ada" {
		t.Fatalf("stored value = %q, want ada", got)
	}

	resp = exchange(t, conn, map[string]any{"type": "hget", "key": "user:1", "field": "name"})
	if !resp.Success || resp.Data != "ada" {
		t.Fatalf("hget: %+v", resp)
	}

	resp = exchange(t, conn, map[string]any{"type": "hlen", "key": "user:1"})
	if !resp.Success {
		t.Fatalf("hlen: %+v", resp)
	}
	if resp.Data.(map[string]any)["length"] != float64(1) {
		t.Fatalf("hlen data = %v, want 1", resp.Data)
	}
}

func TestSetFamily(t *testing.T) {
	srv, _ := newTestServer(t)
	conn := dial(t, srv, "set")

	resp := exchange(t, conn, map[string]any{
		"type": "sadd", "key": "tags", "members": []string{"go", "redis"},
	})
	if !resp.Success {
		t.Fatalf("sadd: %+v", resp)
	}
	if resp.Data.(map[string]any)["added"] != float64(2) {
		t.Fatalf("sadd data = %v, want 2", resp.Data)
	}

	resp = exchange(t, conn, map[string]any{"type": "sismember", "key": "tags", "member": "go"})
	if !resp.Success || resp.Data.(map[string]any)["is_member"] != true {
		t.Fatalf("sismember: %+v", resp)
	}

	resp = exchange(t, conn, map[string]any{"type": "scard", "key": "tags"})
	if resp.Data.(map[string]any)["cardinality"] != float64(2) {
		t.Fatalf("scard: %+v", resp)
	}
}

func TestBitmapFamily(t *testing.T) {
	srv, _ := newTestServer(t)
	conn := dial(t, srv, "bitmap")

	resp := exchange(t, conn, map[string]any{
		"type": "setbit", "key": "flags", "offset": 3, "value": true,
	})
	if !resp.Success {
		t.Fatalf("setbit: %+v", resp)
	}
	if resp.Data.(map[string]any)["previous"] != false {
		t.Fatalf("setbit data = %v, want previous false", resp.Data)
	}

	resp = exchange(t, conn, map[string]any{"type": "getbit", "key": "flags", "offset": 3})
	if !resp.Success || resp.Data.(map[string]any)["bit"] != true {
		t.Fatalf("getbit: %+v", resp)
	}

	resp = exchange(t, conn, map[string]any{"type": "bitcount", "key": "flags"})
	if !resp.Success || resp.Data.(map[string]any)["count"] != float64(1) {
		t.Fatalf("bitcount: %+v", resp)
	}

	resp = exchange(t, conn, map[string]any{"type": "bitpos", "key": "flags", "value": true})
	if !resp.Success || resp.Data.(map[string]any)["position"] != float64(3) {
		t.Fatalf("bitpos: %+v", resp)
	}
}

func TestAdminFamily(t *testing.T) {
	srv, mr := newTestServer(t)
	conn := dial(t, srv, "admin")

	resp := exchange(t, conn, map[string]any{"type": "ping"})
	if !resp.Success || resp.Data != "pong" {
		t.Fatalf("ping: %+v", resp)
	}

	mr.Set("k", "v")
	resp = exchange(t, conn, map[string]any{"type": "dbsize"})
	if !resp.Success || resp.Data.(map[string]any)["keys"] != float64(1) {
		t.Fatalf("dbsize: %+v", resp)
	}

	resp = exchange(t, conn, map[string]any{"type": "flushdb"})
	if !resp.Success {
		t.Fatalf("flushdb: %+v", resp)
	}
	if mr.Exists("k") {
		t.Fatal("key survived flushdb")
	}

	resp = exchange(t, conn, map[string]any{"type": "health"})
	if !resp.Success || resp.Data.(map[string]any)["healthy"] != true {
		t.Fatalf("health: %+v", resp)
	}
}

func TestFamiliesAreSeparateSockets(t *testing.T) {
	srv, _ := newTestServer(t)
	conn := dial(t, srv, "hash")

	// A string command type is unknown on the hash socket.
	resp := exchange(t, conn, map[string]any{"type": "incrby", "key": "n", "delta": 1})
	if resp.Success {
		t.Fatalf("string command accepted on hash socket: %+v", resp)
	}
}
