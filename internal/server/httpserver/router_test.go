package httpserver

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gorilla/websocket"

	"github.com/redisgate/redisgate/internal/redis"
	"github.com/redisgate/redisgate/internal/server/wsserver"
	"github.com/redisgate/redisgate/internal/telemetry/logger"
	"github.com/redisgate/redisgate/internal/telemetry/metric"
)

// newTestRouter builds the full production router, middleware included,
// over a miniredis backend.
func newTestRouter(t *testing.T) *httptest.Server {
	t.Helper()
	mr := miniredis.RunT(t)

	client, err := redis.NewClient(redis.PoolConfig{URL: "redis://" + mr.Addr()})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	t.Cleanup(func() { client.Close(context.Background()) })

	log, err := logger.New(logger.Config{Level: "error", Output: io.Discard})
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}

	ws := wsserver.New(client, log, nil)
	t.Cleanup(func() { ws.Close() })

	router := NewRouter(&RouterConfig{
		Client:    client,
		Logger:    log,
		Metrics:   metric.NewRegistry(),
		WebSocket: ws.Handler(),
	})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

// The upgrade must succeed with the logging and metrics wrappers in
// place, which requires the wrapped writer to stay hijackable.
func TestRouterWebSocketUpgrade(t *testing.T) {
	srv := newTestRouter(t)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/redis_ws/string/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial through router: %v", err)
	}
	defer conn.Close()

	if err := conn.WriteJSON(map[string]any{"type": "set", "key": "greeting", "value": "hello"}); err != nil {
		t.Fatalf("write: %v", err)
	}
	var resp struct {
		Type    string `json:"type"`
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	if err := conn.ReadJSON(&resp); err != nil {
		t.Fatalf("read: %v", err)
	}
	if !resp.Success {
		t.Fatalf("set over router-mounted socket failed: %s", resp.Error)
	}
}

func TestRouterRESTRoundTrip(t *testing.T) {
	srv := newTestRouter(t)

	body := strings.NewReader(`{"value":"hello"}`)
	resp, err := http.Post(srv.URL+"/api/v1/redis/strings/greeting", "application/json", body)
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("POST status = %d", resp.StatusCode)
	}

	resp, err = http.Get(srv.URL + "/api/v1/redis/strings/greeting")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()

	var envelope struct {
		Success bool   `json:"success"`
		Data    string `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !envelope.Success || envelope.Data != "hello" {
		t.Fatalf("envelope = %+v", envelope)
	}
	if resp.Header.Get("X-Request-ID") == "" {
		t.Error("X-Request-ID header missing")
	}
}

func TestRouterHealthEndpoint(t *testing.T) {
	srv := newTestRouter(t)

	resp, err := http.Get(srv.URL + "/health")
	if err != nil {
		t.Fatalf("GET /health: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("health status = %d", resp.StatusCode)
	}
}
