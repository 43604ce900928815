package command

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// runApp runs the CLI against a fake gateway and captures stdout.
func runApp(t *testing.T, handler http.HandlerFunc, args ...string) (string, error) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	var buf bytes.Buffer
	app := App()
	app.Writer = &buf

	full := append([]string{"redisgate-cli", "--server", srv.URL}, args...)
	err := app.Run(full)
	return buf.String(), err
}

func TestStringGet(t *testing.T) {
	out, err := runApp(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/redis/strings/greeting" {
			t.Errorf("path = %s", r.URL.Path)
		}
		w.Write([]byte(`{"success":true,"data":"hello"}`))
	}, "string", "get", "greeting")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if strings.TrimSpace(out) != "hello" {
		t.Fatalf("out = %q, want hello", out)
	}
}

func TestStringGetMissingKey(t *testing.T) {
	out, err := runApp(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"data":null}`))
	}, "string", "get", "absent")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if strings.TrimSpace(out) != "(nil)" {
		t.Fatalf("out = %q, want (nil)", out)
	}
}

func TestStringSetSendsTTL(t *testing.T) {
	var body string
	out, err := runApp(t, func(w http.ResponseWriter, r *http.Request) {
		buf := make([]byte, r.ContentLength)
		r.Body.Read(buf)
		body = string(buf)
		w.Write([]byte(`{"success":true,"data":{"key":"k"}}`))
	}, "string", "set", "--ttl", "60", "k", "v")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(body, `"ttl":60`) {
		t.Fatalf("body = %q, want ttl", body)
	}
	if strings.TrimSpace(out) != "OK" {
		t.Fatalf("out = %q, want OK", out)
	}
}

func TestStringGetRequiresKey(t *testing.T) {
	_, err := runApp(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("request sent without a key")
	}, "string", "get")
	if err == nil {
		t.Fatal("missing key accepted")
	}
}

func TestStringDel(t *testing.T) {
	out, err := runApp(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("method = %s, want DELETE", r.Method)
		}
		w.Write([]byte(`{"success":true,"data":{"deleted":true}}`))
	}, "string", "del", "k")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if strings.TrimSpace(out) != "deleted" {
		t.Fatalf("out = %q", out)
	}
}

func TestStringIncrBy(t *testing.T) {
	out, err := runApp(t, func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/incrby") {
			t.Errorf("path = %s, want incrby route", r.URL.Path)
		}
		w.Write([]byte(`{"success":true,"data":{"value":12}}`))
	}, "string", "incr", "--by", "5", "hits")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if strings.TrimSpace(out) != "12" {
		t.Fatalf("out = %q, want 12", out)
	}
}

func TestHashGetSet(t *testing.T) {
	out, err := runApp(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/redis/hashes/user:1/fields/name" {
			t.Errorf("path = %s", r.URL.Path)
		}
		w.Write([]byte(`{"success":true,"data":"ada"}`))
	}, "hash", "get", "user:1", "name")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if strings.TrimSpace(out) != "ada" {
		t.Fatalf("out = %q", out)
	}
}

func TestSetMembers(t *testing.T) {
	out, err := runApp(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"data":{"members":["a","b"]}}`))
	}, "set", "members", "s")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out, "a") || !strings.Contains(out, "b") {
		t.Fatalf("out = %q", out)
	}
}

func TestAdminPing(t *testing.T) {
	out, err := runApp(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"data":"PONG"}`))
	}, "admin", "ping")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if strings.TrimSpace(out) != "PONG" {
		t.Fatalf("out = %q", out)
	}
}

func TestServerErrorSurfaces(t *testing.T) {
	_, err := runApp(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"success":false,"error":"redis: pool.acquire: connection refused"}`))
	}, "admin", "ping")
	if err == nil || !strings.Contains(err.Error(), "connection refused") {
		t.Fatalf("err = %v, want surfaced error", err)
	}
}

func TestKeyPathEscapes(t *testing.T) {
	if got := keyPath("strings", "a/b"); got != "/api/v1/redis/strings/a%2Fb" {
		t.Fatalf("keyPath = %q", got)
	}
}
