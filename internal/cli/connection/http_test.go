package connection

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestNewClientAddsScheme(t *testing.T) {
	c := NewClient("localhost:8080", time.Second)
	if c.BaseURL() != "http://localhost:8080" {
		t.Fatalf("BaseURL = %q", c.BaseURL())
	}
	c = NewClient("https://gateway.example.com", time.Second)
	if c.BaseURL() != "https://gateway.example.com" {
		t.Fatalf("BaseURL = %q", c.BaseURL())
	}
}

func TestGetUnpacksEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"data":{"value":42}}`))
	}))
	defer srv.Close()

	var data struct {
		Value int `json:"value"`
	}
	if err := NewClient(srv.URL, time.Second).Get(context.Background(), "/x", &data); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if data.Value != 42 {
		t.Fatalf("value = %d, want 42", data.Value)
	}
}

func TestGetNullDataLeavesTargetUntouched(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"data":null}`))
	}))
	defer srv.Close()

	var value *string
	if err := NewClient(srv.URL, time.Second).Get(context.Background(), "/x", &value); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if value != nil {
		t.Fatalf("value = %v, want nil", *value)
	}
}

func TestErrorEnvelopeSurfacesMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"success":false,"error":"key must not be empty"}`))
	}))
	defer srv.Close()

	err := NewClient(srv.URL, time.Second).Get(context.Background(), "/x", nil)
	if err == nil || !strings.Contains(err.Error(), "key must not be empty") {
		t.Fatalf("err = %v, want envelope message", err)
	}
}

func TestNonJSONErrorFallsBackToStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream exploded"))
	}))
	defer srv.Close()

	err := NewClient(srv.URL, time.Second).Get(context.Background(), "/x", nil)
	if err == nil || !strings.Contains(err.Error(), "502") {
		t.Fatalf("err = %v, want status fallback", err)
	}
}

func TestPostSendsJSONBody(t *testing.T) {
	var gotContentType, gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		buf := make([]byte, r.ContentLength)
		r.Body.Read(buf)
		gotBody = string(buf)
		w.Write([]byte(`{"success":true,"data":null}`))
	}))
	defer srv.Close()

	err := NewClient(srv.URL, time.Second).Post(context.Background(), "/x",
		map[string]any{"value": "v"}, nil)
	if err != nil {
		t.Fatalf("Post: %v", err)
	}
	if gotContentType != "application/json" {
		t.Fatalf("Content-Type = %q", gotContentType)
	}
	if !strings.Contains(gotBody, `"value":"v"`) {
		t.Fatalf("body = %q", gotBody)
	}
}
