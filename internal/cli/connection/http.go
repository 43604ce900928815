// Package connection provides the HTTP client for redisgate-cli.
package connection

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client speaks the Redisgate REST envelope over HTTP.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates a client for the gateway at server, which may omit
// the scheme.
func NewClient(server string, timeout time.Duration) *Client {
	baseURL := server
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		baseURL = "http://" + baseURL
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// BaseURL returns the base URL of the client.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Get performs a GET request and unpacks the envelope into data.
func (c *Client) Get(ctx context.Context, path string, data any) error {
	return c.do(ctx, http.MethodGet, path, nil, data)
}

// Post performs a POST request with a JSON body and unpacks the
// envelope into data.
func (c *Client) Post(ctx context.Context, path string, body, data any) error {
	return c.do(ctx, http.MethodPost, path, body, data)
}

// Delete performs a DELETE request and unpacks the envelope into data.
func (c *Client) Delete(ctx context.Context, path string, data any) error {
	return c.do(ctx, http.MethodDelete, path, nil, data)
}

func (c *Client) do(ctx context.Context, method, path string, body, data any) error {
	var bodyReader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal body: %w", err)
		}
		bodyReader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("User-Agent", "redisgate-cli/1.0")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	return parseEnvelope(resp, data)
}

// parseEnvelope unpacks the {"success", "data", "error"} envelope,
// decoding the data payload into target when given.
func parseEnvelope(resp *http.Response, target any) error {
	defer resp.Body.Close()

	var envelope struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
		Error   string          `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		if resp.StatusCode >= 400 {
			return fmt.Errorf("request failed with status %d", resp.StatusCode)
		}
		return fmt.Errorf("parse response: %w", err)
	}

	if !envelope.Success {
		if envelope.Error != "" {
			return fmt.Errorf("%s", envelope.Error)
		}
		return fmt.Errorf("request failed with status %d", resp.StatusCode)
	}

	if target != nil && len(envelope.Data) > 0 && string(envelope.Data) != "null" {
		if err := json.Unmarshal(envelope.Data, target); err != nil {
			return fmt.Errorf("parse data: %w", err)
		}
	}
	return nil
}
