// Package handler provides HTTP request handlers for Redisgate.
package handler

import (
	"encoding/json"
	"net/http"

	"github.com/redisgate/redisgate/internal/infra/buildinfo"
)

// Health handles GET /health. It pings the backing store; an unhealthy
// store answers 503 so load balancers can rotate the instance out.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	status := h.client.Admin.Health(r.Context())

	code := http.StatusOK
	if !status.Healthy {
		code = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]any{
		"healthy":    status.Healthy,
		"latency_ms": status.LatencyMS,
		"redis":      status.Version,
		"version":    buildinfo.Version,
		"error":      status.Error,
	})
}
