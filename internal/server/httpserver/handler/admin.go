// Package handler provides HTTP request handlers for Redisgate.
package handler

import (
	"net/http"
	"time"
)

// handleAdminPing handles GET /api/v1/redis/admin/ping.
func (h *Handler) handleAdminPing(w http.ResponseWriter, r *http.Request) {
	if err := h.client.Admin.Ping(r.Context()); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, "PONG")
}

// handleAdminInfo handles GET /api/v1/redis/admin/info?section=.
func (h *Handler) handleAdminInfo(w http.ResponseWriter, r *http.Request) {
	info, err := h.client.Admin.InfoSection(r.Context(), r.URL.Query().Get("section"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, map[string]any{"info": info})
}

// handleAdminDBSize handles GET /api/v1/redis/admin/dbsize.
func (h *Handler) handleAdminDBSize(w http.ResponseWriter, r *http.Request) {
	size, err := h.client.Admin.DBSize(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, map[string]any{"size": size})
}

// handleAdminTime handles GET /api/v1/redis/admin/time.
func (h *Handler) handleAdminTime(w http.ResponseWriter, r *http.Request) {
	t, err := h.client.Admin.Time(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, map[string]any{"time": t.UTC().Format(time.RFC3339Nano)})
}

// handleAdminHealth handles GET /api/v1/redis/admin/health.
// The snapshot always comes back 200; the healthy flag carries the verdict.
func (h *Handler) handleAdminHealth(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, h.client.Admin.Health(r.Context()))
}

// handleAdminFlushDB handles POST /api/v1/redis/admin/flushdb.
func (h *Handler) handleAdminFlushDB(w http.ResponseWriter, r *http.Request) {
	if err := h.client.Admin.FlushDB(r.Context()); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, map[string]any{"flushed": true})
}

// handleAdminFlushAll handles POST /api/v1/redis/admin/flushall.
func (h *Handler) handleAdminFlushAll(w http.ResponseWriter, r *http.Request) {
	if err := h.client.Admin.FlushAll(r.Context()); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, map[string]any{"flushed": true})
}

// handleAdminConfigGet handles GET /api/v1/redis/admin/config/{parameter}.
func (h *Handler) handleAdminConfigGet(w http.ResponseWriter, r *http.Request) {
	values, err := h.client.Admin.ConfigGet(r.Context(), r.PathValue("parameter"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, map[string]any{"values": values})
}

// handleAdminConfigSet handles POST /api/v1/redis/admin/config/{parameter}.
func (h *Handler) handleAdminConfigSet(w http.ResponseWriter, r *http.Request) {
	var req ConfigSetRequest
	if err := decode(r, &req); err != nil {
		h.writeBadRequest(w, "invalid request body: "+err.Error())
		return
	}
	if err := h.client.Admin.ConfigSet(r.Context(), r.PathValue("parameter"), req.Value); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, map[string]any{"parameter": r.PathValue("parameter")})
}
