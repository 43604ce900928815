// Package handler provides HTTP request handlers for Redisgate.
package handler

import "net/http"

// handleStringKeys handles GET /api/v1/redis/strings?pattern=.
func (h *Handler) handleStringKeys(w http.ResponseWriter, r *http.Request) {
	keys, err := h.client.Strings.Keys(r.Context(), r.URL.Query().Get("pattern"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, map[string]any{"keys": keys})
}

// handleStringGet handles GET /api/v1/redis/strings/{key}.
// A missing key is a successful response with a null payload.
func (h *Handler) handleStringGet(w http.ResponseWriter, r *http.Request) {
	value, ok, err := h.client.Strings.Get(r.Context(), r.PathValue("key"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	if !ok {
		h.writeJSON(w, nil)
		return
	}
	h.writeJSON(w, value)
}

// handleStringSet handles POST /api/v1/redis/strings/{key}.
func (h *Handler) handleStringSet(w http.ResponseWriter, r *http.Request) {
	var req SetStringRequest
	if err := decode(r, &req); err != nil {
		h.writeBadRequest(w, "invalid request body: "+err.Error())
		return
	}
	key := r.PathValue("key")
	var err error
	if req.TTL > 0 {
		err = h.client.Strings.SetWithTTL(r.Context(), key, req.Value, req.TTL)
	} else {
		err = h.client.Strings.Set(r.Context(), key, req.Value)
	}
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, map[string]any{"key": key})
}

// handleStringDelete handles DELETE /api/v1/redis/strings/{key}.
func (h *Handler) handleStringDelete(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.client.Strings.Delete(r.Context(), r.PathValue("key"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, map[string]any{"deleted": deleted})
}

// handleStringTTL handles GET /api/v1/redis/strings/{key}/ttl.
func (h *Handler) handleStringTTL(w http.ResponseWriter, r *http.Request) {
	ttl, err := h.client.Strings.TTL(r.Context(), r.PathValue("key"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, map[string]any{"ttl": ttl})
}

// handleStringExists handles GET /api/v1/redis/strings/{key}/exists.
func (h *Handler) handleStringExists(w http.ResponseWriter, r *http.Request) {
	exists, err := h.client.Strings.Exists(r.Context(), r.PathValue("key"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, map[string]any{"exists": exists})
}

// handleStringExpire handles POST /api/v1/redis/strings/{key}/expire.
func (h *Handler) handleStringExpire(w http.ResponseWriter, r *http.Request) {
	var req ExpireRequest
	if err := decode(r, &req); err != nil {
		h.writeBadRequest(w, "invalid request body: "+err.Error())
		return
	}
	set, err := h.client.Strings.Expire(r.Context(), r.PathValue("key"), req.TTL)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, map[string]any{"set": set})
}

// handleStringIncr handles POST /api/v1/redis/strings/{key}/incr.
func (h *Handler) handleStringIncr(w http.ResponseWriter, r *http.Request) {
	value, err := h.client.Strings.Incr(r.Context(), r.PathValue("key"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, map[string]any{"value": value})
}

// handleStringIncrBy handles POST /api/v1/redis/strings/{key}/incrby.
func (h *Handler) handleStringIncrBy(w http.ResponseWriter, r *http.Request) {
	var req IncrByRequest
	if err := decode(r, &req); err != nil {
		h.writeBadRequest(w, "invalid request body: "+err.Error())
		return
	}
	value, err := h.client.Strings.IncrBy(r.Context(), r.PathValue("key"), req.Delta)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, map[string]any{"value": value})
}

// handleStringAppend handles POST /api/v1/redis/strings/{key}/append.
func (h *Handler) handleStringAppend(w http.ResponseWriter, r *http.Request) {
	var req AppendRequest
	if err := decode(r, &req); err != nil {
		h.writeBadRequest(w, "invalid request body: "+err.Error())
		return
	}
	length, err := h.client.Strings.Append(r.Context(), r.PathValue("key"), req.Value)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, map[string]any{"length": length})
}

// handleStringSetNX handles POST /api/v1/redis/strings/{key}/setnx.
func (h *Handler) handleStringSetNX(w http.ResponseWriter, r *http.Request) {
	var req SetStringRequest
	if err := decode(r, &req); err != nil {
		h.writeBadRequest(w, "invalid request body: "+err.Error())
		return
	}
	stored, err := h.client.Strings.SetNX(r.Context(), r.PathValue("key"), req.Value, req.TTL)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, map[string]any{"stored": stored})
}

// handleStringCAS handles POST /api/v1/redis/strings/{key}/cas.
func (h *Handler) handleStringCAS(w http.ResponseWriter, r *http.Request) {
	var req CompareAndSetRequest
	if err := decode(r, &req); err != nil {
		h.writeBadRequest(w, "invalid request body: "+err.Error())
		return
	}
	swapped, err := h.client.Strings.CompareAndSet(r.Context(), r.PathValue("key"),
		req.Expected, req.Value, req.TTL)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, map[string]any{"swapped": swapped})
}

// handleStringBatchGet handles POST /api/v1/redis/strings/batch/get.
// Missing keys yield null entries in input order.
func (h *Handler) handleStringBatchGet(w http.ResponseWriter, r *http.Request) {
	var req KeysRequest
	if err := decode(r, &req); err != nil {
		h.writeBadRequest(w, "invalid request body: "+err.Error())
		return
	}
	values, err := h.client.Strings.BatchGet(r.Context(), req.Keys)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, map[string]any{"values": values})
}

// handleStringBatchSet handles POST /api/v1/redis/strings/batch/set.
func (h *Handler) handleStringBatchSet(w http.ResponseWriter, r *http.Request) {
	var req BatchSetStringsRequest
	if err := decode(r, &req); err != nil {
		h.writeBadRequest(w, "invalid request body: "+err.Error())
		return
	}
	if err := h.client.Strings.BatchSet(r.Context(), req.Pairs, req.TTL); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, map[string]any{"count": len(req.Pairs)})
}

// handleStringBatchIncrBy handles POST /api/v1/redis/strings/batch/incrby.
func (h *Handler) handleStringBatchIncrBy(w http.ResponseWriter, r *http.Request) {
	var req BatchIncrByRequest
	if err := decode(r, &req); err != nil {
		h.writeBadRequest(w, "invalid request body: "+err.Error())
		return
	}
	values, err := h.client.Strings.BatchIncrBy(r.Context(), req.Deltas)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, map[string]any{"values": values})
}

// handleStringBatchDelete handles POST /api/v1/redis/strings/batch/delete.
func (h *Handler) handleStringBatchDelete(w http.ResponseWriter, r *http.Request) {
	var req KeysRequest
	if err := decode(r, &req); err != nil {
		h.writeBadRequest(w, "invalid request body: "+err.Error())
		return
	}
	deleted, err := h.client.Strings.BatchDelete(r.Context(), req.Keys)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, map[string]any{"deleted": deleted})
}
