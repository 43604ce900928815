// Package handler provides HTTP request handlers for Redisgate.
package handler

import (
	"net/http"
	"strconv"
)

// handleHashGetAll handles GET /api/v1/redis/hashes/{key}.
// A missing hash yields an empty field map.
func (h *Handler) handleHashGetAll(w http.ResponseWriter, r *http.Request) {
	fields, err := h.client.Hashes.GetAll(r.Context(), r.PathValue("key"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, map[string]any{"fields": fields})
}

// handleHashSetFields handles POST /api/v1/redis/hashes/{key}.
func (h *Handler) handleHashSetFields(w http.ResponseWriter, r *http.Request) {
	var req SetFieldsRequest
	if err := decode(r, &req); err != nil {
		h.writeBadRequest(w, "invalid request body: "+err.Error())
		return
	}
	created, err := h.client.Hashes.SetFields(r.Context(), r.PathValue("key"), req.Fields)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, map[string]any{"created": created})
}

// handleHashDelete handles DELETE /api/v1/redis/hashes/{key}.
func (h *Handler) handleHashDelete(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.client.Hashes.Delete(r.Context(), r.PathValue("key"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, map[string]any{"deleted": deleted})
}

// handleHashGetField handles GET /api/v1/redis/hashes/{key}/fields/{field}.
// A missing field is a successful response with a null payload.
func (h *Handler) handleHashGetField(w http.ResponseWriter, r *http.Request) {
	value, ok, err := h.client.Hashes.GetField(r.Context(), r.PathValue("key"), r.PathValue("field"))
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

// handleHashSetField handles POST /api/v1/redis/hashes/{key}/fields/{field}.
func (h *Handler) handleHashSetField(w http.ResponseWriter, r *http.Request) {
	var req SetFieldRequest
	if err := decode(r, &req); err != nil {
		h.writeBadRequest(w, "invalid request body: "+err.Error())
		return
	}
	created, err := h.client.Hashes.SetField(r.Context(), r.PathValue("key"), r.PathValue("field"), req.Value)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, map[string]any{"created": created})
}

// handleHashDeleteField handles DELETE /api/v1/redis/hashes/{key}/fields/{field}.
func (h *Handler) handleHashDeleteField(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.client.Hashes.DeleteFields(r.Context(), r.PathValue("key"), r.PathValue("field"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, map[string]any{"deleted": deleted})
}

// handleHashFieldExists handles GET /api/v1/redis/hashes/{key}/fields/{field}/exists.
func (h *Handler) handleHashFieldExists(w http.ResponseWriter, r *http.Request) {
	exists, err := h.client.Hashes.FieldExists(r.Context(), r.PathValue("key"), r.PathValue("field"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, map[string]any{"exists": exists})
}

// handleHashIncrField handles POST /api/v1/redis/hashes/{key}/fields/{field}/incr.
func (h *Handler) handleHashIncrField(w http.ResponseWriter, r *http.Request) {
	var req IncrByRequest
	if err := decode(r, &req); err != nil {
		h.writeBadRequest(w, "invalid request body: "+err.Error())
		return
	}
	value, err := h.client.Hashes.IncrementField(r.Context(), r.PathValue("key"), r.PathValue("field"), req.Delta)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, map[string]any{"value": value})
}

// handleHashSetFieldNX handles POST /api/v1/redis/hashes/{key}/fields/{field}/setnx.
func (h *Handler) handleHashSetFieldNX(w http.ResponseWriter, r *http.Request) {
	var req SetFieldRequest
	if err := decode(r, &req); err != nil {
		h.writeBadRequest(w, "invalid request body: "+err.Error())
		return
	}
	stored, err := h.client.Hashes.SetFieldNX(r.Context(), r.PathValue("key"), r.PathValue("field"), req.Value)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, map[string]any{"stored": stored})
}

// handleHashLength handles GET /api/v1/redis/hashes/{key}/length.
func (h *Handler) handleHashLength(w http.ResponseWriter, r *http.Request) {
	length, err := h.client.Hashes.Length(r.Context(), r.PathValue("key"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, map[string]any{"length": length})
}

// handleHashFieldNames handles GET /api/v1/redis/hashes/{key}/keys.
func (h *Handler) handleHashFieldNames(w http.ResponseWriter, r *http.Request) {
	names, err := h.client.Hashes.FieldNames(r.Context(), r.PathValue("key"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, map[string]any{"fields": names})
}

// handleHashValues handles GET /api/v1/redis/hashes/{key}/values.
func (h *Handler) handleHashValues(w http.ResponseWriter, r *http.Request) {
	values, err := h.client.Hashes.Values(r.Context(), r.PathValue("key"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, map[string]any{"values": values})
}

// handleHashRandomField handles GET /api/v1/redis/hashes/{key}/random.
func (h *Handler) handleHashRandomField(w http.ResponseWriter, r *http.Request) {
	field, ok, err := h.client.Hashes.RandomField(r.Context(), r.PathValue("key"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	if !ok {
		h.writeJSON(w, nil)
		return
	}
	h.writeJSON(w, field)
}

// handleHashTTL handles GET /api/v1/redis/hashes/{key}/ttl.
func (h *Handler) handleHashTTL(w http.ResponseWriter, r *http.Request) {
	ttl, err := h.client.Hashes.TTL(r.Context(), r.PathValue("key"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, map[string]any{"ttl": ttl})
}

// handleHashExpire handles POST /api/v1/redis/hashes/{key}/expire.
func (h *Handler) handleHashExpire(w http.ResponseWriter, r *http.Request) {
	var req ExpireRequest
	if err := decode(r, &req); err != nil {
		h.writeBadRequest(w, "invalid request body: "+err.Error())
		return
	}
	set, err := h.client.Hashes.Expire(r.Context(), r.PathValue("key"), req.TTL)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, map[string]any{"set": set})
}

// handleHashScan handles GET /api/v1/redis/hashes/{key}/scan?cursor=&match=&count=.
func (h *Handler) handleHashScan(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	cursor, err := strconv.ParseUint(q.Get("cursor"), 10, 64)
	if q.Get("cursor") != "" && err != nil {
		h.writeBadRequest(w, "invalid cursor")
		return
	}
	var count int64
	if c := q.Get("count"); c != "" {
		count, err = strconv.ParseInt(c, 10, 64)
		if err != nil {
			h.writeBadRequest(w, "invalid count")
			return
		}
	}
	fields, next, err := h.client.Hashes.Scan(r.Context(), r.PathValue("key"), cursor, q.Get("match"), count)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, map[string]any{"fields": fields, "cursor": next})
}

// handleHashGetFields handles POST /api/v1/redis/hashes/{key}/mget.
// Missing fields yield null entries in input order.
func (h *Handler) handleHashGetFields(w http.ResponseWriter, r *http.Request) {
	var req FieldsRequest
	if err := decode(r, &req); err != nil {
		h.writeBadRequest(w, "invalid request body: "+err.Error())
		return
	}
	values, err := h.client.Hashes.GetFields(r.Context(), r.PathValue("key"), req.Fields)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, map[string]any{"values": values})
}

// handleHashBatchSet handles POST /api/v1/redis/hashes/batch/set.
func (h *Handler) handleHashBatchSet(w http.ResponseWriter, r *http.Request) {
	var req HashBatchSetRequest
	if err := decode(r, &req); err != nil {
		h.writeBadRequest(w, "invalid request body: "+err.Error())
		return
	}
	created, err := h.client.Hashes.BatchSetFields(r.Context(), req.Ops)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, map[string]any{"created": created})
}

// handleHashBatchGet handles POST /api/v1/redis/hashes/batch/get.
func (h *Handler) handleHashBatchGet(w http.ResponseWriter, r *http.Request) {
	var req HashBatchGetRequest
	if err := decode(r, &req); err != nil {
		h.writeBadRequest(w, "invalid request body: "+err.Error())
		return
	}
	values, err := h.client.Hashes.BatchGetFields(r.Context(), req.Fields)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, map[string]any{"values": values})
}

// handleHashBatchDelete handles POST /api/v1/redis/hashes/batch/delete.
func (h *Handler) handleHashBatchDelete(w http.ResponseWriter, r *http.Request) {
	var req HashBatchDeleteRequest
	if err := decode(r, &req); err != nil {
		h.writeBadRequest(w, "invalid request body: "+err.Error())
		return
	}
	deleted, err := h.client.Hashes.BatchDeleteFields(r.Context(), req.Ops)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, map[string]any{"deleted": deleted})
}

// handleHashBatchAll handles POST /api/v1/redis/hashes/batch/all.
func (h *Handler) handleHashBatchAll(w http.ResponseWriter, r *http.Request) {
	var req KeysRequest
	if err := decode(r, &req); err != nil {
		h.writeBadRequest(w, "invalid request body: "+err.Error())
		return
	}
	hashes, err := h.client.Hashes.BatchGetAll(r.Context(), req.Keys)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, map[string]any{"hashes": hashes})
}

// handleHashBatchExists handles POST /api/v1/redis/hashes/batch/exists.
func (h *Handler) handleHashBatchExists(w http.ResponseWriter, r *http.Request) {
	var req HashBatchGetRequest
	if err := decode(r, &req); err != nil {
		h.writeBadRequest(w, "invalid request body: "+err.Error())
		return
	}
	exists, err := h.client.Hashes.BatchCheckFields(r.Context(), req.Fields)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, map[string]any{"exists": exists})
}

// handleHashBatchLengths handles POST /api/v1/redis/hashes/batch/lengths.
func (h *Handler) handleHashBatchLengths(w http.ResponseWriter, r *http.Request) {
	var req KeysRequest
	if err := decode(r, &req); err != nil {
		h.writeBadRequest(w, "invalid request body: "+err.Error())
		return
	}
	lengths, err := h.client.Hashes.BatchLengths(r.Context(), req.Keys)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, map[string]any{"lengths": lengths})
}
