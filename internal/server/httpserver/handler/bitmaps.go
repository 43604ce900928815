// Package handler provides HTTP request handlers for Redisgate.
package handler

import (
	"context"
	"net/http"
	"strconv"
)

// bitOffset parses the {offset} path segment.
func bitOffset(r *http.Request) (int64, bool) {
	offset, err := strconv.ParseInt(r.PathValue("offset"), 10, 64)
	if err != nil || offset < 0 {
		return 0, false
	}
	return offset, true
}

// handleBitmapSetBit handles POST /api/v1/redis/bitmaps/{key}/bits/{offset}.
func (h *Handler) handleBitmapSetBit(w http.ResponseWriter, r *http.Request) {
	offset, ok := bitOffset(r)
	if !ok {
		h.writeBadRequest(w, "invalid offset")
		return
	}
	var req SetBitRequest
	if err := decode(r, &req); err != nil {
		h.writeBadRequest(w, "invalid request body: "+err.Error())
		return
	}
	previous, err := h.client.Bitmaps.SetBit(r.Context(), r.PathValue("key"), offset, req.Value)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, map[string]any{"previous": previous})
}

// handleBitmapGetBit handles GET /api/v1/redis/bitmaps/{key}/bits/{offset}.
func (h *Handler) handleBitmapGetBit(w http.ResponseWriter, r *http.Request) {
	offset, ok := bitOffset(r)
	if !ok {
		h.writeBadRequest(w, "invalid offset")
		return
	}
	value, err := h.client.Bitmaps.GetBit(r.Context(), r.PathValue("key"), offset)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, map[string]any{"bit": value})
}

// handleBitmapCount handles GET /api/v1/redis/bitmaps/{key}/count.
// With start and end query parameters the count covers that byte range.
func (h *Handler) handleBitmapCount(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if q.Get("start") != "" || q.Get("end") != "" {
		start, err1 := strconv.ParseInt(q.Get("start"), 10, 64)
		end, err2 := strconv.ParseInt(q.Get("end"), 10, 64)
		if err1 != nil || err2 != nil {
			h.writeBadRequest(w, "start and end must both be integers")
			return
		}
		count, err := h.client.Bitmaps.BitCountRange(r.Context(), r.PathValue("key"), start, end)
		if err != nil {
			h.writeError(w, err)
			return
		}
		h.writeJSON(w, map[string]any{"count": count})
		return
	}
	count, err := h.client.Bitmaps.BitCount(r.Context(), r.PathValue("key"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, map[string]any{"count": count})
}

// handleBitmapPosition handles GET /api/v1/redis/bitmaps/{key}/position.
// The bit query parameter selects the value to search for (default 1);
// start and end narrow the search to a byte range.
func (h *Handler) handleBitmapPosition(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	value := q.Get("bit") != "0"

	if q.Get("start") != "" || q.Get("end") != "" {
		start, err1 := strconv.ParseInt(q.Get("start"), 10, 64)
		end, err2 := strconv.ParseInt(q.Get("end"), 10, 64)
		if err1 != nil || err2 != nil {
			h.writeBadRequest(w, "start and end must both be integers")
			return
		}
		position, err := h.client.Bitmaps.BitPosRange(r.Context(), r.PathValue("key"), value, start, end)
		if err != nil {
			h.writeError(w, err)
			return
		}
		h.writeJSON(w, map[string]any{"position": position})
		return
	}
	position, err := h.client.Bitmaps.BitPos(r.Context(), r.PathValue("key"), value)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, map[string]any{"position": position})
}

// handleBitmapLength handles GET /api/v1/redis/bitmaps/{key}/length.
func (h *Handler) handleBitmapLength(w http.ResponseWriter, r *http.Request) {
	length, err := h.client.Bitmaps.Length(r.Context(), r.PathValue("key"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, map[string]any{"length": length})
}

// handleBitmapExists handles GET /api/v1/redis/bitmaps/{key}/exists.
func (h *Handler) handleBitmapExists(w http.ResponseWriter, r *http.Request) {
	exists, err := h.client.Bitmaps.Exists(r.Context(), r.PathValue("key"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, map[string]any{"exists": exists})
}

// handleBitmapTTL handles GET /api/v1/redis/bitmaps/{key}/ttl.
func (h *Handler) handleBitmapTTL(w http.ResponseWriter, r *http.Request) {
	ttl, err := h.client.Bitmaps.TTL(r.Context(), r.PathValue("key"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, map[string]any{"ttl": ttl})
}

// handleBitmapExpire handles POST /api/v1/redis/bitmaps/{key}/expire.
func (h *Handler) handleBitmapExpire(w http.ResponseWriter, r *http.Request) {
	var req ExpireRequest
	if err := decode(r, &req); err != nil {
		h.writeBadRequest(w, "invalid request body: "+err.Error())
		return
	}
	set, err := h.client.Bitmaps.Expire(r.Context(), r.PathValue("key"), req.TTL)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, map[string]any{"set": set})
}

// handleBitmapDelete handles DELETE /api/v1/redis/bitmaps/{key}.
func (h *Handler) handleBitmapDelete(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.client.Bitmaps.Delete(r.Context(), r.PathValue("key"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, map[string]any{"deleted": deleted})
}

// handleBitmapAnd handles POST /api/v1/redis/bitmaps/and.
func (h *Handler) handleBitmapAnd(w http.ResponseWriter, r *http.Request) {
	h.handleBitmapOp(w, r, h.client.Bitmaps.And)
}

// handleBitmapOr handles POST /api/v1/redis/bitmaps/or.
func (h *Handler) handleBitmapOr(w http.ResponseWriter, r *http.Request) {
	h.handleBitmapOp(w, r, h.client.Bitmaps.Or)
}

// handleBitmapXor handles POST /api/v1/redis/bitmaps/xor.
func (h *Handler) handleBitmapXor(w http.ResponseWriter, r *http.Request) {
	h.handleBitmapOp(w, r, h.client.Bitmaps.Xor)
}

// handleBitmapNot handles POST /api/v1/redis/bitmaps/not. Complement
// takes exactly one source key.
func (h *Handler) handleBitmapNot(w http.ResponseWriter, r *http.Request) {
	var req BitOpRequest
	if err := decode(r, &req); err != nil {
		h.writeBadRequest(w, "invalid request body: "+err.Error())
		return
	}
	if len(req.Keys) != 1 {
		h.writeBadRequest(w, "not takes exactly one source key")
		return
	}
	size, err := h.client.Bitmaps.Not(r.Context(), req.Destination, req.Keys[0])
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, map[string]any{"size": size})
}

func (h *Handler) handleBitmapOp(w http.ResponseWriter, r *http.Request,
	op func(ctx context.Context, destination string, keys []string) (int64, error),
) {
	var req BitOpRequest
	if err := decode(r, &req); err != nil {
		h.writeBadRequest(w, "invalid request body: "+err.Error())
		return
	}
	size, err := op(r.Context(), req.Destination, req.Keys)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, map[string]any{"size": size})
}

// handleBitmapBatchSet handles POST /api/v1/redis/bitmaps/{key}/batch/set.
func (h *Handler) handleBitmapBatchSet(w http.ResponseWriter, r *http.Request) {
	var req BatchSetBitsRequest
	if err := decode(r, &req); err != nil {
		h.writeBadRequest(w, "invalid request body: "+err.Error())
		return
	}
	previous, err := h.client.Bitmaps.BatchSetBits(r.Context(), r.PathValue("key"), req.Bits)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, map[string]any{"previous": previous})
}

// handleBitmapBatchGet handles POST /api/v1/redis/bitmaps/{key}/batch/get.
func (h *Handler) handleBitmapBatchGet(w http.ResponseWriter, r *http.Request) {
	var req BatchGetBitsRequest
	if err := decode(r, &req); err != nil {
		h.writeBadRequest(w, "invalid request body: "+err.Error())
		return
	}
	bits, err := h.client.Bitmaps.BatchGetBits(r.Context(), r.PathValue("key"), req.Offsets)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, map[string]any{"bits": bits})
}

// handleBitmapBatchCount handles POST /api/v1/redis/bitmaps/batch/count.
func (h *Handler) handleBitmapBatchCount(w http.ResponseWriter, r *http.Request) {
	var req KeysRequest
	if err := decode(r, &req); err != nil {
		h.writeBadRequest(w, "invalid request body: "+err.Error())
		return
	}
	counts, err := h.client.Bitmaps.BatchBitCount(r.Context(), req.Keys)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, map[string]any{"counts": counts})
}
