// Package handler provides HTTP request handlers for Redisgate.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/redisgate/redisgate/internal/redis"
	"github.com/redisgate/redisgate/internal/telemetry/logger"
)

// Handler holds the REST endpoint implementations over the pooled
// backing-store adapter.
type Handler struct {
	client *redis.Client
	log    logger.Logger
}

// New creates a new Handler over client.
func New(client *redis.Client, log logger.Logger) *Handler {
	return &Handler{client: client, log: log}
}

// Register mounts every /api/v1/redis route on mux.
func (h *Handler) Register(mux *http.ServeMux) {
	// Strings
	mux.HandleFunc("GET /api/v1/redis/strings", h.handleStringKeys)
	mux.HandleFunc("GET /api/v1/redis/strings/{key}", h.handleStringGet)
	mux.HandleFunc("POST /api/v1/redis/strings/{key}", h.handleStringSet)
	mux.HandleFunc("DELETE /api/v1/redis/strings/{key}", h.handleStringDelete)
	mux.HandleFunc("GET /api/v1/redis/strings/{key}/ttl", h.handleStringTTL)
	mux.HandleFunc("GET /api/v1/redis/strings/{key}/exists", h.handleStringExists)
	mux.HandleFunc("POST /api/v1/redis/strings/{key}/expire", h.handleStringExpire)
	mux.HandleFunc("POST /api/v1/redis/strings/{key}/incr", h.handleStringIncr)
	mux.HandleFunc("POST /api/v1/redis/strings/{key}/incrby", h.handleStringIncrBy)
	mux.HandleFunc("POST /api/v1/redis/strings/{key}/append", h.handleStringAppend)
	mux.HandleFunc("POST /api/v1/redis/strings/{key}/setnx", h.handleStringSetNX)
	mux.HandleFunc("POST /api/v1/redis/strings/{key}/cas", h.handleStringCAS)
	mux.HandleFunc("POST /api/v1/redis/strings/batch/get", h.handleStringBatchGet)
	mux.HandleFunc("POST /api/v1/redis/strings/batch/set", h.handleStringBatchSet)
	mux.HandleFunc("POST /api/v1/redis/strings/batch/incrby", h.handleStringBatchIncrBy)
	mux.HandleFunc("POST /api/v1/redis/strings/batch/delete", h.handleStringBatchDelete)

	// Hashes
	mux.HandleFunc("GET /api/v1/redis/hashes/{key}", h.handleHashGetAll)
	mux.HandleFunc("POST /api/v1/redis/hashes/{key}", h.handleHashSetFields)
	mux.HandleFunc("DELETE /api/v1/redis/hashes/{key}", h.handleHashDelete)
	mux.HandleFunc("GET /api/v1/redis/hashes/{key}/fields/{field}", h.handleHashGetField)
	mux.HandleFunc("POST /api/v1/redis/hashes/{key}/fields/{field}", h.handleHashSetField)
	mux.HandleFunc("DELETE /api/v1/redis/hashes/{key}/fields/{field}", h.handleHashDeleteField)
	mux.HandleFunc("GET /api/v1/redis/hashes/{key}/fields/{field}/exists", h.handleHashFieldExists)
	mux.HandleFunc("POST /api/v1/redis/hashes/{key}/fields/{field}/incr", h.handleHashIncrField)
	mux.HandleFunc("POST /api/v1/redis/hashes/{key}/fields/{field}/setnx", h.handleHashSetFieldNX)
	mux.HandleFunc("GET /api/v1/redis/hashes/{key}/length", h.handleHashLength)
	mux.HandleFunc("GET /api/v1/redis/hashes/{key}/keys", h.handleHashFieldNames)
	mux.HandleFunc("GET /api/v1/redis/hashes/{key}/values", h.handleHashValues)
	mux.HandleFunc("GET /api/v1/redis/hashes/{key}/random", h.handleHashRandomField)
	mux.HandleFunc("GET /api/v1/redis/hashes/{key}/ttl", h.handleHashTTL)
	mux.HandleFunc("POST /api/v1/redis/hashes/{key}/expire", h.handleHashExpire)
	mux.HandleFunc("GET /api/v1/redis/hashes/{key}/scan", h.handleHashScan)
	mux.HandleFunc("POST /api/v1/redis/hashes/{key}/mget", h.handleHashGetFields)
	mux.HandleFunc("POST /api/v1/redis/hashes/batch/set", h.handleHashBatchSet)
	mux.HandleFunc("POST /api/v1/redis/hashes/batch/get", h.handleHashBatchGet)
	mux.HandleFunc("POST /api/v1/redis/hashes/batch/delete", h.handleHashBatchDelete)
	mux.HandleFunc("POST /api/v1/redis/hashes/batch/all", h.handleHashBatchAll)
	mux.HandleFunc("POST /api/v1/redis/hashes/batch/exists", h.handleHashBatchExists)
	mux.HandleFunc("POST /api/v1/redis/hashes/batch/lengths", h.handleHashBatchLengths)

	// Sets
	mux.HandleFunc("GET /api/v1/redis/sets/{key}", h.handleSetMembers)
	mux.HandleFunc("POST /api/v1/redis/sets/{key}", h.handleSetAdd)
	mux.HandleFunc("DELETE /api/v1/redis/sets/{key}", h.handleSetDelete)
	mux.HandleFunc("GET /api/v1/redis/sets/{key}/members", h.handleSetMembers)
	mux.HandleFunc("GET /api/v1/redis/sets/{key}/cardinality", h.handleSetCardinality)
	mux.HandleFunc("GET /api/v1/redis/sets/{key}/exists/{member}", h.handleSetIsMember)
	mux.HandleFunc("GET /api/v1/redis/sets/{key}/random", h.handleSetRandom)
	mux.HandleFunc("GET /api/v1/redis/sets/{key}/ttl", h.handleSetTTL)
	mux.HandleFunc("POST /api/v1/redis/sets/{key}/expire", h.handleSetExpire)
	mux.HandleFunc("POST /api/v1/redis/sets/{key}/remove", h.handleSetRemove)
	mux.HandleFunc("POST /api/v1/redis/sets/{key}/pop", h.handleSetPop)
	mux.HandleFunc("POST /api/v1/redis/sets/{key}/move", h.handleSetMove)
	mux.HandleFunc("POST /api/v1/redis/sets/union", h.handleSetUnion)
	mux.HandleFunc("POST /api/v1/redis/sets/intersection", h.handleSetIntersection)
	mux.HandleFunc("POST /api/v1/redis/sets/difference", h.handleSetDifference)
	mux.HandleFunc("POST /api/v1/redis/sets/batch/add", h.handleSetBatchAdd)
	mux.HandleFunc("POST /api/v1/redis/sets/batch/remove", h.handleSetBatchRemove)
	mux.HandleFunc("POST /api/v1/redis/sets/batch/members", h.handleSetBatchMembers)
	mux.HandleFunc("POST /api/v1/redis/sets/batch/ismember", h.handleSetBatchIsMember)
	mux.HandleFunc("POST /api/v1/redis/sets/batch/cardinality", h.handleSetBatchCardinality)
	mux.HandleFunc("POST /api/v1/redis/sets/batch/delete", h.handleSetBatchDelete)

	// Bitmaps
	mux.HandleFunc("DELETE /api/v1/redis/bitmaps/{key}", h.handleBitmapDelete)
	mux.HandleFunc("GET /api/v1/redis/bitmaps/{key}/bits/{offset}", h.handleBitmapGetBit)
	mux.HandleFunc("POST /api/v1/redis/bitmaps/{key}/bits/{offset}", h.handleBitmapSetBit)
	mux.HandleFunc("GET /api/v1/redis/bitmaps/{key}/count", h.handleBitmapCount)
	mux.HandleFunc("GET /api/v1/redis/bitmaps/{key}/position", h.handleBitmapPosition)
	mux.HandleFunc("GET /api/v1/redis/bitmaps/{key}/length", h.handleBitmapLength)
	mux.HandleFunc("GET /api/v1/redis/bitmaps/{key}/exists", h.handleBitmapExists)
	mux.HandleFunc("GET /api/v1/redis/bitmaps/{key}/ttl", h.handleBitmapTTL)
	mux.HandleFunc("POST /api/v1/redis/bitmaps/{key}/expire", h.handleBitmapExpire)
	mux.HandleFunc("POST /api/v1/redis/bitmaps/{key}/batch/set", h.handleBitmapBatchSet)
	mux.HandleFunc("POST /api/v1/redis/bitmaps/{key}/batch/get", h.handleBitmapBatchGet)
	mux.HandleFunc("POST /api/v1/redis/bitmaps/and", h.handleBitmapAnd)
	mux.HandleFunc("POST /api/v1/redis/bitmaps/or", h.handleBitmapOr)
	mux.HandleFunc("POST /api/v1/redis/bitmaps/xor", h.handleBitmapXor)
	mux.HandleFunc("POST /api/v1/redis/bitmaps/not", h.handleBitmapNot)
	mux.HandleFunc("POST /api/v1/redis/bitmaps/batch/count", h.handleBitmapBatchCount)

	// Admin
	mux.HandleFunc("GET /api/v1/redis/admin/ping", h.handleAdminPing)
	mux.HandleFunc("GET /api/v1/redis/admin/info", h.handleAdminInfo)
	mux.HandleFunc("GET /api/v1/redis/admin/dbsize", h.handleAdminDBSize)
	mux.HandleFunc("GET /api/v1/redis/admin/time", h.handleAdminTime)
	mux.HandleFunc("GET /api/v1/redis/admin/health", h.handleAdminHealth)
	mux.HandleFunc("POST /api/v1/redis/admin/flushdb", h.handleAdminFlushDB)
	mux.HandleFunc("POST /api/v1/redis/admin/flushall", h.handleAdminFlushAll)
	mux.HandleFunc("GET /api/v1/redis/admin/config/{parameter}", h.handleAdminConfigGet)
	mux.HandleFunc("POST /api/v1/redis/admin/config/{parameter}", h.handleAdminConfigSet)

	// Scripts
	mux.HandleFunc("POST /api/v1/redis/scripts/eval", h.handleScriptEval)
	mux.HandleFunc("POST /api/v1/redis/scripts/rate-limiter", h.handleScriptRateLimiter)
	mux.HandleFunc("POST /api/v1/redis/scripts/multi-counter", h.handleScriptMultiCounter)
	mux.HandleFunc("POST /api/v1/redis/scripts/multi-set-ttl", h.handleScriptMultiSetTTL)
}

// writeJSON writes a success envelope.
func (h *Handler) writeJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(Response{Success: true, Data: data}); err != nil {
		h.log.Error("failed to encode response", "error", err)
	}
}

// writeError translates err to an HTTP status and writes the error
// envelope.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	status := statusForError(err)
	if status >= 500 {
		h.log.Error("request failed", "error", err)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(Response{Success: false, Error: err.Error()})
}

// writeBadRequest reports a malformed request body or parameter.
func (h *Handler) writeBadRequest(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	json.NewEncoder(w).Encode(Response{Success: false, Error: msg})
}

// statusForError maps adapter errors to HTTP status codes: unreachable
// or exhausted pool → 503, caller mistakes → 400, command rejections →
// 500.
func statusForError(err error) int {
	switch {
	case errors.Is(err, redis.ErrPoolExhausted), errors.Is(err, redis.ErrPoolClosed):
		return http.StatusServiceUnavailable
	case redis.IsConnection(err):
		return http.StatusServiceUnavailable
	case redis.IsInvalidArgument(err):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// decode parses the JSON request body into v.
func decode(r *http.Request, v any) error {
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
