// Package handler provides HTTP request handlers for Redisgate.
package handler

import "net/http"

// handleScriptEval handles POST /api/v1/redis/scripts/eval.
func (h *Handler) handleScriptEval(w http.ResponseWriter, r *http.Request) {
	var req EvalRequest
	if err := decode(r, &req); err != nil {
		h.writeBadRequest(w, "invalid request body: "+err.Error())
		return
	}
	result, err := h.client.Scripts.Eval(r.Context(), req.Script, req.Keys, req.Args)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, map[string]any{"result": result})
}

// handleScriptRateLimiter handles POST /api/v1/redis/scripts/rate-limiter.
func (h *Handler) handleScriptRateLimiter(w http.ResponseWriter, r *http.Request) {
	var req RateLimiterRequest
	if err := decode(r, &req); err != nil {
		h.writeBadRequest(w, "invalid request body: "+err.Error())
		return
	}
	allowed, err := h.client.Scripts.RateLimit(r.Context(), req.Key, req.Limit, req.WindowSeconds)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, map[string]any{"allowed": allowed})
}

// handleScriptMultiCounter handles POST /api/v1/redis/scripts/multi-counter.
func (h *Handler) handleScriptMultiCounter(w http.ResponseWriter, r *http.Request) {
	var req MultiCounterRequest
	if err := decode(r, &req); err != nil {
		h.writeBadRequest(w, "invalid request body: "+err.Error())
		return
	}
	values, err := h.client.Scripts.IncrementCounters(r.Context(), req.Deltas)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, map[string]any{"values": values})
}

// handleScriptMultiSetTTL handles POST /api/v1/redis/scripts/multi-set-ttl.
func (h *Handler) handleScriptMultiSetTTL(w http.ResponseWriter, r *http.Request) {
	var req MultiSetTTLRequest
	if err := decode(r, &req); err != nil {
		h.writeBadRequest(w, "invalid request body: "+err.Error())
		return
	}
	written, err := h.client.Scripts.SetManyWithTTL(r.Context(), req.Pairs, req.TTL)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, map[string]any{"written": written})
}
