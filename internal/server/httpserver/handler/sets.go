// Package handler provides HTTP request handlers for Redisgate.
package handler

import (
	"context"
	"net/http"
	"strconv"
)

// handleSetMembers handles GET /api/v1/redis/sets/{key} and
// GET /api/v1/redis/sets/{key}/members.
func (h *Handler) handleSetMembers(w http.ResponseWriter, r *http.Request) {
	members, err := h.client.Sets.Members(r.Context(), r.PathValue("key"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, map[string]any{"members": members})
}

// handleSetAdd handles POST /api/v1/redis/sets/{key}.
func (h *Handler) handleSetAdd(w http.ResponseWriter, r *http.Request) {
	var req MembersRequest
	if err := decode(r, &req); err != nil {
		h.writeBadRequest(w, "invalid request body: "+err.Error())
		return
	}
	added, err := h.client.Sets.Add(r.Context(), r.PathValue("key"), req.Members...)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, map[string]any{"added": added})
}

// handleSetDelete handles DELETE /api/v1/redis/sets/{key}.
func (h *Handler) handleSetDelete(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.client.Sets.Delete(r.Context(), r.PathValue("key"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, map[string]any{"deleted": deleted})
}

// handleSetCardinality handles GET /api/v1/redis/sets/{key}/cardinality.
func (h *Handler) handleSetCardinality(w http.ResponseWriter, r *http.Request) {
	count, err := h.client.Sets.Cardinality(r.Context(), r.PathValue("key"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, map[string]any{"cardinality": count})
}

// handleSetIsMember handles GET /api/v1/redis/sets/{key}/exists/{member}.
func (h *Handler) handleSetIsMember(w http.ResponseWriter, r *http.Request) {
	isMember, err := h.client.Sets.IsMember(r.Context(), r.PathValue("key"), r.PathValue("member"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, map[string]any{"is_member": isMember})
}

// handleSetRandom handles GET /api/v1/redis/sets/{key}/random?count=.
// Without count a single member (or null) is returned; with count a
// member list.
func (h *Handler) handleSetRandom(w http.ResponseWriter, r *http.Request) {
	if c := r.URL.Query().Get("count"); c != "" {
		count, err := strconv.ParseInt(c, 10, 64)
		if err != nil {
			h.writeBadRequest(w, "invalid count")
			return
		}
		members, err := h.client.Sets.RandomCount(r.Context(), r.PathValue("key"), count)
		if err != nil {
			h.writeError(w, err)
			return
		}
		h.writeJSON(w, map[string]any{"members": members})
		return
	}
	member, ok, err := h.client.Sets.Random(r.Context(), r.PathValue("key"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	if !ok {
		h.writeJSON(w, nil)
		return
	}
	h.writeJSON(w, member)
}

// handleSetTTL handles GET /api/v1/redis/sets/{key}/ttl.
func (h *Handler) handleSetTTL(w http.ResponseWriter, r *http.Request) {
	ttl, err := h.client.Sets.TTL(r.Context(), r.PathValue("key"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, map[string]any{"ttl": ttl})
}

// handleSetExpire handles POST /api/v1/redis/sets/{key}/expire.
func (h *Handler) handleSetExpire(w http.ResponseWriter, r *http.Request) {
	var req ExpireRequest
	if err := decode(r, &req); err != nil {
		h.writeBadRequest(w, "invalid request body: "+err.Error())
		return
	}
	set, err := h.client.Sets.Expire(r.Context(), r.PathValue("key"), req.TTL)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, map[string]any{"set": set})
}

// handleSetRemove handles POST /api/v1/redis/sets/{key}/remove.
func (h *Handler) handleSetRemove(w http.ResponseWriter, r *http.Request) {
	var req MembersRequest
	if err := decode(r, &req); err != nil {
		h.writeBadRequest(w, "invalid request body: "+err.Error())
		return
	}
	removed, err := h.client.Sets.Remove(r.Context(), r.PathValue("key"), req.Members...)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, map[string]any{"removed": removed})
}

// handleSetPop handles POST /api/v1/redis/sets/{key}/pop.
// Without count a single member (or null) is returned; with count a
// member list.
func (h *Handler) handleSetPop(w http.ResponseWriter, r *http.Request) {
	var req PopRequest
	if err := decode(r, &req); err != nil {
		h.writeBadRequest(w, "invalid request body: "+err.Error())
		return
	}
	if req.Count > 0 {
		members, err := h.client.Sets.PopCount(r.Context(), r.PathValue("key"), req.Count)
		if err != nil {
			h.writeError(w, err)
			return
		}
		h.writeJSON(w, map[string]any{"members": members})
		return
	}
	member, ok, err := h.client.Sets.Pop(r.Context(), r.PathValue("key"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	if !ok {
		h.writeJSON(w, nil)
		return
	}
	h.writeJSON(w, member)
}

// handleSetMove handles POST /api/v1/redis/sets/{key}/move.
func (h *Handler) handleSetMove(w http.ResponseWriter, r *http.Request) {
	var req MoveRequest
	if err := decode(r, &req); err != nil {
		h.writeBadRequest(w, "invalid request body: "+err.Error())
		return
	}
	moved, err := h.client.Sets.Move(r.Context(), r.PathValue("key"), req.Destination, req.Member)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, map[string]any{"moved": moved})
}

// handleSetUnion handles POST /api/v1/redis/sets/union.
func (h *Handler) handleSetUnion(w http.ResponseWriter, r *http.Request) {
	h.handleSetAlgebra(w, r, h.client.Sets.Union, h.client.Sets.UnionStore)
}

// handleSetIntersection handles POST /api/v1/redis/sets/intersection.
func (h *Handler) handleSetIntersection(w http.ResponseWriter, r *http.Request) {
	h.handleSetAlgebra(w, r, h.client.Sets.Intersect, h.client.Sets.IntersectStore)
}

// handleSetDifference handles POST /api/v1/redis/sets/difference.
func (h *Handler) handleSetDifference(w http.ResponseWriter, r *http.Request) {
	h.handleSetAlgebra(w, r, h.client.Sets.Difference, h.client.Sets.DifferenceStore)
}

// handleSetAlgebra runs one set-algebra operation, storing the result
// when a destination is named.
func (h *Handler) handleSetAlgebra(w http.ResponseWriter, r *http.Request,
	compute func(context.Context, []string) ([]string, error),
	store func(context.Context, string, []string) (int64, error),
) {
	var req AlgebraRequest
	if err := decode(r, &req); err != nil {
		h.writeBadRequest(w, "invalid request body: "+err.Error())
		return
	}
	if req.Destination != "" {
		count, err := store(r.Context(), req.Destination, req.Keys)
		if err != nil {
			h.writeError(w, err)
			return
		}
		h.writeJSON(w, map[string]any{"cardinality": count})
		return
	}
	members, err := compute(r.Context(), req.Keys)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, map[string]any{"members": members})
}

// handleSetBatchAdd handles POST /api/v1/redis/sets/batch/add.
func (h *Handler) handleSetBatchAdd(w http.ResponseWriter, r *http.Request) {
	var req SetBatchMembersRequest
	if err := decode(r, &req); err != nil {
		h.writeBadRequest(w, "invalid request body: "+err.Error())
		return
	}
	added, err := h.client.Sets.BatchAdd(r.Context(), req.Ops)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, map[string]any{"added": added})
}

// handleSetBatchRemove handles POST /api/v1/redis/sets/batch/remove.
func (h *Handler) handleSetBatchRemove(w http.ResponseWriter, r *http.Request) {
	var req SetBatchMembersRequest
	if err := decode(r, &req); err != nil {
		h.writeBadRequest(w, "invalid request body: "+err.Error())
		return
	}
	removed, err := h.client.Sets.BatchRemove(r.Context(), req.Ops)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, map[string]any{"removed": removed})
}

// handleSetBatchMembers handles POST /api/v1/redis/sets/batch/members.
func (h *Handler) handleSetBatchMembers(w http.ResponseWriter, r *http.Request) {
	var req KeysRequest
	if err := decode(r, &req); err != nil {
		h.writeBadRequest(w, "invalid request body: "+err.Error())
		return
	}
	members, err := h.client.Sets.BatchMembers(r.Context(), req.Keys)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, map[string]any{"members": members})
}

// handleSetBatchIsMember handles POST /api/v1/redis/sets/batch/ismember.
func (h *Handler) handleSetBatchIsMember(w http.ResponseWriter, r *http.Request) {
	var req SetBatchIsMemberRequest
	if err := decode(r, &req); err != nil {
		h.writeBadRequest(w, "invalid request body: "+err.Error())
		return
	}
	results, err := h.client.Sets.BatchIsMember(r.Context(), req.Checks)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, map[string]any{"results": results})
}

// handleSetBatchCardinality handles POST /api/v1/redis/sets/batch/cardinality.
func (h *Handler) handleSetBatchCardinality(w http.ResponseWriter, r *http.Request) {
	var req KeysRequest
	if err := decode(r, &req); err != nil {
		h.writeBadRequest(w, "invalid request body: "+err.Error())
		return
	}
	counts, err := h.client.Sets.BatchCardinality(r.Context(), req.Keys)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, map[string]any{"counts": counts})
}

// handleSetBatchDelete handles POST /api/v1/redis/sets/batch/delete.
func (h *Handler) handleSetBatchDelete(w http.ResponseWriter, r *http.Request) {
	var req KeysRequest
	if err := decode(r, &req); err != nil {
		h.writeBadRequest(w, "invalid request body: "+err.Error())
		return
	}
	deleted, err := h.client.Sets.BatchDelete(r.Context(), req.Keys)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, map[string]any{"deleted": deleted})
}
