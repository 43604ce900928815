// Package handler provides HTTP request handlers for Redisgate.
package handler

import "github.com/redisgate/redisgate/internal/redis"

// Response is the standard API response envelope. Every JSON endpoint
// uses this shape; /metrics is the only exception.
type Response struct {
	Success bool   `json:"success"`
	Data    any    `json:"data"`
	Error   string `json:"error,omitempty"`
}

// SetStringRequest is the body for POST /strings/{key}.
type SetStringRequest struct {
	Value string `json:"value"`
	TTL   int64  `json:"ttl,omitempty"`
}

// CompareAndSetRequest is the body for POST /strings/{key}/cas.
type CompareAndSetRequest struct {
	Expected string `json:"expected"`
	Value    string `json:"value"`
	TTL      int64  `json:"ttl,omitempty"`
}

// IncrByRequest is the body for POST /strings/{key}/incrby and
// /hashes/{key}/fields/{field}/incr.
type IncrByRequest struct {
	Delta int64 `json:"delta"`
}

// AppendRequest is the body for POST /strings/{key}/append.
type AppendRequest struct {
	Value string `json:"value"`
}

// ExpireRequest is the body for POST /{family}/{key}/expire.
type ExpireRequest struct {
	TTL int64 `json:"ttl"`
}

// KeysRequest names a list of keys for batch operations.
type KeysRequest struct {
	Keys []string `json:"keys"`
}

// BatchSetStringsRequest is the body for POST /strings/batch/set.
type BatchSetStringsRequest struct {
	Pairs map[string]string `json:"pairs"`
	TTL   int64             `json:"ttl,omitempty"`
}

// BatchIncrByRequest is the body for POST /strings/batch/incrby.
type BatchIncrByRequest struct {
	Deltas []redis.KeyDelta `json:"deltas"`
}

// SetFieldRequest is the body for POST /hashes/{key}/fields/{field}.
type SetFieldRequest struct {
	Value string `json:"value"`
}

// SetFieldsRequest is the body for POST /hashes/{key}.
type SetFieldsRequest struct {
	Fields map[string]string `json:"fields"`
}

// FieldsRequest names hash fields for POST /hashes/{key}/mget.
type FieldsRequest struct {
	Fields []string `json:"fields"`
}

// HashBatchSetRequest is the body for POST /hashes/batch/set.
type HashBatchSetRequest struct {
	Ops []redis.HashFieldSet `json:"ops"`
}

// HashBatchGetRequest is the body for POST /hashes/batch/get and
// /hashes/batch/exists.
type HashBatchGetRequest struct {
	Fields []redis.KeyField `json:"fields"`
}

// HashBatchDeleteRequest is the body for POST /hashes/batch/delete.
type HashBatchDeleteRequest struct {
	Ops []redis.HashFieldDelete `json:"ops"`
}

// MembersRequest is the body for POST /sets/{key} and /sets/{key}/remove.
type MembersRequest struct {
	Members []string `json:"members"`
}

// PopRequest is the body for POST /sets/{key}/pop.
type PopRequest struct {
	Count int64 `json:"count,omitempty"`
}

// MoveRequest is the body for POST /sets/{key}/move.
type MoveRequest struct {
	Destination string `json:"destination"`
	Member      string `json:"member"`
}

// AlgebraRequest is the body for POST /sets/union|intersection|difference.
// When Destination is set the result is stored there and the response
// carries the resulting cardinality instead of the members.
type AlgebraRequest struct {
	Keys        []string `json:"keys"`
	Destination string   `json:"destination,omitempty"`
}

// SetBatchMembersRequest is the body for POST /sets/batch/add|remove.
type SetBatchMembersRequest struct {
	Ops []redis.SetMembers `json:"ops"`
}

// SetBatchIsMemberRequest is the body for POST /sets/batch/ismember.
type SetBatchIsMemberRequest struct {
	Checks []redis.SetMember `json:"checks"`
}

// SetBitRequest is the body for POST /bitmaps/{key}/bits/{offset}.
type SetBitRequest struct {
	Value bool `json:"value"`
}

// BitOpRequest is the body for POST /bitmaps/and|or|xor|not. Not takes a
// single source key.
type BitOpRequest struct {
	Destination string   `json:"destination"`
	Keys        []string `json:"keys"`
}

// BatchSetBitsRequest is the body for POST /bitmaps/{key}/batch/set.
type BatchSetBitsRequest struct {
	Bits []redis.BitWrite `json:"bits"`
}

// BatchGetBitsRequest is the body for POST /bitmaps/{key}/batch/get.
type BatchGetBitsRequest struct {
	Offsets []int64 `json:"offsets"`
}

// ConfigSetRequest is the body for POST /admin/config/{parameter}.
type ConfigSetRequest struct {
	Value string `json:"value"`
}

// EvalRequest is the body for POST /scripts/eval.
type EvalRequest struct {
	Script string   `json:"script"`
	Keys   []string `json:"keys,omitempty"`
	Args   []any    `json:"args,omitempty"`
}

// RateLimiterRequest is the body for POST /scripts/rate-limiter.
type RateLimiterRequest struct {
	Key           string `json:"key"`
	Limit         int64  `json:"limit"`
	WindowSeconds int64  `json:"window_seconds"`
}

// MultiCounterRequest is the body for POST /scripts/multi-counter.
type MultiCounterRequest struct {
	Deltas []redis.KeyDelta `json:"deltas"`
}

// MultiSetTTLRequest is the body for POST /scripts/multi-set-ttl.
type MultiSetTTLRequest struct {
	Pairs map[string]string `json:"pairs"`
	TTL   int64             `json:"ttl"`
}
