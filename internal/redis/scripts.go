package redis

import (
	"context"
	"fmt"

	goredis "github.com/redis/go-redis/v9"
)

// Scripts submits Lua scripts for server-side execution and bundles a
// small library of precanned scripts built on the same primitive. Script
// caching (EVALSHA with EVAL fallback) is the driver's.
type Scripts struct {
	pool *Pool
}

// NewScripts creates the script helper over pool.
func NewScripts(pool *Pool) *Scripts {
	return &Scripts{pool: pool}
}

// Eval runs an ad hoc script body with positional keys and arguments,
// returning whatever scalar or array the script produced.
func (s *Scripts) Eval(ctx context.Context, body string, keys []string, args []any) (result any, err error) {
	if body == "" {
		return nil, argError("scripts.eval", "script body must not be empty")
	}
	script := goredis.NewScript(body)
	err = s.pool.do(ctx, "scripts.eval", func(conn *Conn) error {
		v, serr := script.Run(ctx, conn, keys, args...).Result()
		result = v
		return serr
	})
	return result, err
}

// rateLimiterScript implements a fixed-window counter: the first hit in a
// window creates the counter with the window TTL; hits beyond the limit
// are rejected until the window expires.
var rateLimiterScript = goredis.NewScript(`
local key = KEYS[1]
local limit = tonumber(ARGV[1])
local window = tonumber(ARGV[2])

local current = redis.call('GET', key)
if current == false then
    redis.call('SETEX', key, window, 1)
    return 1
end

if tonumber(current) >= limit then
    return 0
end

redis.call('INCR', key)
return 1
`)

// RateLimit counts a hit against key's fixed window of windowSeconds.
// Reports whether the hit was allowed.
func (s *Scripts) RateLimit(ctx context.Context, key string, limit, windowSeconds int64) (allowed bool, err error) {
	if key == "" {
		return false, argError("scripts.rate_limit", "key must not be empty")
	}
	if limit <= 0 || windowSeconds <= 0 {
		return false, argError("scripts.rate_limit", "limit and window must be positive")
	}
	err = s.pool.do(ctx, "scripts.rate_limit", func(conn *Conn) error {
		v, serr := rateLimiterScript.Run(ctx, conn, []string{key}, limit, windowSeconds).Int64()
		allowed = v == 1
		return serr
	})
	return allowed, err
}

// multiCounterScript increments every key named in KEYS by the matching
// delta in ARGV, atomically, returning the new values in order.
var multiCounterScript = goredis.NewScript(`
local results = {}
for i, key in ipairs(KEYS) do
    results[i] = redis.call('INCRBY', key, tonumber(ARGV[i]))
end
return results
`)

// IncrementCounters applies every delta atomically in one script call,
// returning the new counter values in input order.
func (s *Scripts) IncrementCounters(ctx context.Context, deltas []KeyDelta) (values []int64, err error) {
	if len(deltas) == 0 {
		return nil, nil
	}
	keys := make([]string, len(deltas))
	args := make([]any, len(deltas))
	for i, d := range deltas {
		if d.Key == "" {
			return nil, argError("scripts.multi_counter", "keys must not be empty")
		}
		keys[i] = d.Key
		args[i] = d.Delta
	}
	err = s.pool.do(ctx, "scripts.multi_counter", func(conn *Conn) error {
		v, serr := multiCounterScript.Run(ctx, conn, keys, args...).Result()
		if serr != nil {
			return serr
		}
		raw, ok := v.([]any)
		if !ok {
			return fmt.Errorf("unexpected script reply type %T", v)
		}
		values = make([]int64, len(raw))
		for i, rv := range raw {
			n, nok := rv.(int64)
			if !nok {
				return fmt.Errorf("unexpected script reply element type %T", rv)
			}
			values[i] = n
		}
		return nil
	})
	return values, err
}

// multiSetTTLScript stores every key/value pair in KEYS/ARGV with one
// shared TTL, atomically. ARGV[1] is the TTL; values follow keys' order.
var multiSetTTLScript = goredis.NewScript(`
local ttl = tonumber(ARGV[1])
for i, key in ipairs(KEYS) do
    redis.call('SETEX', key, ttl, ARGV[i + 1])
end
return #KEYS
`)

// SetManyWithTTL stores every pair with the same TTL in one atomic script
// call, returning the number of keys written.
func (s *Scripts) SetManyWithTTL(ctx context.Context, pairs map[string]string, ttlSeconds int64) (written int64, err error) {
	if len(pairs) == 0 {
		return 0, nil
	}
	if ttlSeconds <= 0 {
		return 0, argError("scripts.multi_set_ttl", "ttl must be positive")
	}
	keys := make([]string, 0, len(pairs))
	args := make([]any, 0, len(pairs)+1)
	args = append(args, ttlSeconds)
	for k, v := range pairs {
		if k == "" {
			return 0, argError("scripts.multi_set_ttl", "keys must not be empty")
		}
		keys = append(keys, k)
		args = append(args, v)
	}
	err = s.pool.do(ctx, "scripts.multi_set_ttl", func(conn *Conn) error {
		v, serr := multiSetTTLScript.Run(ctx, conn, keys, args...).Int64()
		written = v
		return serr
	})
	return written, err
}
