package redis

import (
	"context"
	"errors"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// Strings wraps the string-family command set. One method per command;
// absence of a key is reported through the ok result, never as an error.
type Strings struct {
	pool *Pool
}

// NewStrings creates the string primitive over pool.
func NewStrings(pool *Pool) *Strings {
	return &Strings{pool: pool}
}

// Get returns the value of key. ok is false when the key does not exist.
func (s *Strings) Get(ctx context.Context, key string) (value string, ok bool, err error) {
	if key == "" {
		return "", false, argError("strings.get", "key must not be empty")
	}
	err = s.pool.do(ctx, "strings.get", func(conn *Conn) error {
		v, gerr := conn.Get(ctx, key).Result()
		if errors.Is(gerr, goredis.Nil) {
			return nil
		}
		if gerr != nil {
			return gerr
		}
		value, ok = v, true
		return nil
	})
	return value, ok, err
}

// Set stores value at key with no expiry.
func (s *Strings) Set(ctx context.Context, key, value string) error {
	if key == "" {
		return argError("strings.set", "key must not be empty")
	}
	return s.pool.do(ctx, "strings.set", func(conn *Conn) error {
		return conn.Set(ctx, key, value, 0).Err()
	})
}

// SetWithTTL stores value at key expiring after ttl seconds.
func (s *Strings) SetWithTTL(ctx context.Context, key, value string, ttlSeconds int64) error {
	if key == "" {
		return argError("strings.setex", "key must not be empty")
	}
	if ttlSeconds <= 0 {
		return argError("strings.setex", "ttl must be positive")
	}
	return s.pool.do(ctx, "strings.setex", func(conn *Conn) error {
		return conn.Set(ctx, key, value, time.Duration(ttlSeconds)*time.Second).Err()
	})
}

// SetNX stores value only if key does not exist. Reports whether the value
// was stored. A ttl of zero means no expiry.
func (s *Strings) SetNX(ctx context.Context, key, value string, ttlSeconds int64) (stored bool, err error) {
	if key == "" {
		return false, argError("strings.setnx", "key must not be empty")
	}
	if ttlSeconds < 0 {
		return false, argError("strings.setnx", "ttl must not be negative")
	}
	err = s.pool.do(ctx, "strings.setnx", func(conn *Conn) error {
		v, serr := conn.SetNX(ctx, key, value, time.Duration(ttlSeconds)*time.Second).Result()
		stored = v
		return serr
	})
	return stored, err
}

// compareAndSetScript swaps the value only when the current value matches
// the expected one. Returns 1 on swap, 0 on mismatch or missing key.
var compareAndSetScript = goredis.NewScript(`
local current = redis.call('GET', KEYS[1])
if current == false or current ~= ARGV[1] then
    return 0
end
if ARGV[3] ~= '0' then
    redis.call('SETEX', KEYS[1], tonumber(ARGV[3]), ARGV[2])
else
    redis.call('SET', KEYS[1], ARGV[2])
end
return 1
`)

// CompareAndSet atomically replaces the value at key with newValue when the
// current value equals expected. Reports whether the swap happened.
func (s *Strings) CompareAndSet(ctx context.Context, key, expected, newValue string, ttlSeconds int64) (swapped bool, err error) {
	if key == "" {
		return false, argError("strings.cas", "key must not be empty")
	}
	if ttlSeconds < 0 {
		return false, argError("strings.cas", "ttl must not be negative")
	}
	err = s.pool.do(ctx, "strings.cas", func(conn *Conn) error {
		v, serr := compareAndSetScript.Run(ctx, conn, []string{key},
			expected, newValue, ttlSeconds).Int64()
		swapped = v == 1
		return serr
	})
	return swapped, err
}

// Incr increments the number stored at key by one.
func (s *Strings) Incr(ctx context.Context, key string) (int64, error) {
	return s.IncrBy(ctx, key, 1)
}

// IncrBy increments the number stored at key by delta. A non-numeric
// existing value surfaces as an operation error from the backing store.
func (s *Strings) IncrBy(ctx context.Context, key string, delta int64) (value int64, err error) {
	if key == "" {
		return 0, argError("strings.incrby", "key must not be empty")
	}
	err = s.pool.do(ctx, "strings.incrby", func(conn *Conn) error {
		v, ierr := conn.IncrBy(ctx, key, delta).Result()
		value = v
		return ierr
	})
	return value, err
}

// Decr decrements the number stored at key by one.
func (s *Strings) Decr(ctx context.Context, key string) (int64, error) {
	return s.IncrBy(ctx, key, -1)
}

// DecrBy decrements the number stored at key by delta.
func (s *Strings) DecrBy(ctx context.Context, key string, delta int64) (int64, error) {
	return s.IncrBy(ctx, key, -delta)
}

// Append appends value to the string at key, returning the new length.
func (s *Strings) Append(ctx context.Context, key, value string) (length int64, err error) {
	if key == "" {
		return 0, argError("strings.append", "key must not be empty")
	}
	err = s.pool.do(ctx, "strings.append", func(conn *Conn) error {
		v, aerr := conn.Append(ctx, key, value).Result()
		length = v
		return aerr
	})
	return length, err
}

// Delete removes key. Reports whether a key was actually removed; deleting
// a never-set key is not an error.
func (s *Strings) Delete(ctx context.Context, key string) (deleted bool, err error) {
	if key == "" {
		return false, argError("strings.delete", "key must not be empty")
	}
	err = s.pool.do(ctx, "strings.delete", func(conn *Conn) error {
		n, derr := conn.Del(ctx, key).Result()
		deleted = n > 0
		return derr
	})
	return deleted, err
}

// Exists reports whether key exists.
func (s *Strings) Exists(ctx context.Context, key string) (exists bool, err error) {
	if key == "" {
		return false, argError("strings.exists", "key must not be empty")
	}
	err = s.pool.do(ctx, "strings.exists", func(conn *Conn) error {
		n, eerr := conn.Exists(ctx, key).Result()
		exists = n > 0
		return eerr
	})
	return exists, err
}

// TTL returns the remaining time to live of key in seconds, following the
// native convention: -1 for a key with no expiry, -2 for a missing key.
func (s *Strings) TTL(ctx context.Context, key string) (seconds int64, err error) {
	if key == "" {
		return 0, argError("strings.ttl", "key must not be empty")
	}
	err = s.pool.do(ctx, "strings.ttl", func(conn *Conn) error {
		d, terr := conn.TTL(ctx, key).Result()
		if terr != nil {
			return terr
		}
		seconds = durationToSeconds(d)
		return nil
	})
	return seconds, err
}

// Expire sets the TTL of key to ttl seconds. Reports whether the key exists
// and the timeout was set.
func (s *Strings) Expire(ctx context.Context, key string, ttlSeconds int64) (set bool, err error) {
	if key == "" {
		return false, argError("strings.expire", "key must not be empty")
	}
	if ttlSeconds <= 0 {
		return false, argError("strings.expire", "ttl must be positive")
	}
	err = s.pool.do(ctx, "strings.expire", func(conn *Conn) error {
		v, eerr := conn.Expire(ctx, key, time.Duration(ttlSeconds)*time.Second).Result()
		set = v
		return eerr
	})
	return set, err
}

// Keys returns the keys matching pattern. Intended for admin tooling; KEYS
// walks the whole keyspace on the server.
func (s *Strings) Keys(ctx context.Context, pattern string) (keys []string, err error) {
	if pattern == "" {
		pattern = "*"
	}
	err = s.pool.do(ctx, "strings.keys", func(conn *Conn) error {
		v, kerr := conn.Keys(ctx, pattern).Result()
		keys = v
		return kerr
	})
	return keys, err
}

// BatchGet returns the values for keys in input order, one pipelined round
// trip. Missing keys yield nil entries.
func (s *Strings) BatchGet(ctx context.Context, keys []string) (values []*string, err error) {
	if len(keys) == 0 {
		return nil, nil
	}
	for _, k := range keys {
		if k == "" {
			return nil, argError("strings.batch_get", "keys must not be empty")
		}
	}
	err = s.pool.do(ctx, "strings.batch_get", func(conn *Conn) error {
		cmds := make([]*goredis.StringCmd, len(keys))
		_, perr := conn.Pipelined(ctx, func(pipe goredis.Pipeliner) error {
			for i, k := range keys {
				cmds[i] = pipe.Get(ctx, k)
			}
			return nil
		})
		if perr != nil && !errors.Is(perr, goredis.Nil) {
			return perr
		}
		values = make([]*string, len(keys))
		for i, cmd := range cmds {
			if errors.Is(cmd.Err(), goredis.Nil) {
				continue
			}
			if cmd.Err() != nil {
				return cmd.Err()
			}
			v := cmd.Val()
			values[i] = &v
		}
		return nil
	})
	return values, err
}

// BatchSet stores all pairs in one pipelined round trip. A ttl of zero
// means no expiry.
func (s *Strings) BatchSet(ctx context.Context, pairs map[string]string, ttlSeconds int64) error {
	if len(pairs) == 0 {
		return nil
	}
	if ttlSeconds < 0 {
		return argError("strings.batch_set", "ttl must not be negative")
	}
	for k := range pairs {
		if k == "" {
			return argError("strings.batch_set", "keys must not be empty")
		}
	}
	ttl := time.Duration(ttlSeconds) * time.Second
	return s.pool.do(ctx, "strings.batch_set", func(conn *Conn) error {
		_, perr := conn.Pipelined(ctx, func(pipe goredis.Pipeliner) error {
			for k, v := range pairs {
				pipe.Set(ctx, k, v, ttl)
			}
			return nil
		})
		return perr
	})
}

// BatchIncrBy increments each key by its delta, returning the new values in
// input order.
func (s *Strings) BatchIncrBy(ctx context.Context, deltas []KeyDelta) (values []int64, err error) {
	if len(deltas) == 0 {
		return nil, nil
	}
	for _, d := range deltas {
		if d.Key == "" {
			return nil, argError("strings.batch_incrby", "keys must not be empty")
		}
	}
	err = s.pool.do(ctx, "strings.batch_incrby", func(conn *Conn) error {
		cmds := make([]*goredis.IntCmd, len(deltas))
		_, perr := conn.Pipelined(ctx, func(pipe goredis.Pipeliner) error {
			for i, d := range deltas {
				cmds[i] = pipe.IncrBy(ctx, d.Key, d.Delta)
			}
			return nil
		})
		if perr != nil {
			return perr
		}
		values = make([]int64, len(deltas))
		for i, cmd := range cmds {
			values[i] = cmd.Val()
		}
		return nil
	})
	return values, err
}

// BatchDelete removes all keys in one round trip, returning the count of
// keys that existed and were removed.
func (s *Strings) BatchDelete(ctx context.Context, keys []string) (deleted int64, err error) {
	if len(keys) == 0 {
		return 0, nil
	}
	for _, k := range keys {
		if k == "" {
			return 0, argError("strings.batch_delete", "keys must not be empty")
		}
	}
	err = s.pool.do(ctx, "strings.batch_delete", func(conn *Conn) error {
		n, derr := conn.Del(ctx, keys...).Result()
		deleted = n
		return derr
	})
	return deleted, err
}

// KeyDelta pairs a key with an increment amount.
type KeyDelta struct {
	Key   string `json:"key"`
	Delta int64  `json:"delta"`
}
