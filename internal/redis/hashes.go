package redis

import (
	"context"
	"errors"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// Hashes wraps the hash-family command set.
type Hashes struct {
	pool *Pool
}

// NewHashes creates the hash primitive over pool.
func NewHashes(pool *Pool) *Hashes {
	return &Hashes{pool: pool}
}

// KeyField addresses one field of one hash.
type KeyField struct {
	Key   string `json:"key"`
	Field string `json:"field"`
}

// SetField stores value under field of the hash at key. Reports whether the
// field was newly created (false means an existing field was overwritten).
func (h *Hashes) SetField(ctx context.Context, key, field, value string) (created bool, err error) {
	if key == "" || field == "" {
		return false, argError("hashes.hset", "key and field must not be empty")
	}
	err = h.pool.do(ctx, "hashes.hset", func(conn *Conn) error {
		n, serr := conn.HSet(ctx, key, field, value).Result()
		created = n == 1
		return serr
	})
	return created, err
}

// SetFields stores all field/value pairs on the hash at key, returning the
// number of newly created fields.
func (h *Hashes) SetFields(ctx context.Context, key string, fields map[string]string) (created int64, err error) {
	if key == "" {
		return 0, argError("hashes.hset", "key must not be empty")
	}
	if len(fields) == 0 {
		return 0, nil
	}
	args := make([]any, 0, len(fields)*2)
	for f, v := range fields {
		if f == "" {
			return 0, argError("hashes.hset", "fields must not be empty")
		}
		args = append(args, f, v)
	}
	err = h.pool.do(ctx, "hashes.hset", func(conn *Conn) error {
		n, serr := conn.HSet(ctx, key, args...).Result()
		created = n
		return serr
	})
	return created, err
}

// SetFieldNX stores value under field only if the field does not exist.
func (h *Hashes) SetFieldNX(ctx context.Context, key, field, value string) (stored bool, err error) {
	if key == "" || field == "" {
		return false, argError("hashes.hsetnx", "key and field must not be empty")
	}
	err = h.pool.do(ctx, "hashes.hsetnx", func(conn *Conn) error {
		v, serr := conn.HSetNX(ctx, key, field, value).Result()
		stored = v
		return serr
	})
	return stored, err
}

// GetField returns the value under field. ok is false when the hash or the
// field does not exist.
func (h *Hashes) GetField(ctx context.Context, key, field string) (value string, ok bool, err error) {
	if key == "" || field == "" {
		return "", false, argError("hashes.hget", "key and field must not be empty")
	}
	err = h.pool.do(ctx, "hashes.hget", func(conn *Conn) error {
		v, gerr := conn.HGet(ctx, key, field).Result()
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

// GetFields returns the values for fields of the hash at key in input
// order. Missing fields yield nil entries.
func (h *Hashes) GetFields(ctx context.Context, key string, fields []string) (values []*string, err error) {
	if key == "" {
		return nil, argError("hashes.hmget", "key must not be empty")
	}
	if len(fields) == 0 {
		return nil, nil
	}
	err = h.pool.do(ctx, "hashes.hmget", func(conn *Conn) error {
		vs, gerr := conn.HMGet(ctx, key, fields...).Result()
		if gerr != nil {
			return gerr
		}
		values = make([]*string, len(vs))
		for i, v := range vs {
			if v == nil {
				continue
			}
			if s, sok := v.(string); sok {
				values[i] = &s
			}
		}
		return nil
	})
	return values, err
}

// GetAll returns every field and value of the hash at key. A missing hash
// yields an empty map.
func (h *Hashes) GetAll(ctx context.Context, key string) (fields map[string]string, err error) {
	if key == "" {
		return nil, argError("hashes.hgetall", "key must not be empty")
	}
	err = h.pool.do(ctx, "hashes.hgetall", func(conn *Conn) error {
		v, gerr := conn.HGetAll(ctx, key).Result()
		fields = v
		return gerr
	})
	return fields, err
}

// DeleteFields removes the given fields, returning the count of fields that
// existed and were removed.
func (h *Hashes) DeleteFields(ctx context.Context, key string, fields ...string) (deleted int64, err error) {
	if key == "" {
		return 0, argError("hashes.hdel", "key must not be empty")
	}
	if len(fields) == 0 {
		return 0, nil
	}
	err = h.pool.do(ctx, "hashes.hdel", func(conn *Conn) error {
		n, derr := conn.HDel(ctx, key, fields...).Result()
		deleted = n
		return derr
	})
	return deleted, err
}

// FieldExists reports whether field exists on the hash at key.
func (h *Hashes) FieldExists(ctx context.Context, key, field string) (exists bool, err error) {
	if key == "" || field == "" {
		return false, argError("hashes.hexists", "key and field must not be empty")
	}
	err = h.pool.do(ctx, "hashes.hexists", func(conn *Conn) error {
		v, eerr := conn.HExists(ctx, key, field).Result()
		exists = v
		return eerr
	})
	return exists, err
}

// Length returns the number of fields on the hash at key.
func (h *Hashes) Length(ctx context.Context, key string) (length int64, err error) {
	if key == "" {
		return 0, argError("hashes.hlen", "key must not be empty")
	}
	err = h.pool.do(ctx, "hashes.hlen", func(conn *Conn) error {
		v, lerr := conn.HLen(ctx, key).Result()
		length = v
		return lerr
	})
	return length, err
}

// FieldNames returns the field names of the hash at key.
func (h *Hashes) FieldNames(ctx context.Context, key string) (names []string, err error) {
	if key == "" {
		return nil, argError("hashes.hkeys", "key must not be empty")
	}
	err = h.pool.do(ctx, "hashes.hkeys", func(conn *Conn) error {
		v, kerr := conn.HKeys(ctx, key).Result()
		names = v
		return kerr
	})
	return names, err
}

// Values returns the values of the hash at key.
func (h *Hashes) Values(ctx context.Context, key string) (values []string, err error) {
	if key == "" {
		return nil, argError("hashes.hvals", "key must not be empty")
	}
	err = h.pool.do(ctx, "hashes.hvals", func(conn *Conn) error {
		v, verr := conn.HVals(ctx, key).Result()
		values = v
		return verr
	})
	return values, err
}

// IncrementField increments the number stored under field by delta and
// returns the new value. An unset field counts from zero.
func (h *Hashes) IncrementField(ctx context.Context, key, field string, delta int64) (value int64, err error) {
	if key == "" || field == "" {
		return 0, argError("hashes.hincrby", "key and field must not be empty")
	}
	err = h.pool.do(ctx, "hashes.hincrby", func(conn *Conn) error {
		v, ierr := conn.HIncrBy(ctx, key, field, delta).Result()
		value = v
		return ierr
	})
	return value, err
}

// RandomField returns a random field name of the hash at key. ok is false
// when the hash is missing or empty.
func (h *Hashes) RandomField(ctx context.Context, key string) (field string, ok bool, err error) {
	if key == "" {
		return "", false, argError("hashes.hrandfield", "key must not be empty")
	}
	err = h.pool.do(ctx, "hashes.hrandfield", func(conn *Conn) error {
		vs, rerr := conn.HRandField(ctx, key, 1).Result()
		if rerr != nil && !errors.Is(rerr, goredis.Nil) {
			return rerr
		}
		if len(vs) > 0 {
			field, ok = vs[0], true
		}
		return nil
	})
	return field, ok, err
}

// Scan returns one page of field/value pairs from the hash at key, starting
// at cursor. A zero returned cursor means the scan is complete.
func (h *Hashes) Scan(ctx context.Context, key string, cursor uint64, match string, count int64) (fields map[string]string, next uint64, err error) {
	if key == "" {
		return nil, 0, argError("hashes.hscan", "key must not be empty")
	}
	if count <= 0 {
		count = 10
	}
	err = h.pool.do(ctx, "hashes.hscan", func(conn *Conn) error {
		pairs, c, serr := conn.HScan(ctx, key, cursor, match, count).Result()
		if serr != nil {
			return serr
		}
		fields = make(map[string]string, len(pairs)/2)
		for i := 0; i+1 < len(pairs); i += 2 {
			fields[pairs[i]] = pairs[i+1]
		}
		next = c
		return nil
	})
	return fields, next, err
}

// Delete removes the whole hash at key. Reports whether a key was removed.
func (h *Hashes) Delete(ctx context.Context, key string) (deleted bool, err error) {
	if key == "" {
		return false, argError("hashes.delete", "key must not be empty")
	}
	err = h.pool.do(ctx, "hashes.delete", func(conn *Conn) error {
		n, derr := conn.Del(ctx, key).Result()
		deleted = n > 0
		return derr
	})
	return deleted, err
}

// Exists reports whether the hash at key exists.
func (h *Hashes) Exists(ctx context.Context, key string) (exists bool, err error) {
	if key == "" {
		return false, argError("hashes.exists", "key must not be empty")
	}
	err = h.pool.do(ctx, "hashes.exists", func(conn *Conn) error {
		n, eerr := conn.Exists(ctx, key).Result()
		exists = n > 0
		return eerr
	})
	return exists, err
}

// TTL returns the remaining time to live of the hash at key in seconds
// (-1 no expiry, -2 missing key).
func (h *Hashes) TTL(ctx context.Context, key string) (seconds int64, err error) {
	if key == "" {
		return 0, argError("hashes.ttl", "key must not be empty")
	}
	err = h.pool.do(ctx, "hashes.ttl", func(conn *Conn) error {
		d, terr := conn.TTL(ctx, key).Result()
		if terr != nil {
			return terr
		}
		seconds = durationToSeconds(d)
		return nil
	})
	return seconds, err
}

// Expire sets the TTL of the hash at key.
func (h *Hashes) Expire(ctx context.Context, key string, ttlSeconds int64) (set bool, err error) {
	if key == "" {
		return false, argError("hashes.expire", "key must not be empty")
	}
	if ttlSeconds <= 0 {
		return false, argError("hashes.expire", "ttl must be positive")
	}
	err = h.pool.do(ctx, "hashes.expire", func(conn *Conn) error {
		v, eerr := conn.Expire(ctx, key, time.Duration(ttlSeconds)*time.Second).Result()
		set = v
		return eerr
	})
	return set, err
}

// BatchSetFields applies every hash's field map in one pipelined round
// trip, returning per-hash created-field counts in input order.
func (h *Hashes) BatchSetFields(ctx context.Context, ops []HashFieldSet) (created []int64, err error) {
	if len(ops) == 0 {
		return nil, nil
	}
	for _, op := range ops {
		if op.Key == "" {
			return nil, argError("hashes.batch_set", "keys must not be empty")
		}
		if len(op.Fields) == 0 {
			return nil, argError("hashes.batch_set", "field maps must not be empty")
		}
	}
	err = h.pool.do(ctx, "hashes.batch_set", func(conn *Conn) error {
		cmds := make([]*goredis.IntCmd, len(ops))
		_, perr := conn.Pipelined(ctx, func(pipe goredis.Pipeliner) error {
			for i, op := range ops {
				args := make([]any, 0, len(op.Fields)*2)
				for f, v := range op.Fields {
					args = append(args, f, v)
				}
				cmds[i] = pipe.HSet(ctx, op.Key, args...)
			}
			return nil
		})
		if perr != nil {
			return perr
		}
		created = make([]int64, len(ops))
		for i, cmd := range cmds {
			created[i] = cmd.Val()
		}
		return nil
	})
	return created, err
}

// BatchGetFields resolves each (key, field) address in one pipelined round
// trip. Missing fields yield nil entries.
func (h *Hashes) BatchGetFields(ctx context.Context, addrs []KeyField) (values []*string, err error) {
	if len(addrs) == 0 {
		return nil, nil
	}
	for _, a := range addrs {
		if a.Key == "" || a.Field == "" {
			return nil, argError("hashes.batch_get", "keys and fields must not be empty")
		}
	}
	err = h.pool.do(ctx, "hashes.batch_get", func(conn *Conn) error {
		cmds := make([]*goredis.StringCmd, len(addrs))
		_, perr := conn.Pipelined(ctx, func(pipe goredis.Pipeliner) error {
			for i, a := range addrs {
				cmds[i] = pipe.HGet(ctx, a.Key, a.Field)
			}
			return nil
		})
		if perr != nil && !errors.Is(perr, goredis.Nil) {
			return perr
		}
		values = make([]*string, len(addrs))
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

// BatchDeleteFields removes each hash's fields in one pipelined round trip,
// returning per-hash removed counts in input order.
func (h *Hashes) BatchDeleteFields(ctx context.Context, ops []HashFieldDelete) (deleted []int64, err error) {
	if len(ops) == 0 {
		return nil, nil
	}
	for _, op := range ops {
		if op.Key == "" {
			return nil, argError("hashes.batch_delete", "keys must not be empty")
		}
		if len(op.Fields) == 0 {
			return nil, argError("hashes.batch_delete", "field lists must not be empty")
		}
	}
	err = h.pool.do(ctx, "hashes.batch_delete", func(conn *Conn) error {
		cmds := make([]*goredis.IntCmd, len(ops))
		_, perr := conn.Pipelined(ctx, func(pipe goredis.Pipeliner) error {
			for i, op := range ops {
				cmds[i] = pipe.HDel(ctx, op.Key, op.Fields...)
			}
			return nil
		})
		if perr != nil {
			return perr
		}
		deleted = make([]int64, len(ops))
		for i, cmd := range cmds {
			deleted[i] = cmd.Val()
		}
		return nil
	})
	return deleted, err
}

// BatchGetAll fetches every named hash in full, one pipelined round trip.
// Missing hashes yield empty maps.
func (h *Hashes) BatchGetAll(ctx context.Context, keys []string) (hashes []map[string]string, err error) {
	if len(keys) == 0 {
		return nil, nil
	}
	for _, k := range keys {
		if k == "" {
			return nil, argError("hashes.batch_all", "keys must not be empty")
		}
	}
	err = h.pool.do(ctx, "hashes.batch_all", func(conn *Conn) error {
		cmds := make([]*goredis.MapStringStringCmd, len(keys))
		_, perr := conn.Pipelined(ctx, func(pipe goredis.Pipeliner) error {
			for i, k := range keys {
				cmds[i] = pipe.HGetAll(ctx, k)
			}
			return nil
		})
		if perr != nil {
			return perr
		}
		hashes = make([]map[string]string, len(keys))
		for i, cmd := range cmds {
			hashes[i] = cmd.Val()
		}
		return nil
	})
	return hashes, err
}

// BatchCheckFields reports existence for each (key, field) address in one
// pipelined round trip, in input order.
func (h *Hashes) BatchCheckFields(ctx context.Context, addrs []KeyField) (exists []bool, err error) {
	if len(addrs) == 0 {
		return nil, nil
	}
	for _, a := range addrs {
		if a.Key == "" || a.Field == "" {
			return nil, argError("hashes.batch_exists", "keys and fields must not be empty")
		}
	}
	err = h.pool.do(ctx, "hashes.batch_exists", func(conn *Conn) error {
		cmds := make([]*goredis.BoolCmd, len(addrs))
		_, perr := conn.Pipelined(ctx, func(pipe goredis.Pipeliner) error {
			for i, a := range addrs {
				cmds[i] = pipe.HExists(ctx, a.Key, a.Field)
			}
			return nil
		})
		if perr != nil {
			return perr
		}
		exists = make([]bool, len(addrs))
		for i, cmd := range cmds {
			exists[i] = cmd.Val()
		}
		return nil
	})
	return exists, err
}

// BatchLengths returns the field count of each named hash in input order.
func (h *Hashes) BatchLengths(ctx context.Context, keys []string) (lengths []int64, err error) {
	if len(keys) == 0 {
		return nil, nil
	}
	for _, k := range keys {
		if k == "" {
			return nil, argError("hashes.batch_lengths", "keys must not be empty")
		}
	}
	err = h.pool.do(ctx, "hashes.batch_lengths", func(conn *Conn) error {
		cmds := make([]*goredis.IntCmd, len(keys))
		_, perr := conn.Pipelined(ctx, func(pipe goredis.Pipeliner) error {
			for i, k := range keys {
				cmds[i] = pipe.HLen(ctx, k)
			}
			return nil
		})
		if perr != nil {
			return perr
		}
		lengths = make([]int64, len(keys))
		for i, cmd := range cmds {
			lengths[i] = cmd.Val()
		}
		return nil
	})
	return lengths, err
}

// HashFieldSet names a hash and the field/value pairs to apply to it.
type HashFieldSet struct {
	Key    string            `json:"key"`
	Fields map[string]string `json:"fields"`
}

// HashFieldDelete names a hash and the fields to remove from it.
type HashFieldDelete struct {
	Key    string   `json:"key"`
	Fields []string `json:"fields"`
}
