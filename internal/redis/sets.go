package redis

import (
	"context"
	"errors"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// Sets wraps the set-family command set, including the set-algebra
// operations. Algebra calls with an empty key list return an empty result
// rather than erroring.
type Sets struct {
	pool *Pool
}

// NewSets creates the set primitive over pool.
func NewSets(pool *Pool) *Sets {
	return &Sets{pool: pool}
}

// Add inserts members into the set at key, returning the number of members
// that were not already present. Adding zero members is a no-op.
func (s *Sets) Add(ctx context.Context, key string, members ...string) (added int64, err error) {
	if key == "" {
		return 0, argError("sets.sadd", "key must not be empty")
	}
	if len(members) == 0 {
		return 0, nil
	}
	err = s.pool.do(ctx, "sets.sadd", func(conn *Conn) error {
		n, aerr := conn.SAdd(ctx, key, toAnySlice(members)...).Result()
		added = n
		return aerr
	})
	return added, err
}

// Remove deletes members from the set at key, returning the number of
// members that were present and removed.
func (s *Sets) Remove(ctx context.Context, key string, members ...string) (removed int64, err error) {
	if key == "" {
		return 0, argError("sets.srem", "key must not be empty")
	}
	if len(members) == 0 {
		return 0, nil
	}
	err = s.pool.do(ctx, "sets.srem", func(conn *Conn) error {
		n, rerr := conn.SRem(ctx, key, toAnySlice(members)...).Result()
		removed = n
		return rerr
	})
	return removed, err
}

// Members returns every member of the set at key. A missing set yields an
// empty slice.
func (s *Sets) Members(ctx context.Context, key string) (members []string, err error) {
	if key == "" {
		return nil, argError("sets.smembers", "key must not be empty")
	}
	err = s.pool.do(ctx, "sets.smembers", func(conn *Conn) error {
		v, merr := conn.SMembers(ctx, key).Result()
		members = v
		return merr
	})
	return members, err
}

// Cardinality returns the number of members of the set at key.
func (s *Sets) Cardinality(ctx context.Context, key string) (count int64, err error) {
	if key == "" {
		return 0, argError("sets.scard", "key must not be empty")
	}
	err = s.pool.do(ctx, "sets.scard", func(conn *Conn) error {
		n, cerr := conn.SCard(ctx, key).Result()
		count = n
		return cerr
	})
	return count, err
}

// IsMember reports whether member belongs to the set at key.
func (s *Sets) IsMember(ctx context.Context, key, member string) (isMember bool, err error) {
	if key == "" {
		return false, argError("sets.sismember", "key must not be empty")
	}
	err = s.pool.do(ctx, "sets.sismember", func(conn *Conn) error {
		v, merr := conn.SIsMember(ctx, key, member).Result()
		isMember = v
		return merr
	})
	return isMember, err
}

// Pop removes and returns a random member. ok is false when the set is
// missing or empty.
func (s *Sets) Pop(ctx context.Context, key string) (member string, ok bool, err error) {
	if key == "" {
		return "", false, argError("sets.spop", "key must not be empty")
	}
	err = s.pool.do(ctx, "sets.spop", func(conn *Conn) error {
		v, perr := conn.SPop(ctx, key).Result()
		if errors.Is(perr, goredis.Nil) {
			return nil
		}
		if perr != nil {
			return perr
		}
		member, ok = v, true
		return nil
	})
	return member, ok, err
}

// PopCount removes and returns up to count random members.
func (s *Sets) PopCount(ctx context.Context, key string, count int64) (members []string, err error) {
	if key == "" {
		return nil, argError("sets.spop", "key must not be empty")
	}
	if count <= 0 {
		return nil, argError("sets.spop", "count must be positive")
	}
	err = s.pool.do(ctx, "sets.spop", func(conn *Conn) error {
		v, perr := conn.SPopN(ctx, key, count).Result()
		members = v
		return perr
	})
	return members, err
}

// Random returns a random member without removing it. ok is false when the
// set is missing or empty.
func (s *Sets) Random(ctx context.Context, key string) (member string, ok bool, err error) {
	if key == "" {
		return "", false, argError("sets.srandmember", "key must not be empty")
	}
	err = s.pool.do(ctx, "sets.srandmember", func(conn *Conn) error {
		v, rerr := conn.SRandMember(ctx, key).Result()
		if errors.Is(rerr, goredis.Nil) {
			return nil
		}
		if rerr != nil {
			return rerr
		}
		member, ok = v, true
		return nil
	})
	return member, ok, err
}

// RandomCount returns up to count distinct random members.
func (s *Sets) RandomCount(ctx context.Context, key string, count int64) (members []string, err error) {
	if key == "" {
		return nil, argError("sets.srandmember", "key must not be empty")
	}
	if count <= 0 {
		return nil, argError("sets.srandmember", "count must be positive")
	}
	err = s.pool.do(ctx, "sets.srandmember", func(conn *Conn) error {
		v, rerr := conn.SRandMemberN(ctx, key, count).Result()
		members = v
		return rerr
	})
	return members, err
}

// Move moves member from the set at source to the set at destination.
// Reports whether the member was present and moved.
func (s *Sets) Move(ctx context.Context, source, destination, member string) (moved bool, err error) {
	if source == "" || destination == "" {
		return false, argError("sets.smove", "source and destination must not be empty")
	}
	err = s.pool.do(ctx, "sets.smove", func(conn *Conn) error {
		v, merr := conn.SMove(ctx, source, destination, member).Result()
		moved = v
		return merr
	})
	return moved, err
}

// Union returns the union of the named sets. An empty key list yields an
// empty result.
func (s *Sets) Union(ctx context.Context, keys []string) ([]string, error) {
	return s.algebra(ctx, "sets.sunion", keys, func(ctx context.Context, conn *Conn, keys []string) *goredis.StringSliceCmd {
		return conn.SUnion(ctx, keys...)
	})
}

// Intersect returns the intersection of the named sets.
func (s *Sets) Intersect(ctx context.Context, keys []string) ([]string, error) {
	return s.algebra(ctx, "sets.sinter", keys, func(ctx context.Context, conn *Conn, keys []string) *goredis.StringSliceCmd {
		return conn.SInter(ctx, keys...)
	})
}

// Difference returns the members of the first named set not present in any
// of the rest.
func (s *Sets) Difference(ctx context.Context, keys []string) ([]string, error) {
	return s.algebra(ctx, "sets.sdiff", keys, func(ctx context.Context, conn *Conn, keys []string) *goredis.StringSliceCmd {
		return conn.SDiff(ctx, keys...)
	})
}

func (s *Sets) algebra(ctx context.Context, op string, keys []string, cmd func(context.Context, *Conn, []string) *goredis.StringSliceCmd) (members []string, err error) {
	if len(keys) == 0 {
		return []string{}, nil
	}
	for _, k := range keys {
		if k == "" {
			return nil, argError(op, "keys must not be empty")
		}
	}
	err = s.pool.do(ctx, op, func(conn *Conn) error {
		v, aerr := cmd(ctx, conn, keys).Result()
		members = v
		return aerr
	})
	return members, err
}

// UnionStore stores the union of the named sets at destination, returning
// the resulting cardinality.
func (s *Sets) UnionStore(ctx context.Context, destination string, keys []string) (count int64, err error) {
	return s.algebraStore(ctx, "sets.sunionstore", destination, keys, func(ctx context.Context, conn *Conn, dst string, keys []string) *goredis.IntCmd {
		return conn.SUnionStore(ctx, dst, keys...)
	})
}

// IntersectStore stores the intersection of the named sets at destination.
func (s *Sets) IntersectStore(ctx context.Context, destination string, keys []string) (count int64, err error) {
	return s.algebraStore(ctx, "sets.sinterstore", destination, keys, func(ctx context.Context, conn *Conn, dst string, keys []string) *goredis.IntCmd {
		return conn.SInterStore(ctx, dst, keys...)
	})
}

// DifferenceStore stores the difference of the named sets at destination.
func (s *Sets) DifferenceStore(ctx context.Context, destination string, keys []string) (count int64, err error) {
	return s.algebraStore(ctx, "sets.sdiffstore", destination, keys, func(ctx context.Context, conn *Conn, dst string, keys []string) *goredis.IntCmd {
		return conn.SDiffStore(ctx, dst, keys...)
	})
}

func (s *Sets) algebraStore(ctx context.Context, op, destination string, keys []string, cmd func(context.Context, *Conn, string, []string) *goredis.IntCmd) (count int64, err error) {
	if destination == "" {
		return 0, argError(op, "destination must not be empty")
	}
	if len(keys) == 0 {
		return 0, nil
	}
	for _, k := range keys {
		if k == "" {
			return 0, argError(op, "keys must not be empty")
		}
	}
	err = s.pool.do(ctx, op, func(conn *Conn) error {
		n, aerr := cmd(ctx, conn, destination, keys).Result()
		count = n
		return aerr
	})
	return count, err
}

// Delete removes the whole set at key. Reports whether a key was removed.
func (s *Sets) Delete(ctx context.Context, key string) (deleted bool, err error) {
	if key == "" {
		return false, argError("sets.delete", "key must not be empty")
	}
	err = s.pool.do(ctx, "sets.delete", func(conn *Conn) error {
		n, derr := conn.Del(ctx, key).Result()
		deleted = n > 0
		return derr
	})
	return deleted, err
}

// Exists reports whether the set at key exists.
func (s *Sets) Exists(ctx context.Context, key string) (exists bool, err error) {
	if key == "" {
		return false, argError("sets.exists", "key must not be empty")
	}
	err = s.pool.do(ctx, "sets.exists", func(conn *Conn) error {
		n, eerr := conn.Exists(ctx, key).Result()
		exists = n > 0
		return eerr
	})
	return exists, err
}

// TTL returns the remaining time to live of the set at key in seconds
// (-1 no expiry, -2 missing key).
func (s *Sets) TTL(ctx context.Context, key string) (seconds int64, err error) {
	if key == "" {
		return 0, argError("sets.ttl", "key must not be empty")
	}
	err = s.pool.do(ctx, "sets.ttl", func(conn *Conn) error {
		d, terr := conn.TTL(ctx, key).Result()
		if terr != nil {
			return terr
		}
		seconds = durationToSeconds(d)
		return nil
	})
	return seconds, err
}

// Expire sets the TTL of the set at key.
func (s *Sets) Expire(ctx context.Context, key string, ttlSeconds int64) (set bool, err error) {
	if key == "" {
		return false, argError("sets.expire", "key must not be empty")
	}
	if ttlSeconds <= 0 {
		return false, argError("sets.expire", "ttl must be positive")
	}
	err = s.pool.do(ctx, "sets.expire", func(conn *Conn) error {
		v, eerr := conn.Expire(ctx, key, time.Duration(ttlSeconds)*time.Second).Result()
		set = v
		return eerr
	})
	return set, err
}

// BatchAdd applies every set's member list in one pipelined round trip,
// returning per-set added counts in input order.
func (s *Sets) BatchAdd(ctx context.Context, ops []SetMembers) (added []int64, err error) {
	if len(ops) == 0 {
		return nil, nil
	}
	for _, op := range ops {
		if op.Key == "" {
			return nil, argError("sets.batch_add", "keys must not be empty")
		}
	}
	err = s.pool.do(ctx, "sets.batch_add", func(conn *Conn) error {
		cmds := make([]*goredis.IntCmd, len(ops))
		_, perr := conn.Pipelined(ctx, func(pipe goredis.Pipeliner) error {
			for i, op := range ops {
				cmds[i] = pipe.SAdd(ctx, op.Key, toAnySlice(op.Members)...)
			}
			return nil
		})
		if perr != nil {
			return perr
		}
		added = make([]int64, len(ops))
		for i, cmd := range cmds {
			added[i] = cmd.Val()
		}
		return nil
	})
	return added, err
}

// BatchRemove removes every set's member list in one pipelined round trip,
// returning per-set removed counts in input order.
func (s *Sets) BatchRemove(ctx context.Context, ops []SetMembers) (removed []int64, err error) {
	if len(ops) == 0 {
		return nil, nil
	}
	for _, op := range ops {
		if op.Key == "" {
			return nil, argError("sets.batch_remove", "keys must not be empty")
		}
	}
	err = s.pool.do(ctx, "sets.batch_remove", func(conn *Conn) error {
		cmds := make([]*goredis.IntCmd, len(ops))
		_, perr := conn.Pipelined(ctx, func(pipe goredis.Pipeliner) error {
			for i, op := range ops {
				cmds[i] = pipe.SRem(ctx, op.Key, toAnySlice(op.Members)...)
			}
			return nil
		})
		if perr != nil {
			return perr
		}
		removed = make([]int64, len(ops))
		for i, cmd := range cmds {
			removed[i] = cmd.Val()
		}
		return nil
	})
	return removed, err
}

// BatchMembers fetches every named set's members in one pipelined round
// trip, in input order.
func (s *Sets) BatchMembers(ctx context.Context, keys []string) (members [][]string, err error) {
	if len(keys) == 0 {
		return nil, nil
	}
	for _, k := range keys {
		if k == "" {
			return nil, argError("sets.batch_members", "keys must not be empty")
		}
	}
	err = s.pool.do(ctx, "sets.batch_members", func(conn *Conn) error {
		cmds := make([]*goredis.StringSliceCmd, len(keys))
		_, perr := conn.Pipelined(ctx, func(pipe goredis.Pipeliner) error {
			for i, k := range keys {
				cmds[i] = pipe.SMembers(ctx, k)
			}
			return nil
		})
		if perr != nil {
			return perr
		}
		members = make([][]string, len(keys))
		for i, cmd := range cmds {
			members[i] = cmd.Val()
		}
		return nil
	})
	return members, err
}

// BatchIsMember checks each (key, member) pair in one pipelined round trip.
func (s *Sets) BatchIsMember(ctx context.Context, checks []SetMember) (results []bool, err error) {
	if len(checks) == 0 {
		return nil, nil
	}
	for _, c := range checks {
		if c.Key == "" {
			return nil, argError("sets.batch_ismember", "keys must not be empty")
		}
	}
	err = s.pool.do(ctx, "sets.batch_ismember", func(conn *Conn) error {
		cmds := make([]*goredis.BoolCmd, len(checks))
		_, perr := conn.Pipelined(ctx, func(pipe goredis.Pipeliner) error {
			for i, c := range checks {
				cmds[i] = pipe.SIsMember(ctx, c.Key, c.Member)
			}
			return nil
		})
		if perr != nil {
			return perr
		}
		results = make([]bool, len(checks))
		for i, cmd := range cmds {
			results[i] = cmd.Val()
		}
		return nil
	})
	return results, err
}

// BatchCardinality returns each named set's cardinality in input order.
func (s *Sets) BatchCardinality(ctx context.Context, keys []string) (counts []int64, err error) {
	if len(keys) == 0 {
		return nil, nil
	}
	for _, k := range keys {
		if k == "" {
			return nil, argError("sets.batch_cardinality", "keys must not be empty")
		}
	}
	err = s.pool.do(ctx, "sets.batch_cardinality", func(conn *Conn) error {
		cmds := make([]*goredis.IntCmd, len(keys))
		_, perr := conn.Pipelined(ctx, func(pipe goredis.Pipeliner) error {
			for i, k := range keys {
				cmds[i] = pipe.SCard(ctx, k)
			}
			return nil
		})
		if perr != nil {
			return perr
		}
		counts = make([]int64, len(keys))
		for i, cmd := range cmds {
			counts[i] = cmd.Val()
		}
		return nil
	})
	return counts, err
}

// BatchDelete removes the named sets, returning the count of keys that
// existed and were removed.
func (s *Sets) BatchDelete(ctx context.Context, keys []string) (deleted int64, err error) {
	if len(keys) == 0 {
		return 0, nil
	}
	for _, k := range keys {
		if k == "" {
			return 0, argError("sets.batch_delete", "keys must not be empty")
		}
	}
	err = s.pool.do(ctx, "sets.batch_delete", func(conn *Conn) error {
		n, derr := conn.Del(ctx, keys...).Result()
		deleted = n
		return derr
	})
	return deleted, err
}

// SetMembers names a set and a list of members to add or remove.
type SetMembers struct {
	Key     string   `json:"key"`
	Members []string `json:"members"`
}

// SetMember names a single member of a single set.
type SetMember struct {
	Key    string `json:"key"`
	Member string `json:"member"`
}

func toAnySlice(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}
