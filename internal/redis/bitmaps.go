package redis

import (
	"context"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// Bitmaps exposes bit-level operations over string values. Offsets are
// zero-based bit positions; positions that were never written read as 0.
type Bitmaps struct {
	pool *Pool
}

// NewBitmaps creates a Bitmaps module over pool.
func NewBitmaps(pool *Pool) *Bitmaps {
	return &Bitmaps{pool: pool}
}

// SetBit sets or clears the bit at offset, returning the previous bit.
func (b *Bitmaps) SetBit(ctx context.Context, key string, offset int64, value bool) (previous bool, err error) {
	if key == "" {
		return false, argError("bitmaps.setbit", "key must not be empty")
	}
	if offset < 0 {
		return false, argError("bitmaps.setbit", "offset must not be negative")
	}
	bit := 0
	if value {
		bit = 1
	}
	err = b.pool.do(ctx, "bitmaps.setbit", func(conn *Conn) error {
		prev, serr := conn.SetBit(ctx, key, offset, bit).Result()
		previous = prev == 1
		return serr
	})
	return previous, err
}

// GetBit returns the bit at offset. Missing keys and offsets past the
// end read as false.
func (b *Bitmaps) GetBit(ctx context.Context, key string, offset int64) (value bool, err error) {
	if key == "" {
		return false, argError("bitmaps.getbit", "key must not be empty")
	}
	if offset < 0 {
		return false, argError("bitmaps.getbit", "offset must not be negative")
	}
	err = b.pool.do(ctx, "bitmaps.getbit", func(conn *Conn) error {
		v, gerr := conn.GetBit(ctx, key, offset).Result()
		value = v == 1
		return gerr
	})
	return value, err
}

// BitCount returns the number of set bits in the whole value. A missing
// key counts as zero.
func (b *Bitmaps) BitCount(ctx context.Context, key string) (count int64, err error) {
	if key == "" {
		return 0, argError("bitmaps.bitcount", "key must not be empty")
	}
	err = b.pool.do(ctx, "bitmaps.bitcount", func(conn *Conn) error {
		n, cerr := conn.BitCount(ctx, key, nil).Result()
		count = n
		return cerr
	})
	return count, err
}

// BitCountRange counts set bits within the byte range [start, end].
// Negative indexes address from the end of the value.
func (b *Bitmaps) BitCountRange(ctx context.Context, key string, start, end int64) (count int64, err error) {
	if key == "" {
		return 0, argError("bitmaps.bitcount", "key must not be empty")
	}
	err = b.pool.do(ctx, "bitmaps.bitcount", func(conn *Conn) error {
		n, cerr := conn.BitCount(ctx, key, &goredis.BitCount{Start: start, End: end}).Result()
		count = n
		return cerr
	})
	return count, err
}

// And stores the bitwise AND of the source keys at destination,
// returning the size of the stored value in bytes.
func (b *Bitmaps) And(ctx context.Context, destination string, keys []string) (int64, error) {
	return b.bitOp(ctx, "bitmaps.bitop_and", destination, keys, func(ctx context.Context, conn *Conn, dst string, keys []string) *goredis.IntCmd {
		return conn.BitOpAnd(ctx, dst, keys...)
	})
}

// Or stores the bitwise OR of the source keys at destination.
func (b *Bitmaps) Or(ctx context.Context, destination string, keys []string) (int64, error) {
	return b.bitOp(ctx, "bitmaps.bitop_or", destination, keys, func(ctx context.Context, conn *Conn, dst string, keys []string) *goredis.IntCmd {
		return conn.BitOpOr(ctx, dst, keys...)
	})
}

// Xor stores the bitwise XOR of the source keys at destination.
func (b *Bitmaps) Xor(ctx context.Context, destination string, keys []string) (int64, error) {
	return b.bitOp(ctx, "bitmaps.bitop_xor", destination, keys, func(ctx context.Context, conn *Conn, dst string, keys []string) *goredis.IntCmd {
		return conn.BitOpXor(ctx, dst, keys...)
	})
}

// Not stores the bitwise complement of source at destination.
func (b *Bitmaps) Not(ctx context.Context, destination, source string) (size int64, err error) {
	if destination == "" || source == "" {
		return 0, argError("bitmaps.bitop_not", "destination and source must not be empty")
	}
	err = b.pool.do(ctx, "bitmaps.bitop_not", func(conn *Conn) error {
		n, oerr := conn.BitOpNot(ctx, destination, source).Result()
		size = n
		return oerr
	})
	return size, err
}

func (b *Bitmaps) bitOp(ctx context.Context, op, destination string, keys []string, cmd func(context.Context, *Conn, string, []string) *goredis.IntCmd) (size int64, err error) {
	if destination == "" {
		return 0, argError(op, "destination must not be empty")
	}
	if len(keys) == 0 {
		return 0, argError(op, "at least one source key required")
	}
	for _, k := range keys {
		if k == "" {
			return 0, argError(op, "keys must not be empty")
		}
	}
	err = b.pool.do(ctx, op, func(conn *Conn) error {
		n, oerr := cmd(ctx, conn, destination, keys).Result()
		size = n
		return oerr
	})
	return size, err
}

// BitPos returns the offset of the first bit with the given value, or -1
// when the value holds no such bit (native convention, passed through).
func (b *Bitmaps) BitPos(ctx context.Context, key string, value bool) (position int64, err error) {
	if key == "" {
		return 0, argError("bitmaps.bitpos", "key must not be empty")
	}
	bit := int64(0)
	if value {
		bit = 1
	}
	err = b.pool.do(ctx, "bitmaps.bitpos", func(conn *Conn) error {
		p, perr := conn.BitPos(ctx, key, bit).Result()
		position = p
		return perr
	})
	return position, err
}

// BitPosRange searches within the byte range [start, end].
func (b *Bitmaps) BitPosRange(ctx context.Context, key string, value bool, start, end int64) (position int64, err error) {
	if key == "" {
		return 0, argError("bitmaps.bitpos", "key must not be empty")
	}
	bit := int64(0)
	if value {
		bit = 1
	}
	err = b.pool.do(ctx, "bitmaps.bitpos", func(conn *Conn) error {
		p, perr := conn.BitPos(ctx, key, bit, start, end).Result()
		position = p
		return perr
	})
	return position, err
}

// Length returns the size of the stored value in bytes (STRLEN). A
// missing key has length zero.
func (b *Bitmaps) Length(ctx context.Context, key string) (bytes int64, err error) {
	if key == "" {
		return 0, argError("bitmaps.length", "key must not be empty")
	}
	err = b.pool.do(ctx, "bitmaps.length", func(conn *Conn) error {
		n, lerr := conn.StrLen(ctx, key).Result()
		bytes = n
		return lerr
	})
	return bytes, err
}

// Delete removes the bitmap at key. Reports whether a key was removed.
func (b *Bitmaps) Delete(ctx context.Context, key string) (deleted bool, err error) {
	if key == "" {
		return false, argError("bitmaps.delete", "key must not be empty")
	}
	err = b.pool.do(ctx, "bitmaps.delete", func(conn *Conn) error {
		n, derr := conn.Del(ctx, key).Result()
		deleted = n > 0
		return derr
	})
	return deleted, err
}

// Exists reports whether the bitmap at key exists.
func (b *Bitmaps) Exists(ctx context.Context, key string) (exists bool, err error) {
	if key == "" {
		return false, argError("bitmaps.exists", "key must not be empty")
	}
	err = b.pool.do(ctx, "bitmaps.exists", func(conn *Conn) error {
		n, eerr := conn.Exists(ctx, key).Result()
		exists = n > 0
		return eerr
	})
	return exists, err
}

// TTL returns the remaining time to live of the bitmap at key in seconds
// (-1 no expiry, -2 missing key).
func (b *Bitmaps) TTL(ctx context.Context, key string) (seconds int64, err error) {
	if key == "" {
		return 0, argError("bitmaps.ttl", "key must not be empty")
	}
	err = b.pool.do(ctx, "bitmaps.ttl", func(conn *Conn) error {
		d, terr := conn.TTL(ctx, key).Result()
		if terr != nil {
			return terr
		}
		seconds = durationToSeconds(d)
		return nil
	})
	return seconds, err
}

// Expire sets the TTL of the bitmap at key.
func (b *Bitmaps) Expire(ctx context.Context, key string, ttlSeconds int64) (set bool, err error) {
	if key == "" {
		return false, argError("bitmaps.expire", "key must not be empty")
	}
	if ttlSeconds <= 0 {
		return false, argError("bitmaps.expire", "ttl must be positive")
	}
	err = b.pool.do(ctx, "bitmaps.expire", func(conn *Conn) error {
		v, eerr := conn.Expire(ctx, key, time.Duration(ttlSeconds)*time.Second).Result()
		set = v
		return eerr
	})
	return set, err
}

// BatchSetBits applies every (offset, value) write to one key in a
// single pipelined round trip, returning the previous bits in input
// order.
func (b *Bitmaps) BatchSetBits(ctx context.Context, key string, bits []BitWrite) (previous []bool, err error) {
	if key == "" {
		return nil, argError("bitmaps.batch_setbit", "key must not be empty")
	}
	if len(bits) == 0 {
		return nil, nil
	}
	for _, w := range bits {
		if w.Offset < 0 {
			return nil, argError("bitmaps.batch_setbit", "offsets must not be negative")
		}
	}
	err = b.pool.do(ctx, "bitmaps.batch_setbit", func(conn *Conn) error {
		cmds := make([]*goredis.IntCmd, len(bits))
		_, perr := conn.Pipelined(ctx, func(pipe goredis.Pipeliner) error {
			for i, w := range bits {
				bit := 0
				if w.Value {
					bit = 1
				}
				cmds[i] = pipe.SetBit(ctx, key, w.Offset, bit)
			}
			return nil
		})
		if perr != nil {
			return perr
		}
		previous = make([]bool, len(bits))
		for i, cmd := range cmds {
			previous[i] = cmd.Val() == 1
		}
		return nil
	})
	return previous, err
}

// BatchGetBits reads the bits at offsets in one pipelined round trip,
// in input order.
func (b *Bitmaps) BatchGetBits(ctx context.Context, key string, offsets []int64) (values []bool, err error) {
	if key == "" {
		return nil, argError("bitmaps.batch_getbit", "key must not be empty")
	}
	if len(offsets) == 0 {
		return nil, nil
	}
	for _, o := range offsets {
		if o < 0 {
			return nil, argError("bitmaps.batch_getbit", "offsets must not be negative")
		}
	}
	err = b.pool.do(ctx, "bitmaps.batch_getbit", func(conn *Conn) error {
		cmds := make([]*goredis.IntCmd, len(offsets))
		_, perr := conn.Pipelined(ctx, func(pipe goredis.Pipeliner) error {
			for i, o := range offsets {
				cmds[i] = pipe.GetBit(ctx, key, o)
			}
			return nil
		})
		if perr != nil {
			return perr
		}
		values = make([]bool, len(offsets))
		for i, cmd := range cmds {
			values[i] = cmd.Val() == 1
		}
		return nil
	})
	return values, err
}

// BatchBitCount counts set bits per key in one pipelined round trip, in
// input order.
func (b *Bitmaps) BatchBitCount(ctx context.Context, keys []string) (counts []int64, err error) {
	if len(keys) == 0 {
		return nil, nil
	}
	for _, k := range keys {
		if k == "" {
			return nil, argError("bitmaps.batch_bitcount", "keys must not be empty")
		}
	}
	err = b.pool.do(ctx, "bitmaps.batch_bitcount", func(conn *Conn) error {
		cmds := make([]*goredis.IntCmd, len(keys))
		_, perr := conn.Pipelined(ctx, func(pipe goredis.Pipeliner) error {
			for i, k := range keys {
				cmds[i] = pipe.BitCount(ctx, k, nil)
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

// BitWrite pairs a bit offset with the value to write.
type BitWrite struct {
	Offset int64 `json:"offset"`
	Value  bool  `json:"value"`
}
