package redis

import (
	"context"
	"errors"

	goredis "github.com/redis/go-redis/v9"
)

// Batcher submits groups of commands as a single round trip, either
// pipelined (independent commands) or transactional (MULTI/EXEC).
// Atomicity of the transactional form is entirely the backing store's;
// no compensating logic lives here.
type Batcher struct {
	pool *Pool
}

// NewBatcher creates the batch helper over pool.
func NewBatcher(pool *Pool) *Batcher {
	return &Batcher{pool: pool}
}

// Result is one command's outcome within a batch, in submission order.
type Result struct {
	// Value is the decoded reply. Nil for key-miss replies.
	Value any

	// Err is the per-command failure, if any. A key miss is not a failure.
	Err error
}

// Pipeline buffers the commands fn appends and submits them as one round
// trip. Per-command results come back in submission order; a command the
// server rejected carries its own Err without failing its neighbours.
func (b *Batcher) Pipeline(ctx context.Context, fn func(pipe goredis.Pipeliner) error) ([]Result, error) {
	return b.run(ctx, "batch.pipeline", fn, false)
}

// Transaction behaves like Pipeline but wraps the buffer in MULTI/EXEC so
// the backing store applies all commands or none.
func (b *Batcher) Transaction(ctx context.Context, fn func(pipe goredis.Pipeliner) error) ([]Result, error) {
	return b.run(ctx, "batch.transaction", fn, true)
}

func (b *Batcher) run(ctx context.Context, op string, fn func(pipe goredis.Pipeliner) error, atomic bool) (results []Result, err error) {
	err = b.pool.do(ctx, op, func(conn *Conn) error {
		var cmds []goredis.Cmder
		var perr error
		if atomic {
			cmds, perr = conn.TxPipelined(ctx, fn)
		} else {
			cmds, perr = conn.Pipelined(ctx, fn)
		}
		if perr != nil && !errors.Is(perr, goredis.Nil) && len(cmds) == 0 {
			return perr
		}
		results = make([]Result, len(cmds))
		for i, cmd := range cmds {
			results[i] = decodeCmd(cmd)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

// decodeCmd converts a driver command outcome into a Result, folding a
// key-miss reply into a nil value.
func decodeCmd(cmd goredis.Cmder) Result {
	if err := cmd.Err(); err != nil {
		if errors.Is(err, goredis.Nil) {
			return Result{Value: nil}
		}
		return Result{Err: err}
	}
	type valuer interface{ Val() any }
	if v, ok := cmd.(valuer); ok {
		return Result{Value: v.Val()}
	}
	switch c := cmd.(type) {
	case *goredis.StringCmd:
		return Result{Value: c.Val()}
	case *goredis.IntCmd:
		return Result{Value: c.Val()}
	case *goredis.BoolCmd:
		return Result{Value: c.Val()}
	case *goredis.StatusCmd:
		return Result{Value: c.Val()}
	case *goredis.StringSliceCmd:
		return Result{Value: c.Val()}
	case *goredis.MapStringStringCmd:
		return Result{Value: c.Val()}
	case *goredis.DurationCmd:
		return Result{Value: c.Val()}
	default:
		return Result{Value: cmd.String()}
	}
}
