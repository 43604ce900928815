package redis

import (
	"context"
	"errors"
	"time"

	pool "github.com/jolestar/go-commons-pool/v2"
	goredis "github.com/redis/go-redis/v9"

	"github.com/redisgate/redisgate/internal/telemetry/logger"
	"github.com/redisgate/redisgate/internal/telemetry/metric"
)

// PoolConfig configures the connection pool.
type PoolConfig struct {
	// URL is the backing-store connection URL (redis:// or rediss://).
	URL string

	// MaxActive bounds the number of live connections. Zero means
	// DefaultMaxActive.
	MaxActive int

	// MaxIdle bounds the number of idle connections kept for reuse.
	// Zero means MaxActive.
	MaxIdle int

	// MinIdle is the number of idle connections the pool keeps warm.
	MinIdle int

	// WaitTimeout bounds how long Acquire blocks for a free connection
	// before failing with ErrPoolExhausted. Zero means DefaultWaitTimeout.
	WaitTimeout time.Duration

	// DialTimeout, ReadTimeout and WriteTimeout are passed to the driver.
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Pool defaults.
const (
	DefaultMaxActive   = 16
	DefaultWaitTimeout = 5 * time.Second
)

// Conn is one live connection to the backing store, loaned to exactly one
// in-flight operation at a time.
type Conn = goredis.Conn

// Pool hands out ready-to-use connections to the backing store. It owns
// reuse only: no retries, no health scoring. Liveness is discovered
// reactively; a connection that observed an I/O error is discarded instead
// of returned, and capacity is replenished lazily on the next Acquire.
type Pool struct {
	client      *goredis.Client
	inner       *pool.ObjectPool
	waitTimeout time.Duration
	log         logger.Logger
	metrics     *metric.Registry
}

// connFactory creates and destroys pooled connections. Each pooled object
// is a dedicated driver connection; the driver owns the wire protocol and
// the auth/db-select handshake.
type connFactory struct {
	client *goredis.Client
}

func (f *connFactory) MakeObject(ctx context.Context) (*pool.PooledObject, error) {
	return pool.NewPooledObject(f.client.Conn()), nil
}

func (f *connFactory) DestroyObject(ctx context.Context, object *pool.PooledObject) error {
	conn, ok := object.Object.(*Conn)
	if !ok {
		return errors.New("pooled object is not a connection")
	}
	return conn.Close()
}

func (f *connFactory) ValidateObject(ctx context.Context, object *pool.PooledObject) bool {
	conn, ok := object.Object.(*Conn)
	if !ok {
		return false
	}
	return conn.Ping(ctx).Err() == nil
}

func (f *connFactory) ActivateObject(ctx context.Context, object *pool.PooledObject) error {
	return nil
}

func (f *connFactory) PassivateObject(ctx context.Context, object *pool.PooledObject) error {
	return nil
}

// PoolOption configures optional pool collaborators.
type PoolOption func(*Pool)

// WithLogger sets the pool logger.
func WithLogger(log logger.Logger) PoolOption {
	return func(p *Pool) { p.log = log }
}

// WithMetrics sets the metrics registry the pool reports to.
func WithMetrics(m *metric.Registry) PoolOption {
	return func(p *Pool) { p.metrics = m }
}

// NewPool creates a connection pool for the backing store at cfg.URL.
// It does not dial eagerly; the first Acquire creates the first connection.
func NewPool(cfg PoolConfig, opts ...PoolOption) (*Pool, error) {
	redisOpts, err := goredis.ParseURL(cfg.URL)
	if err != nil {
		return nil, argError("pool.new", "invalid connection URL: "+err.Error())
	}
	if cfg.DialTimeout > 0 {
		redisOpts.DialTimeout = cfg.DialTimeout
	}
	if cfg.ReadTimeout > 0 {
		redisOpts.ReadTimeout = cfg.ReadTimeout
	}
	if cfg.WriteTimeout > 0 {
		redisOpts.WriteTimeout = cfg.WriteTimeout
	}

	maxActive := cfg.MaxActive
	if maxActive <= 0 {
		maxActive = DefaultMaxActive
	}
	maxIdle := cfg.MaxIdle
	if maxIdle <= 0 || maxIdle > maxActive {
		maxIdle = maxActive
	}
	waitTimeout := cfg.WaitTimeout
	if waitTimeout <= 0 {
		waitTimeout = DefaultWaitTimeout
	}

	client := goredis.NewClient(redisOpts)

	poolCfg := pool.NewDefaultPoolConfig()
	poolCfg.MaxTotal = maxActive
	poolCfg.MaxIdle = maxIdle
	poolCfg.MinIdle = cfg.MinIdle
	poolCfg.TestOnBorrow = true
	poolCfg.BlockWhenExhausted = true

	p := &Pool{
		client:      client,
		waitTimeout: waitTimeout,
		log:         logger.Default(),
	}
	p.inner = pool.NewObjectPool(context.Background(), &connFactory{client: client}, poolCfg)

	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Acquire borrows a connection, blocking until one is available or the wait
// timeout elapses. The caller must hand the connection back with Release or
// Discard; no two concurrent operations may share it.
func (p *Pool) Acquire(ctx context.Context) (*Conn, error) {
	waitCtx, cancel := context.WithTimeout(ctx, p.waitTimeout)
	defer cancel()

	obj, err := p.inner.BorrowObject(waitCtx)
	if err != nil {
		if p.metrics != nil {
			p.metrics.PoolAcquireFailures.Inc()
		}
		if p.inner.IsClosed() {
			return nil, ErrPoolClosed
		}
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(waitCtx.Err(), context.DeadlineExceeded) {
			return nil, ErrPoolExhausted
		}
		return nil, connError("pool.acquire", err)
	}

	conn, ok := obj.(*Conn)
	if !ok {
		_ = p.inner.InvalidateObject(ctx, obj)
		return nil, connError("pool.acquire", errors.New("pooled object is not a connection"))
	}
	if p.metrics != nil {
		p.metrics.PoolAcquires.Inc()
		p.metrics.PoolInUse.Inc()
	}
	return conn, nil
}

// Release returns conn to the idle set for reuse.
func (p *Pool) Release(ctx context.Context, conn *Conn) {
	if p.metrics != nil {
		p.metrics.PoolInUse.Dec()
	}
	if err := p.inner.ReturnObject(ctx, conn); err != nil {
		p.log.Warn("failed to return connection to pool", "error", err)
	}
}

// Discard drops conn instead of returning it. Used after an I/O error, when
// the connection state is unknown.
func (p *Pool) Discard(ctx context.Context, conn *Conn) {
	if p.metrics != nil {
		p.metrics.PoolInUse.Dec()
		p.metrics.PoolDiscards.Inc()
	}
	if err := p.inner.InvalidateObject(ctx, conn); err != nil {
		p.log.Warn("failed to discard connection", "error", err)
	}
}

// Stats reports current pool occupancy.
func (p *Pool) Stats() (active, idle int) {
	return p.inner.GetNumActive(), p.inner.GetNumIdle()
}

// Close shuts the pool down, destroying idle connections and closing the
// underlying client. In-flight connections are destroyed on return.
func (p *Pool) Close(ctx context.Context) error {
	p.inner.Close(ctx)
	return p.client.Close()
}

// do borrows a connection, runs fn on it, and hands the connection back:
// returned to the idle set on success or server-side rejection, discarded
// when the transport looks broken. All primitive operations funnel through
// here so the loan discipline and metrics live in one place.
func (p *Pool) do(ctx context.Context, op string, fn func(conn *Conn) error) error {
	conn, err := p.Acquire(ctx)
	if err != nil {
		p.observe(op, "error")
		return err
	}

	err = fn(conn)
	if err != nil && isNetworkError(err) {
		p.Discard(ctx, conn)
		p.observe(op, "error")
		return connError(op, err)
	}
	p.Release(ctx, conn)

	if err != nil {
		p.observe(op, "error")
		return opError(op, err)
	}
	p.observe(op, "ok")
	return nil
}

func (p *Pool) observe(op, status string) {
	if p.metrics != nil {
		p.metrics.CommandsTotal.WithLabelValues(op, status).Inc()
	}
}

// durationToSeconds converts a driver TTL reply to whole seconds, passing
// the -1 (no expiry) and -2 (missing key) sentinels through untouched.
func durationToSeconds(d time.Duration) int64 {
	if d < 0 {
		if d == -1 || d == -1*time.Second {
			return -1
		}
		return -2
	}
	return int64(d / time.Second)
}
