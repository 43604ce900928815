package redis

import "context"

// Client bundles the pool and every primitive module behind one handle.
// It is the unit the transports share; pass it explicitly, never through
// a package-level singleton.
type Client struct {
	pool *Pool

	Strings *Strings
	Hashes  *Hashes
	Sets    *Sets
	Bitmaps *Bitmaps
	Admin   *Admin
	Batch   *Batcher
	Scripts *Scripts
}

// NewClient creates the pool and wires every primitive module over it.
func NewClient(cfg PoolConfig, opts ...PoolOption) (*Client, error) {
	pool, err := NewPool(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Client{
		pool:    pool,
		Strings: NewStrings(pool),
		Hashes:  NewHashes(pool),
		Sets:    NewSets(pool),
		Bitmaps: NewBitmaps(pool),
		Admin:   NewAdmin(pool),
		Batch:   NewBatcher(pool),
		Scripts: NewScripts(pool),
	}, nil
}

// Pool exposes the underlying connection pool.
func (c *Client) Pool() *Pool {
	return c.pool
}

// Close shuts down the pool and its connections.
func (c *Client) Close(ctx context.Context) error {
	return c.pool.Close(ctx)
}
