// Package redis implements the pooled adapter over the Redis backing store.
//
// It wraps the go-redis driver with a bounded connection pool and exposes
// one typed module per data-structure family (strings, hashes, sets, admin)
// plus pipeline, transaction and Lua script helpers. The adapter adds no
// durability or consistency logic of its own; atomicity and isolation are
// whatever Redis natively provides.
package redis
