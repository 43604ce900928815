package redis

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"

	goredis "github.com/redis/go-redis/v9"
)

// Kind classifies adapter errors for transport-level translation.
type Kind int

const (
	// KindConnection means a pooled connection could not be acquired or used.
	KindConnection Kind = iota

	// KindInvalidArgument means the caller supplied a malformed key, field
	// or out-of-range value. Never retried.
	KindInvalidArgument

	// KindOperation means the backing store rejected the command
	// (type mismatch, script error).
	KindOperation
)

func (k Kind) String() string {
	switch k {
	case KindConnection:
		return "connection"
	case KindInvalidArgument:
		return "invalid_argument"
	case KindOperation:
		return "operation"
	default:
		return "unknown"
	}
}

// Error is the adapter error type. Absence of a key or field is never an
// Error; reads report absence through their ok/nil result instead.
type Error struct {
	Kind Kind
	Op   string // command or operation name, e.g. "strings.get"
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("redis: %s: %s error", e.Op, e.Kind)
	}
	return fmt.Sprintf("redis: %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Sentinel errors.
var (
	// ErrPoolExhausted is returned when no connection became available
	// within the configured wait timeout.
	ErrPoolExhausted = errors.New("redis: connection pool exhausted")

	// ErrPoolClosed is returned when the pool has been shut down.
	ErrPoolClosed = errors.New("redis: connection pool closed")
)

// connError wraps err as a connection-class error.
func connError(op string, err error) *Error {
	return &Error{Kind: KindConnection, Op: op, Err: err}
}

// opError wraps err as an operation-class error.
func opError(op string, err error) *Error {
	return &Error{Kind: KindOperation, Op: op, Err: err}
}

// argError reports an invalid argument.
func argError(op, msg string) *Error {
	return &Error{Kind: KindInvalidArgument, Op: op, Err: errors.New(msg)}
}

// KindOf returns the Kind of err, defaulting to KindOperation for
// unclassified errors.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	if errors.Is(err, ErrPoolExhausted) || errors.Is(err, ErrPoolClosed) {
		return KindConnection
	}
	return KindOperation
}

// IsConnection reports whether err is a connection-class error.
func IsConnection(err error) bool {
	return err != nil && KindOf(err) == KindConnection
}

// IsInvalidArgument reports whether err is an invalid-argument error.
func IsInvalidArgument(err error) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.Kind == KindInvalidArgument
}

// classify wraps a driver error in the matching adapter kind. redis.Nil must
// be consumed by the caller before classification; it is a miss, not a fault.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	if isNetworkError(err) {
		return connError(op, err)
	}
	return opError(op, err)
}

// isNetworkError reports whether err indicates a broken transport rather
// than a command the server rejected. Server replies implement
// goredis.Error; everything else that reached the wire is suspect.
func isNetworkError(err error) bool {
	if err == nil || errors.Is(err, goredis.Nil) {
		return false
	}
	var rerr goredis.Error
	if errors.As(err, &rerr) {
		return false
	}
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return true
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return true
	}
	var nerr net.Error
	return errors.As(err, &nerr)
}
