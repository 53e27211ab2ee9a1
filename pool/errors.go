package pool

import (
	"errors"
	"fmt"
)

// Sentinel errors for pool operations.
var (
	// ErrSentinel is returned when a pool's sentinel object is returned to it.
	ErrSentinel = errors.New("sentinel objects cannot be returned to a pool")

	// ErrAlreadyReturned is returned when an idle object is returned again.
	ErrAlreadyReturned = errors.New("object was already returned to the pool")

	// ErrNilItem is returned when a nil object is returned to a pool.
	ErrNilItem = errors.New("nil objects cannot be returned to a pool")

	// ErrInvalidMaxSize is returned when a policy's MaxSize is not positive.
	ErrInvalidMaxSize = errors.New("pool max size must be greater than zero")

	// ErrMissingFactory is returned when a policy has no Create function.
	ErrMissingFactory = errors.New("pool policy has no create function")
)

// Error wraps pool errors with the pool name and the failing operation.
type Error struct {
	Pool string // Pool name
	Op   string // Operation that failed ("new", "return")
	Err  error  // Underlying error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("pool %s %s: %v", e.Pool, e.Op, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Err
}

func newError(pool, op string, err error) *Error {
	return &Error{Pool: pool, Op: op, Err: err}
}
