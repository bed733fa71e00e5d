// Package broker defines the coordination-store contract the service
// depends on: key-value storage for job records plus a blocking FIFO
// queue for dispatch. The production implementation is Redis
// (internal/platform/redisbroker); an in-memory implementation backs
// tests and single-process runs.
package broker

import (
	"context"
	"errors"
	"time"
)

// Common errors returned by Broker implementations.
var (
	// ErrKeyNotFound indicates the requested key has no value.
	ErrKeyNotFound = errors.New("broker: key not found")

	// ErrPopTimeout indicates a blocking pop expired without a value.
	// Dispatch loops treat this as "no work yet", not as a failure.
	ErrPopTimeout = errors.New("broker: blocking pop timed out")
)

// Broker is the minimal queue/key-value interface the rest of the system
// depends on. All mutation of shared state goes through these atomic
// primitives; BlockingPop must deliver each pushed value to exactly one
// waiting caller.
// Version: 1.0
type Broker interface {
	// Get returns the value stored at key, or ErrKeyNotFound.
	Get(ctx context.Context, key string) (string, error)

	// Set stores value at key, overwriting any previous value.
	Set(ctx context.Context, key, value string) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Push appends value to the named queue (FIFO with BlockingPop).
	Push(ctx context.Context, queue, value string) error

	// BlockingPop removes and returns the oldest value from the named
	// queue, waiting up to timeout for one to arrive. Returns
	// ErrPopTimeout when the wait expires empty-handed.
	BlockingPop(ctx context.Context, queue string, timeout time.Duration) (string, error)

	// Keys returns the keys matching a glob-style pattern such as
	// "job:*". Used only by the listing and reaper paths; not a hot
	// path.
	Keys(ctx context.Context, pattern string) ([]string, error)

	// Ping verifies the store is reachable.
	Ping(ctx context.Context) error
}
