package broker

import (
	"context"
	"path"
	"sync"
	"time"
)

// MemoryBroker is an in-process Broker backed by a map and per-queue
// channels. It provides the same atomicity guarantees as the Redis
// implementation: each pushed value is delivered to exactly one blocked
// popper. Intended for tests and single-process local runs.
type MemoryBroker struct {
	mu     sync.RWMutex
	values map[string]string
	queues map[string]chan string
}

// queueBuffer bounds each in-memory queue. Pushes beyond this block
// until a consumer drains, mirroring backpressure from a real broker.
const queueBuffer = 1024

// NewMemoryBroker creates an empty in-memory broker.
func NewMemoryBroker() *MemoryBroker {
	return &MemoryBroker{
		values: make(map[string]string),
		queues: make(map[string]chan string),
	}
}

// Get returns the value stored at key, or ErrKeyNotFound.
func (b *MemoryBroker) Get(ctx context.Context, key string) (string, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	value, ok := b.values[key]
	if !ok {
		return "", ErrKeyNotFound
	}
	return value, nil
}

// Set stores value at key.
func (b *MemoryBroker) Set(ctx context.Context, key, value string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.values[key] = value
	return nil
}

// Delete removes key.
func (b *MemoryBroker) Delete(ctx context.Context, key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.values, key)
	return nil
}

// Push appends value to the named queue.
func (b *MemoryBroker) Push(ctx context.Context, queue, value string) error {
	ch := b.queue(queue)
	select {
	case ch <- value:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// BlockingPop removes and returns the oldest value from the named queue.
// Channel receive gives the exactly-one-consumer guarantee for free.
func (b *MemoryBroker) BlockingPop(ctx context.Context, queue string, timeout time.Duration) (string, error) {
	ch := b.queue(queue)

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case value := <-ch:
		return value, nil
	case <-timer.C:
		return "", ErrPopTimeout
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// Keys returns the stored keys matching a glob-style pattern.
func (b *MemoryBroker) Keys(ctx context.Context, pattern string) ([]string, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	var keys []string
	for key := range b.values {
		ok, err := path.Match(pattern, key)
		if err != nil {
			return nil, err
		}
		if ok {
			keys = append(keys, key)
		}
	}
	return keys, nil
}

// Ping always succeeds for the in-memory broker.
func (b *MemoryBroker) Ping(ctx context.Context) error {
	return nil
}

// queue returns the channel for the named queue, creating it on first use.
func (b *MemoryBroker) queue(name string) chan string {
	b.mu.Lock()
	defer b.mu.Unlock()
	ch, ok := b.queues[name]
	if !ok {
		ch = make(chan string, queueBuffer)
		b.queues[name] = ch
	}
	return ch
}

// Ensure MemoryBroker implements Broker.
var _ Broker = (*MemoryBroker)(nil)
