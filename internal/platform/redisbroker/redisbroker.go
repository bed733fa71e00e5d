// Package redisbroker implements the broker.Broker contract on top of
// Redis, using the primitives the service was designed around: GET/SET
// for job records, LPUSH plus BRPOP for the dispatch queue.
package redisbroker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/deckforge/deckforge/internal/broker"
)

// RedisBroker adapts a go-redis client to the broker.Broker contract.
type RedisBroker struct {
	client *redis.Client
}

// Config holds Redis connection settings.
type Config struct {
	Addr     string
	Password string
	DB       int
}

// New creates a RedisBroker for the given connection settings. The
// connection is lazy; call Ping to verify reachability.
func New(cfg Config) *RedisBroker {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	return &RedisBroker{client: client}
}

// NewWithClient wraps an existing client. Useful for tests against
// miniredis or a shared pool.
func NewWithClient(client *redis.Client) *RedisBroker {
	return &RedisBroker{client: client}
}

// Get returns the value stored at key, mapping redis.Nil to
// broker.ErrKeyNotFound.
func (b *RedisBroker) Get(ctx context.Context, key string) (string, error) {
	value, err := b.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", broker.ErrKeyNotFound
	}
	if err != nil {
		return "", fmt.Errorf("redis GET %s: %w", key, err)
	}
	return value, nil
}

// Set stores value at key with no expiry; job records live until
// explicitly deleted.
func (b *RedisBroker) Set(ctx context.Context, key, value string) error {
	if err := b.client.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("redis SET %s: %w", key, err)
	}
	return nil
}

// Delete removes key.
func (b *RedisBroker) Delete(ctx context.Context, key string) error {
	if err := b.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis DEL %s: %w", key, err)
	}
	return nil
}

// Push appends value to the named queue. LPUSH pairs with BRPOP to give
// FIFO delivery.
func (b *RedisBroker) Push(ctx context.Context, queue, value string) error {
	if err := b.client.LPush(ctx, queue, value).Err(); err != nil {
		return fmt.Errorf("redis LPUSH %s: %w", queue, err)
	}
	return nil
}

// BlockingPop removes the oldest value from the named queue, waiting up
// to timeout. BRPOP's atomicity guarantees each value reaches exactly
// one consumer.
func (b *RedisBroker) BlockingPop(ctx context.Context, queue string, timeout time.Duration) (string, error) {
	result, err := b.client.BRPop(ctx, timeout, queue).Result()
	if errors.Is(err, redis.Nil) {
		return "", broker.ErrPopTimeout
	}
	if err != nil {
		return "", fmt.Errorf("redis BRPOP %s: %w", queue, err)
	}
	// BRPop returns [queue, value].
	if len(result) != 2 {
		return "", fmt.Errorf("redis BRPOP %s: unexpected reply length %d", queue, len(result))
	}
	return result[1], nil
}

// Keys returns keys matching a glob-style pattern, scanning iteratively
// rather than blocking the server with KEYS.
func (b *RedisBroker) Keys(ctx context.Context, pattern string) ([]string, error) {
	var (
		keys   []string
		cursor uint64
	)
	for {
		batch, next, err := b.client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return nil, fmt.Errorf("redis SCAN %s: %w", pattern, err)
		}
		keys = append(keys, batch...)
		cursor = next
		if cursor == 0 {
			break
		}
	}
	return keys, nil
}

// Ping verifies the Redis server is reachable.
func (b *RedisBroker) Ping(ctx context.Context) error {
	if err := b.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis PING: %w", err)
	}
	return nil
}

// Close releases the underlying client's resources.
func (b *RedisBroker) Close() error {
	return b.client.Close()
}

// Ensure RedisBroker implements broker.Broker.
var _ broker.Broker = (*RedisBroker)(nil)
