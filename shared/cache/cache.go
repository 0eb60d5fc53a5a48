package cache

//go:generate go run go.uber.org/mock/mockgen -source=./cache.go -destination=./mocks/cache_mock.go -package=mocks

import (
	"context"
	"courtbook/infras/otel"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Nil is wrapped by the error Get returns for a missing key.
const Nil = redis.Nil

const (
	scopeName     = "cache"
	keyAttribute  = "cache.key"
	hitAttribute  = "cache.hit"
	scanBatchSize = 100
)

type RedisCache interface {
	Save(ctx context.Context, key string, value any, duration int) error
	Get(ctx context.Context, key string, value any) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context, prefix string) error
}

type redisCache struct {
	client *redis.Client
	otel   otel.Otel
}

func NewRedisCache(client *redis.Client, otl otel.Otel) RedisCache {
	return &redisCache{client: client, otel: otl}
}

// traced runs op inside a cache span keyed by key. Failures are logged and
// recorded on the span; a miss is neither.
func (c *redisCache) traced(ctx context.Context, op, key string, run func(context.Context, otel.Scope) error) error {
	ctx, scope := c.otel.NewScope(ctx, scopeName, scopeName+"."+op)
	defer scope.End()

	scope.SetAttribute(keyAttribute, key)

	err := run(ctx, scope)
	if err != nil && !errors.Is(err, Nil) {
		log.Error().Err(err).Str("key", key).Str("op", op).Msg("cache operation failed")
		scope.TraceError(err)
	}

	return err
}

// Save stores value for duration seconds. Strings are stored as-is, anything
// else as JSON.
func (c *redisCache) Save(ctx context.Context, key string, value any, duration int) error {
	return c.traced(ctx, "Save", key, func(ctx context.Context, _ otel.Scope) error {
		payload, err := encode(value)
		if err != nil {
			return fmt.Errorf("failed to marshal cache value: %w", err)
		}

		if err = c.client.Set(ctx, key, payload, time.Duration(duration)*time.Second).Err(); err != nil {
			return fmt.Errorf("failed to set cache value: %w", err)
		}

		return nil
	})
}

// Get decodes the value stored under key into value. A missing key yields an
// error wrapping Nil.
func (c *redisCache) Get(ctx context.Context, key string, value any) error {
	return c.traced(ctx, "Get", key, func(ctx context.Context, scope otel.Scope) error {
		raw, err := c.client.Get(ctx, key).Result()
		scope.SetAttribute(hitAttribute, err == nil)

		switch {
		case errors.Is(err, Nil):
			return fmt.Errorf("cache miss: %w", err)
		case err != nil:
			return fmt.Errorf("failed to get cache value: %w", err)
		}

		if s, ok := value.(*string); ok {
			*s = raw

			return nil
		}

		if err = json.Unmarshal([]byte(raw), value); err != nil {
			return fmt.Errorf("failed to unmarshal cache value: %w", err)
		}

		return nil
	})
}

func (c *redisCache) Delete(ctx context.Context, key string) error {
	return c.traced(ctx, "Delete", key, func(ctx context.Context, _ otel.Scope) error {
		if err := c.client.Del(ctx, key).Err(); err != nil {
			return fmt.Errorf("failed to delete cache value: %w", err)
		}

		return nil
	})
}

// Clear deletes every key matching the SCAN pattern prefix.
func (c *redisCache) Clear(ctx context.Context, prefix string) error {
	return c.traced(ctx, "Clear", prefix, func(ctx context.Context, _ otel.Scope) error {
		iter := c.client.Scan(ctx, 0, prefix, scanBatchSize).Iterator()

		for iter.Next(ctx) {
			if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
				return fmt.Errorf("failed to delete cache value %s: %w", iter.Val(), err)
			}
		}

		if err := iter.Err(); err != nil {
			return fmt.Errorf("failed to scan cache keys: %w", err)
		}

		return nil
	})
}

func encode(value any) ([]byte, error) {
	if s, ok := value.(string); ok {
		return []byte(s), nil
	}

	return json.Marshal(value)
}
