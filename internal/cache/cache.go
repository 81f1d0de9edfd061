package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"dearmind-backend/internal/metrics"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog/log"
)

const keyPrefix = "dearmind:"

type Cache interface {
	// Get decodes the cached value into dst and reports whether it was found.
	Get(ctx context.Context, key string, dst interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

type Noop struct{}

var _ Cache = Noop{}

func (Noop) Get(context.Context, string, interface{}) (bool, error) { return false, nil }

func (Noop) Set(context.Context, string, interface{}, time.Duration) error { return nil }

type RedisCache struct {
	rdb *redis.Client
}

var _ Cache = RedisCache{}

func NewRedis(rdb *redis.Client) RedisCache {
	return RedisCache{rdb: rdb}
}

// Connect opens a redis client and pings it. An empty addr yields a Noop cache.
func Connect(ctx context.Context, addr, password string, db int) (Cache, func() error, error) {
	if addr == "" {
		return Noop{}, func() error { return nil }, nil
	}

	rdb := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, nil, fmt.Errorf("connect redis: %w, addr: %s", err, addr)
	}
	return NewRedis(rdb), rdb.Close, nil
}

func (c RedisCache) Get(ctx context.Context, key string, dst interface{}) (bool, error) {
	val, err := c.rdb.Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		metrics.RecordCacheLookup(false)
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("cache get: %w, key: %s", err, key)
	}
	if err := json.Unmarshal(val, dst); err != nil {
		return false, fmt.Errorf("cache decode: %w, key: %s", err, key)
	}
	metrics.RecordCacheLookup(true)
	return true, nil
}

func (c RedisCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache encode: %w, key: %s", err, key)
	}
	if err := c.rdb.Set(ctx, keyPrefix+key, data, ttl).Err(); err != nil {
		return fmt.Errorf("cache set: %w, key: %s", err, key)
	}
	return nil
}

// Fetch serves key from c, falling back to load on a miss and storing the result.
// Cache failures are logged and never fail the call.
func Fetch[T any](ctx context.Context, c Cache, key string, ttl time.Duration, load func(context.Context) (T, error)) (T, error) {
	var cached T
	found, err := c.Get(ctx, key, &cached)
	if err != nil {
		log.Warn().Err(err).Msgf("cache read failed, key: %s", key)
	}
	if found {
		return cached, nil
	}

	value, err := load(ctx)
	if err != nil {
		return value, err
	}

	if err := c.Set(ctx, key, value, ttl); err != nil {
		log.Warn().Err(err).Msgf("cache write failed, key: %s", key)
	}
	return value, nil
}
