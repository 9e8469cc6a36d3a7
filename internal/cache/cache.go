// Package cache keeps raw remote payloads in redis so repeated ingestion runs
// don't refetch detail documents that haven't expired.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/FlagBrew/local-dex/internal/models"
	"github.com/redis/go-redis/v9"
)

var ErrMiss = errors.New("cache miss")

const keyPrefix = "localdex:payload:"

// Redis is a payload cache keyed by request URL.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedis(client *redis.Client, ttl time.Duration) *Redis {
	if client == nil {
		panic("redis client cannot be nil")
	}
	return &Redis{client: client, ttl: ttl}
}

// Open connects to the redis instance in cfg and checks it is reachable.
func Open(ctx context.Context, cfg models.CacheConfig) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis at %s: %w", cfg.RedisAddr, err)
	}
	return NewRedis(client, cfg.Expiration()), nil
}

func key(url string) string {
	return keyPrefix + url
}

// Get returns the cached body for url, or ErrMiss.
func (r *Redis) Get(ctx context.Context, url string) ([]byte, error) {
	data, err := r.client.Get(ctx, key(url)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			Misses.Inc()
			return nil, ErrMiss
		}
		Errors.WithLabelValues("get").Inc()
		return nil, fmt.Errorf("redis get: %w", err)
	}

	Hits.Inc()
	return data, nil
}

func (r *Redis) Set(ctx context.Context, url string, body []byte) error {
	if err := r.client.Set(ctx, key(url), body, r.ttl).Err(); err != nil {
		Errors.WithLabelValues("set").Inc()
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (r *Redis) Delete(ctx context.Context, url string) error {
	if err := r.client.Del(ctx, key(url)).Err(); err != nil {
		Errors.WithLabelValues("delete").Inc()
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

func (r *Redis) Close() error {
	return r.client.Close()
}
