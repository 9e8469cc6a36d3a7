package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

// setupTestRedis connects to a local redis, skipping when none is running.
func setupTestRedis(t *testing.T) *redis.Client {
	t.Helper()

	client := redis.NewClient(&redis.Options{
		Addr: "localhost:6379",
		DB:   15,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("redis not available for testing: %v", err)
	}
	if err := client.FlushDB(ctx).Err(); err != nil {
		t.Fatalf("failed to flush test db: %v", err)
	}

	t.Cleanup(func() {
		client.FlushDB(context.Background())
		client.Close()
	})
	return client
}

func TestNewRedisPanicsOnNil(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("NewRedis should panic with nil client")
		}
	}()
	NewRedis(nil, time.Minute)
}

func TestGetSetDelete(t *testing.T) {
	c := NewRedis(setupTestRedis(t), time.Minute)
	ctx := context.Background()
	url := "https://pokeapi.co/api/v2/pokemon/1/"

	if _, err := c.Get(ctx, url); !errors.Is(err, ErrMiss) {
		t.Fatalf("expected miss, got %v", err)
	}
	if err := c.Set(ctx, url, []byte(`{"id":1}`)); err != nil {
		t.Fatal(err)
	}

	body, err := c.Get(ctx, url)
	if err != nil {
		t.Fatal(err)
	}
	if string(body) != `{"id":1}` {
		t.Fatalf("unexpected body %q", body)
	}

	if err := c.Delete(ctx, url); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Get(ctx, url); !errors.Is(err, ErrMiss) {
		t.Fatalf("expected miss after delete, got %v", err)
	}
}

func TestEntriesExpire(t *testing.T) {
	client := setupTestRedis(t)
	c := NewRedis(client, time.Minute)
	ctx := context.Background()

	if err := c.Set(ctx, "u", []byte("x")); err != nil {
		t.Fatal(err)
	}
	ttl, err := client.TTL(ctx, key("u")).Result()
	if err != nil {
		t.Fatal(err)
	}
	if ttl <= 0 || ttl > time.Minute {
		t.Fatalf("unexpected ttl %v", ttl)
	}
}
