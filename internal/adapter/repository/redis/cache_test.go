package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/iho/goextrato/internal/domain"
)

func TestCacheSetAndGet(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	cache := NewCache(client)
	ctx := context.Background()

	if err := cache.Set(ctx, "foo", "bar", time.Minute); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	val, err := cache.Get(ctx, "foo")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}

	if val != "bar" {
		t.Fatalf("expected bar, got %s", val)
	}
}

func TestCacheExpires(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	cache := NewCache(client)
	ctx := context.Background()

	if err := cache.Set(ctx, "foo", "bar", time.Minute); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	mr.FastForward(2 * time.Minute)

	if _, err := cache.Get(ctx, "foo"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after expiry, got %v", err)
	}
}

func TestCacheDelete(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	cache := NewCache(client)
	ctx := context.Background()

	if err := cache.Set(ctx, "foo", "bar", time.Minute); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	if err := cache.Delete(ctx, "foo"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	if _, err := cache.Get(ctx, "foo"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound getting deleted key, got %v", err)
	}
}
