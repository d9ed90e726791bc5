package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cashbookhq/cashbook/internal/usecase"
)

func TestCacheSetAndGet(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	if err := cache.Set(ctx, "summary:owner-1", []byte(`{"cash_in":"100"}`), time.Minute); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	val, err := cache.Get(ctx, "summary:owner-1")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}

	if string(val) != `{"cash_in":"100"}` {
		t.Fatalf("unexpected value %q", val)
	}
}

func TestCacheGetMiss(t *testing.T) {
	cache, _ := newTestCache(t)

	if _, err := cache.Get(context.Background(), "absent"); !errors.Is(err, usecase.ErrCacheMiss) {
		t.Fatalf("expected ErrCacheMiss, got %v", err)
	}
}

func TestCacheIncrement(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	n, err := cache.Increment(ctx, "summary:gen:owner-1")
	if err != nil {
		t.Fatalf("increment failed: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected counter to start at 1, got %d", n)
	}

	n, err = cache.Increment(ctx, "summary:gen:owner-1")
	if err != nil {
		t.Fatalf("increment failed: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2, got %d", n)
	}

	// The counter reads back through Get as its decimal form.
	val, err := cache.Get(ctx, "summary:gen:owner-1")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if string(val) != "2" {
		t.Fatalf("expected \"2\", got %q", val)
	}
}

func TestCacheDelete(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	if err := cache.Set(ctx, "key", []byte("value"), time.Minute); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	if err := cache.Delete(ctx, "key"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	if _, err := cache.Get(ctx, "key"); !errors.Is(err, usecase.ErrCacheMiss) {
		t.Fatalf("expected ErrCacheMiss after delete, got %v", err)
	}
}

func TestCacheTTLExpiry(t *testing.T) {
	cache, mr := newTestCache(t)
	ctx := context.Background()

	if err := cache.Set(ctx, "key", []byte("value"), time.Minute); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	mr.FastForward(2 * time.Minute)

	if _, err := cache.Get(ctx, "key"); !errors.Is(err, usecase.ErrCacheMiss) {
		t.Fatalf("expected ErrCacheMiss after expiry, got %v", err)
	}
}
