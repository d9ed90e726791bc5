package redis

import (
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	redislib "github.com/redis/go-redis/v9"
)

// Adapter tests run against an in-process miniredis, keyed off t.Cleanup so
// nothing leaks between tests. The miniredis handle is returned for clock
// control (TTL expiry via FastForward).

func newTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()

	client, mr := dialMiniredis(t)
	return NewCache(client), mr
}

func newTestIdempotencyStore(t *testing.T) (*IdempotencyStore, *miniredis.Miniredis) {
	t.Helper()

	client, mr := dialMiniredis(t)
	return NewIdempotencyStore(client), mr
}

func dialMiniredis(t *testing.T) (*redislib.Client, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redislib.NewClient(&redislib.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return client, mr
}
