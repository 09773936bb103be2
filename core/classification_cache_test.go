package core

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func cacheWithMiniredis(t *testing.T) (*ClassificationCache, *fakeInventoryRepo, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	inventory := newFakeInventoryRepo("Sport", "SUV", "Truck")
	return NewClassificationCache(client, inventory, time.Minute), inventory, mr
}

func TestClassificationCacheReadThrough(t *testing.T) {
	ctx := context.Background()
	cache, inventory, _ := cacheWithMiniredis(t)

	first, err := cache.Classifications(ctx)
	if err != nil {
		t.Fatalf("Classifications error: %v", err)
	}
	if len(first) != 3 || inventory.classificationCalls != 1 {
		t.Fatalf("expected one database read for 3 rows, got %d reads", inventory.classificationCalls)
	}

	// Second read is served from redis.
	second, err := cache.Classifications(ctx)
	if err != nil {
		t.Fatalf("Classifications error: %v", err)
	}
	if inventory.classificationCalls != 1 {
		t.Fatalf("cached read hit the database, %d calls", inventory.classificationCalls)
	}
	if len(second) != len(first) || second[0].Name != first[0].Name {
		t.Fatalf("cached list differs: %v vs %v", second, first)
	}
}

func TestClassificationCacheInvalidate(t *testing.T) {
	ctx := context.Background()
	cache, inventory, _ := cacheWithMiniredis(t)

	if _, err := cache.Classifications(ctx); err != nil {
		t.Fatalf("Classifications error: %v", err)
	}
	cache.Invalidate(ctx)

	if _, err := cache.Classifications(ctx); err != nil {
		t.Fatalf("Classifications error: %v", err)
	}
	if inventory.classificationCalls != 2 {
		t.Fatalf("invalidation should force a database read, got %d calls", inventory.classificationCalls)
	}
}

func TestClassificationCacheExpiry(t *testing.T) {
	ctx := context.Background()
	cache, inventory, mr := cacheWithMiniredis(t)

	if _, err := cache.Classifications(ctx); err != nil {
		t.Fatalf("Classifications error: %v", err)
	}
	mr.FastForward(2 * time.Minute)

	if _, err := cache.Classifications(ctx); err != nil {
		t.Fatalf("Classifications error: %v", err)
	}
	if inventory.classificationCalls != 2 {
		t.Fatalf("expired entry should force a database read, got %d calls", inventory.classificationCalls)
	}
}

func TestClassificationCacheSurvivesBadPayload(t *testing.T) {
	ctx := context.Background()
	cache, inventory, mr := cacheWithMiniredis(t)

	mr.Set(classificationCacheKey, "{not json")

	items, err := cache.Classifications(ctx)
	if err != nil {
		t.Fatalf("Classifications error: %v", err)
	}
	if len(items) != 3 || inventory.classificationCalls != 1 {
		t.Fatalf("unreadable payload should fall back to the database")
	}
}

func TestClassificationCacheNilClient(t *testing.T) {
	ctx := context.Background()
	inventory := newFakeInventoryRepo("Sport")
	cache := NewClassificationCache(nil, inventory, time.Minute)

	for i := 0; i < 2; i++ {
		if _, err := cache.Classifications(ctx); err != nil {
			t.Fatalf("Classifications error: %v", err)
		}
	}
	cache.Invalidate(ctx)
	if inventory.classificationCalls != 2 {
		t.Fatalf("nil client should always read the database, got %d calls", inventory.classificationCalls)
	}
}
