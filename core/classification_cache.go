package core

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

const classificationCacheKey = "nav:classifications"

// NewRedisClient returns a configured go-redis client from URL (e.g., redis://localhost:6379/0).
func NewRedisClient(redisURL string) (*redis.Client, error) {
	if redisURL == "" {
		return nil, errors.New("empty redis url")
	}
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return client, nil
}

// ClassificationCache is a read-through cache over the classification list,
// which every rendered page needs for its navigation. Redis outages degrade
// to direct database reads.
type ClassificationCache struct {
	client    *redis.Client
	inventory InventoryRepository
	ttl       time.Duration
}

// NewClassificationCache wraps the inventory repository with a redis cache.
// A nil client disables caching entirely.
func NewClassificationCache(client *redis.Client, inventory InventoryRepository, ttl time.Duration) *ClassificationCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &ClassificationCache{client: client, inventory: inventory, ttl: ttl}
}

// Classifications returns the cached list, refilling from the database on a
// miss.
func (c *ClassificationCache) Classifications(ctx context.Context) ([]ClassificationRecord, error) {
	if c.client != nil {
		raw, err := c.client.Get(ctx, classificationCacheKey).Result()
		if err == nil {
			var items []ClassificationRecord
			if jsonErr := json.Unmarshal([]byte(raw), &items); jsonErr == nil {
				return items, nil
			}
			// Unreadable payload; fall through and rebuild.
		} else if !errors.Is(err, redis.Nil) {
			log.Printf("warn: classification cache read failed: %v", err)
		}
	}

	items, err := c.inventory.Classifications(ctx)
	if err != nil {
		return nil, err
	}

	if c.client != nil {
		if raw, jsonErr := json.Marshal(items); jsonErr == nil {
			if err := c.client.Set(ctx, classificationCacheKey, raw, c.ttl).Err(); err != nil {
				log.Printf("warn: classification cache write failed: %v", err)
			}
		}
	}
	return items, nil
}

// Invalidate drops the cached list after an inventory write.
func (c *ClassificationCache) Invalidate(ctx context.Context) {
	if c.client == nil {
		return
	}
	if err := c.client.Del(ctx, classificationCacheKey).Err(); err != nil {
		log.Printf("warn: classification cache invalidation failed: %v", err)
	}
}
