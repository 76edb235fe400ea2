// Copyright (c) 2026 TrendHive. All rights reserved.

package commerce

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/trendhive/trendhive/internal/platform/constants"
)

// ProductCacheTTL bounds the staleness of catalog reads served from cache.
const ProductCacheTTL = 60 * time.Second

// RedisProductCache implements [ProductCache] with JSON values in Redis.
type RedisProductCache struct {
	client *redis.Client
}

// NewProductCache creates a new Redis-backed [ProductCache].
func NewProductCache(client *redis.Client) *RedisProductCache {
	return &RedisProductCache{client: client}
}

/*
Get returns the cached product, or (nil, nil) on a miss.

Description: A corrupt cache entry is treated as a miss rather than an
error; the caller falls through to storage.

Parameters:
  - ctx: context.Context
  - productID: string

Returns:
  - *Product: Cached entry, or nil on miss
  - error: Connectivity errors only
*/
func (cache *RedisProductCache) Get(ctx context.Context, productID string) (*Product, error) {
	payload, err := cache.client.Get(ctx, constants.RedisPrefixProduct+productID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis_product_cache_get_failed: %w", err)
	}

	product := &Product{}
	if err := json.Unmarshal(payload, product); err != nil {
		return nil, nil
	}

	return product, nil
}

/*
Set stores the product for the given TTL.

Parameters:
  - ctx: context.Context
  - product: *Product
  - ttl: time.Duration

Returns:
  - error: Serialization or connectivity errors
*/
func (cache *RedisProductCache) Set(ctx context.Context, product *Product, ttl time.Duration) error {
	payload, err := json.Marshal(product)
	if err != nil {
		return fmt.Errorf("redis_product_cache_marshal_failed: %w", err)
	}

	if err := cache.client.Set(ctx, constants.RedisPrefixProduct+product.ID, payload, ttl).Err(); err != nil {
		return fmt.Errorf("redis_product_cache_set_failed: %w", err)
	}

	return nil
}

/*
Invalidate drops the cached entry after a catalog mutation.

Parameters:
  - ctx: context.Context
  - productID: string

Returns:
  - error: Deletion failures
*/
func (cache *RedisProductCache) Invalidate(ctx context.Context, productID string) error {
	if err := cache.client.Del(ctx, constants.RedisPrefixProduct+productID).Err(); err != nil {
		return fmt.Errorf("redis_product_cache_invalidate_failed: %w", err)
	}
	return nil
}
