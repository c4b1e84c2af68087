// Package cache holds the Redis-backed read caches. Only derived, re-computable
// data lives here; the repositories stay the source of truth.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/example/ec-commerce/internal/domain/product"
)

const (
	topSellingKey = "products:top-selling"
	topSellingTTL = 30 * time.Second
)

func NewClient(addr string) *redis.Client {
	return redis.NewClient(&redis.Options{Addr: addr})
}

// TopSellingCache keeps the best-seller listing warm for a short TTL.
type TopSellingCache struct {
	client *redis.Client
}

func NewTopSellingCache(client *redis.Client) *TopSellingCache {
	return &TopSellingCache{client: client}
}

// GetTopSelling returns the cached listing, or (nil, nil) on a miss.
func (c *TopSellingCache) GetTopSelling(ctx context.Context) ([]*product.Product, error) {
	data, err := c.client.Get(ctx, topSellingKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var products []*product.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *TopSellingCache) SetTopSelling(ctx context.Context, products []*product.Product) error {
	data, err := json.Marshal(products)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, topSellingKey, data, topSellingTTL).Err()
}
