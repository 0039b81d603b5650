package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/TubaAnsari/vendor-management-portal/internal/domain"
	"github.com/TubaAnsari/vendor-management-portal/internal/repository"
)

const (
	keyPrefix     = "vendors:list:"
	generationKey = keyPrefix + "generation"
)

// ListingCache implements repository.ListingCache using Redis. Entries are
// keyed by generation so that Invalidate is a single INCR; entries of old
// generations simply expire.
type ListingCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewListingCache creates a new Redis-backed listing cache.
func NewListingCache(client *redis.Client, ttl time.Duration) *ListingCache {
	return &ListingCache{
		client: client,
		ttl:    ttl,
	}
}

// Get looks up the listing for q under the current generation.
func (c *ListingCache) Get(ctx context.Context, q domain.VendorQuery) (repository.ListingLookup, error) {
	gen, err := c.generation(ctx)
	if err != nil {
		return repository.ListingLookup{}, err
	}
	lookup := repository.ListingLookup{Generation: gen}

	data, err := c.client.Get(ctx, entryKey(gen, q)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return lookup, nil
		}
		return lookup, fmt.Errorf("redis get listing: %w", err)
	}

	if err := json.Unmarshal(data, &lookup.Vendors); err != nil {
		return lookup, fmt.Errorf("unmarshal listing: %w", err)
	}
	lookup.Hit = true

	return lookup, nil
}

// Set stores a listing under the generation observed by the matching Get.
func (c *ListingCache) Set(ctx context.Context, q domain.VendorQuery, generation int64, vendors []domain.Vendor) error {
	data, err := json.Marshal(vendors)
	if err != nil {
		return fmt.Errorf("marshal listing: %w", err)
	}

	if err := c.client.Set(ctx, entryKey(generation, q), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set listing: %w", err)
	}

	return nil
}

// Invalidate advances the generation, orphaning every cached listing.
func (c *ListingCache) Invalidate(ctx context.Context) error {
	if err := c.client.Incr(ctx, generationKey).Err(); err != nil {
		return fmt.Errorf("redis incr listing generation: %w", err)
	}
	return nil
}

func (c *ListingCache) generation(ctx context.Context) (int64, error) {
	gen, err := c.client.Get(ctx, generationKey).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("redis get listing generation: %w", err)
	}
	return gen, nil
}

func entryKey(generation int64, q domain.VendorQuery) string {
	return keyPrefix + strconv.FormatInt(generation, 10) + ":" + q.CacheKey()
}
