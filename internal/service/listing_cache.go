package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/TubaAnsari/vendor-management-portal/internal/domain"
	"github.com/TubaAnsari/vendor-management-portal/internal/repository"
	apperrors "github.com/TubaAnsari/vendor-management-portal/pkg/errors"
)

// invalidateAttempts bounds the tries of a single listing invalidation.
const invalidateAttempts = 3

// invalidateListings drops cached vendor listings after a write that changed
// vendor rows. A nil cache is a no-op. When every attempt fails the write has
// already committed, so the caller surfaces a storage error.
func invalidateListings(ctx context.Context, cache repository.ListingCache, logger *slog.Logger) error {
	if cache == nil {
		return nil
	}

	var err error
	for attempt := 1; attempt <= invalidateAttempts; attempt++ {
		if err = cache.Invalidate(ctx); err == nil {
			return nil
		}
		logger.WarnContext(ctx, "vendor listing cache invalidation failed",
			slog.Int("attempt", attempt),
			slog.String("error", err.Error()),
		)
		if ctx.Err() != nil {
			break
		}
	}

	logger.ErrorContext(ctx, "failed to invalidate vendor listing cache",
		slog.String("error", err.Error()),
	)
	return apperrors.Storage("invalidate vendor listings", err)
}

// GuardedListingCache wraps a ListingCache so that a failed invalidation
// turns cached reads off until a later invalidation succeeds. Reads in that
// window go to storage, so no listing outlives the write that changed it.
type GuardedListingCache struct {
	cache repository.ListingCache

	// failed counts failed invalidations; cleared is the failed count
	// covered by the last successful invalidation.
	failed  atomic.Uint64
	cleared atomic.Uint64
}

// NewGuardedListingCache wraps cache.
func NewGuardedListingCache(cache repository.ListingCache) *GuardedListingCache {
	return &GuardedListingCache{cache: cache}
}

// Get retries a pending invalidation before reading. While it keeps failing
// the lookup returns an error and the caller reads storage.
func (g *GuardedListingCache) Get(ctx context.Context, q domain.VendorQuery) (repository.ListingLookup, error) {
	if failed := g.failed.Load(); failed != g.cleared.Load() {
		if err := g.cache.Invalidate(ctx); err != nil {
			return repository.ListingLookup{}, fmt.Errorf("listing cache awaiting invalidation: %w", err)
		}
		for {
			cleared := g.cleared.Load()
			if cleared >= failed || g.cleared.CompareAndSwap(cleared, failed) {
				break
			}
		}
	}
	return g.cache.Get(ctx, q)
}

// Set is skipped while an invalidation is pending.
func (g *GuardedListingCache) Set(ctx context.Context, q domain.VendorQuery, generation int64, vendors []domain.Vendor) error {
	if g.failed.Load() != g.cleared.Load() {
		return nil
	}
	return g.cache.Set(ctx, q, generation, vendors)
}

// Invalidate forwards to the wrapped cache and records a failure.
func (g *GuardedListingCache) Invalidate(ctx context.Context) error {
	if err := g.cache.Invalidate(ctx); err != nil {
		g.failed.Add(1)
		return err
	}
	return nil
}
