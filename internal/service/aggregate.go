package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/TubaAnsari/vendor-management-portal/internal/domain"
	"github.com/TubaAnsari/vendor-management-portal/internal/repository"
)

// AggregateUpdater keeps a vendor's cached rating fields consistent with its
// reviews. Every call re-derives the aggregate from a full scan, so a failed
// or missed update is corrected by the next one.
type AggregateUpdater struct {
	vendors repository.VendorRepository
	reviews repository.ReviewRepository
	metrics *Metrics
	logger  *slog.Logger
}

// NewAggregateUpdater creates a new aggregate updater. metrics may be nil.
func NewAggregateUpdater(
	vendors repository.VendorRepository,
	reviews repository.ReviewRepository,
	metrics *Metrics,
	logger *slog.Logger,
) *AggregateUpdater {
	return &AggregateUpdater{
		vendors: vendors,
		reviews: reviews,
		metrics: metrics,
		logger:  logger,
	}
}

// Recompute derives average_rating and review_count from the vendor's
// current reviews and writes both in a single update.
func (u *AggregateUpdater) Recompute(ctx context.Context, vendorID int64) (agg domain.Aggregate, err error) {
	defer func() { u.metrics.recompute(err) }()

	stats, err := u.reviews.Stats(ctx, vendorID)
	if err != nil {
		return domain.Aggregate{}, fmt.Errorf("read review stats: %w", err)
	}

	agg = domain.ComputeAggregate(stats.Count, stats.Sum)

	if err := u.vendors.UpdateAggregate(ctx, vendorID, agg); err != nil {
		return domain.Aggregate{}, fmt.Errorf("write vendor aggregate: %w", err)
	}

	u.logger.DebugContext(ctx, "vendor aggregate recomputed",
		slog.Int64("vendor_id", vendorID),
		slog.String("average_rating", agg.AverageRating.StringFixed(2)),
		slog.Int("review_count", agg.ReviewCount),
	)

	return agg, nil
}
