package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/TubaAnsari/vendor-management-portal/internal/domain"
	"github.com/TubaAnsari/vendor-management-portal/internal/event"
	"github.com/TubaAnsari/vendor-management-portal/internal/repository"
	apperrors "github.com/TubaAnsari/vendor-management-portal/pkg/errors"
	"github.com/TubaAnsari/vendor-management-portal/pkg/tracing"
)

const tracerName = "github.com/TubaAnsari/vendor-management-portal/internal/service"

// SubmitReviewInput holds the parameters for submitting a review.
type SubmitReviewInput struct {
	VendorID    int64
	ClientName  string
	ProjectName *string
	Rating      int
	Comments    string
}

// ReviewService implements review submission and retrieval. Submitting a
// review stores it and then synchronously recomputes the vendor aggregate.
type ReviewService struct {
	reviews  repository.ReviewRepository
	vendors  repository.VendorRepository
	updater  *AggregateUpdater
	cache    repository.ListingCache
	producer *event.Producer
	metrics  *Metrics
	logger   *slog.Logger
	now      func() time.Time
}

// NewReviewService creates a new review service. cache and metrics may be nil.
func NewReviewService(
	reviews repository.ReviewRepository,
	vendors repository.VendorRepository,
	updater *AggregateUpdater,
	cache repository.ListingCache,
	producer *event.Producer,
	metrics *Metrics,
	logger *slog.Logger,
) *ReviewService {
	return &ReviewService{
		reviews:  reviews,
		vendors:  vendors,
		updater:  updater,
		cache:    cache,
		producer: producer,
		metrics:  metrics,
		logger:   logger,
		now:      time.Now,
	}
}

// SubmitReview stores a review and recomputes the vendor's aggregate before
// returning. If the recompute fails the review stays stored and the error is
// returned; the next submission for the vendor repairs the aggregate. A
// listing cache that cannot be invalidated is reported the same way.
func (s *ReviewService) SubmitReview(ctx context.Context, input SubmitReviewInput) (_ *domain.Review, err error) {
	ctx, span := tracing.Tracer(tracerName).Start(ctx, "ReviewService.SubmitReview")
	span.SetAttributes(attribute.Int64("vendor.id", input.VendorID))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	if err := validateReviewInput(input); err != nil {
		return nil, err
	}

	review := &domain.Review{
		VendorID:    input.VendorID,
		ClientName:  strings.TrimSpace(input.ClientName),
		ProjectName: input.ProjectName,
		Rating:      input.Rating,
		Comments:    strings.TrimSpace(input.Comments),
		CreatedAt:   s.now().UTC(),
	}

	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, fmt.Errorf("create review: %w", err)
	}
	s.metrics.reviewSubmitted(review.Rating)

	s.logger.InfoContext(ctx, "review created",
		slog.Int64("review_id", review.ID),
		slog.Int64("vendor_id", review.VendorID),
		slog.Int("rating", review.Rating),
	)

	if err := s.producer.PublishReviewSubmitted(ctx, review); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish review.submitted event",
			slog.Int64("review_id", review.ID),
			slog.String("error", err.Error()),
		)
	}

	agg, err := s.updater.Recompute(ctx, review.VendorID)
	if err != nil {
		s.logger.ErrorContext(ctx, "vendor aggregate recompute failed after review insert",
			slog.Int64("review_id", review.ID),
			slog.Int64("vendor_id", review.VendorID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("recompute vendor aggregate: %w", err)
	}

	if err := invalidateListings(ctx, s.cache, s.logger); err != nil {
		return nil, err
	}

	if err := s.producer.PublishVendorRatingUpdated(ctx, review.VendorID, agg); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish vendor.rating_updated event",
			slog.Int64("vendor_id", review.VendorID),
			slog.String("error", err.Error()),
		)
	}

	return review, nil
}

// GetReviews returns a vendor's reviews, newest first. An unknown vendor is
// reported as not found rather than as an empty list.
func (s *ReviewService) GetReviews(ctx context.Context, vendorID int64) ([]domain.Review, error) {
	if _, err := s.vendors.GetByID(ctx, vendorID); err != nil {
		return nil, fmt.Errorf("get vendor: %w", err)
	}

	reviews, err := s.reviews.ListByVendorID(ctx, vendorID)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}

	return reviews, nil
}

func validateReviewInput(input SubmitReviewInput) error {
	fields := make(map[string]string)

	if !domain.IsValidRating(input.Rating) {
		fields["rating"] = fmt.Sprintf("must be between %d and %d", domain.MinReviewRating, domain.MaxReviewRating)
	}
	if strings.TrimSpace(input.ClientName) == "" {
		fields["client_name"] = "is required"
	}
	if strings.TrimSpace(input.Comments) == "" {
		fields["comments"] = "is required"
	}

	if len(fields) > 0 {
		return apperrors.Validation("review is invalid", fields)
	}
	return nil
}
