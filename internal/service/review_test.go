package service

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/TubaAnsari/vendor-management-portal/internal/domain"
	"github.com/TubaAnsari/vendor-management-portal/internal/event"
	apperrors "github.com/TubaAnsari/vendor-management-portal/pkg/errors"
)

type reviewFixture struct {
	reviews   *mockReviewRepository
	vendors   *mockVendorRepository
	cache     *mockListingCache
	publisher *mockPublisher
	metrics   *Metrics
	svc       *ReviewService
}

func newReviewFixture() *reviewFixture {
	f := &reviewFixture{
		reviews:   new(mockReviewRepository),
		vendors:   new(mockVendorRepository),
		cache:     new(mockListingCache),
		publisher: new(mockPublisher),
		metrics:   NewMetrics(prometheus.NewRegistry()),
	}
	logger := newTestLogger()
	producer := event.NewProducer(f.publisher, logger)
	updater := NewAggregateUpdater(f.vendors, f.reviews, f.metrics, logger)
	f.svc = NewReviewService(f.reviews, f.vendors, updater, f.cache, producer, f.metrics, logger)
	return f
}

func aggregateOf(avg string, count int) any {
	want := decimal.RequireFromString(avg)
	return mock.MatchedBy(func(a domain.Aggregate) bool {
		return a.AverageRating.Equal(want) && a.ReviewCount == count
	})
}

func validReviewInput() SubmitReviewInput {
	return SubmitReviewInput{
		VendorID:    7,
		ClientName:  "Asha Verma",
		ProjectName: strPtr("Store revamp"),
		Rating:      5,
		Comments:    "Delivered on time and on budget.",
	}
}

// --- SubmitReview Tests ---

func TestSubmitReview_Success(t *testing.T) {
	f := newReviewFixture()

	f.reviews.On("Create", mock.Anything, mock.AnythingOfType("*domain.Review")).
		Run(func(args mock.Arguments) { args.Get(1).(*domain.Review).ID = 31 }).
		Return(nil)
	f.reviews.On("Stats", mock.Anything, int64(7)).Return(domain.ReviewStats{Count: 2, Sum: 9}, nil)
	f.vendors.On("UpdateAggregate", mock.Anything, int64(7), aggregateOf("4.50", 2)).Return(nil)
	f.cache.On("Invalidate", mock.Anything).Return(nil)
	f.publisher.On("Publish", mock.Anything, event.TopicReviewSubmitted, mock.Anything).Return(nil)
	f.publisher.On("Publish", mock.Anything, event.TopicVendorRatingUpdated, mock.Anything).Return(nil)

	review, err := f.svc.SubmitReview(context.Background(), validReviewInput())

	require.NoError(t, err)
	assert.Equal(t, int64(31), review.ID)
	assert.Equal(t, int64(7), review.VendorID)
	assert.Equal(t, 5, review.Rating)
	assert.Equal(t, "Store revamp", *review.ProjectName)
	assert.False(t, review.CreatedAt.IsZero())
	assert.Equal(t, float64(1), testutil.ToFloat64(f.metrics.reviewsSubmitted.WithLabelValues("5")))
	assert.Equal(t, float64(1), testutil.ToFloat64(f.metrics.recomputes.WithLabelValues("success")))

	f.reviews.AssertExpectations(t)
	f.vendors.AssertExpectations(t)
	f.cache.AssertExpectations(t)
	f.publisher.AssertExpectations(t)
}

func TestSubmitReview_RatingOutOfRange(t *testing.T) {
	for _, rating := range []int{0, 6, -1} {
		f := newReviewFixture()
		input := validReviewInput()
		input.Rating = rating

		review, err := f.svc.SubmitReview(context.Background(), input)

		assert.Nil(t, review)
		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)

		var appErr *apperrors.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Contains(t, appErr.Fields, "rating")

		f.reviews.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	}
}

func TestSubmitReview_MissingClientNameAndComments(t *testing.T) {
	f := newReviewFixture()
	input := validReviewInput()
	input.ClientName = "  "
	input.Comments = ""

	_, err := f.svc.SubmitReview(context.Background(), input)

	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Contains(t, appErr.Fields, "client_name")
	assert.Contains(t, appErr.Fields, "comments")
	assert.NotContains(t, appErr.Fields, "rating")
}

func TestSubmitReview_UnknownVendor(t *testing.T) {
	f := newReviewFixture()

	f.reviews.On("Create", mock.Anything, mock.AnythingOfType("*domain.Review")).
		Return(apperrors.NotFound("vendor", int64(7)))

	review, err := f.svc.SubmitReview(context.Background(), validReviewInput())

	assert.Nil(t, review)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	f.reviews.AssertNotCalled(t, "Stats", mock.Anything, mock.Anything)
	f.vendors.AssertNotCalled(t, "UpdateAggregate", mock.Anything, mock.Anything, mock.Anything)
}

func TestSubmitReview_RecomputeFailureSurfacesStorageError(t *testing.T) {
	f := newReviewFixture()

	f.reviews.On("Create", mock.Anything, mock.AnythingOfType("*domain.Review")).Return(nil)
	f.reviews.On("Stats", mock.Anything, int64(7)).Return(domain.ReviewStats{Count: 1, Sum: 5}, nil)
	f.vendors.On("UpdateAggregate", mock.Anything, int64(7), mock.Anything).
		Return(apperrors.Storage("update vendor aggregate", errors.New("connection reset")))
	f.publisher.On("Publish", mock.Anything, event.TopicReviewSubmitted, mock.Anything).Return(nil)

	review, err := f.svc.SubmitReview(context.Background(), validReviewInput())

	assert.Nil(t, review)
	assert.ErrorIs(t, err, apperrors.ErrStorage)
	assert.Equal(t, float64(1), testutil.ToFloat64(f.metrics.recomputes.WithLabelValues("error")))
	f.cache.AssertNotCalled(t, "Invalidate", mock.Anything)
	f.publisher.AssertNotCalled(t, "Publish", mock.Anything, event.TopicVendorRatingUpdated, mock.Anything)
}

func TestSubmitReview_StatsFailure(t *testing.T) {
	f := newReviewFixture()

	f.reviews.On("Create", mock.Anything, mock.AnythingOfType("*domain.Review")).Return(nil)
	f.reviews.On("Stats", mock.Anything, int64(7)).
		Return(domain.ReviewStats{}, apperrors.Storage("review stats", errors.New("timeout")))
	f.publisher.On("Publish", mock.Anything, event.TopicReviewSubmitted, mock.Anything).Return(nil)

	_, err := f.svc.SubmitReview(context.Background(), validReviewInput())

	assert.ErrorIs(t, err, apperrors.ErrStorage)
	f.vendors.AssertNotCalled(t, "UpdateAggregate", mock.Anything, mock.Anything, mock.Anything)
}

func TestSubmitReview_PublishFailuresAreNotReturned(t *testing.T) {
	f := newReviewFixture()

	f.reviews.On("Create", mock.Anything, mock.AnythingOfType("*domain.Review")).Return(nil)
	f.reviews.On("Stats", mock.Anything, int64(7)).Return(domain.ReviewStats{Count: 3, Sum: 10}, nil)
	f.vendors.On("UpdateAggregate", mock.Anything, int64(7), aggregateOf("3.33", 3)).Return(nil)
	f.cache.On("Invalidate", mock.Anything).Return(nil)
	f.publisher.On("Publish", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("broker unavailable"))

	review, err := f.svc.SubmitReview(context.Background(), validReviewInput())

	require.NoError(t, err)
	assert.NotNil(t, review)
	f.vendors.AssertExpectations(t)
	f.publisher.AssertNumberOfCalls(t, "Publish", 2)
}

func TestSubmitReview_InvalidateRetriedThenSucceeds(t *testing.T) {
	f := newReviewFixture()

	f.reviews.On("Create", mock.Anything, mock.AnythingOfType("*domain.Review")).Return(nil)
	f.reviews.On("Stats", mock.Anything, int64(7)).Return(domain.ReviewStats{Count: 1, Sum: 5}, nil)
	f.vendors.On("UpdateAggregate", mock.Anything, int64(7), aggregateOf("5.00", 1)).Return(nil)
	f.cache.On("Invalidate", mock.Anything).Return(errors.New("timeout")).Once()
	f.cache.On("Invalidate", mock.Anything).Return(nil).Once()
	f.publisher.On("Publish", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	_, err := f.svc.SubmitReview(context.Background(), validReviewInput())

	require.NoError(t, err)
	f.cache.AssertNumberOfCalls(t, "Invalidate", 2)
}

func TestSubmitReview_InvalidateFailureIsStorageError(t *testing.T) {
	f := newReviewFixture()

	f.reviews.On("Create", mock.Anything, mock.AnythingOfType("*domain.Review")).Return(nil)
	f.reviews.On("Stats", mock.Anything, int64(7)).Return(domain.ReviewStats{Count: 1, Sum: 5}, nil)
	f.vendors.On("UpdateAggregate", mock.Anything, int64(7), aggregateOf("5.00", 1)).Return(nil)
	f.cache.On("Invalidate", mock.Anything).Return(errors.New("redis down"))
	f.publisher.On("Publish", mock.Anything, event.TopicReviewSubmitted, mock.Anything).Return(nil)

	review, err := f.svc.SubmitReview(context.Background(), validReviewInput())

	assert.Nil(t, review)
	assert.ErrorIs(t, err, apperrors.ErrStorage)
	f.vendors.AssertExpectations(t)
	f.cache.AssertNumberOfCalls(t, "Invalidate", invalidateAttempts)
	f.publisher.AssertNotCalled(t, "Publish", mock.Anything, event.TopicVendorRatingUpdated, mock.Anything)
}

// --- GetReviews Tests ---

func TestGetReviews_Success(t *testing.T) {
	f := newReviewFixture()
	ctx := context.Background()

	reviews := []domain.Review{{ID: 2, VendorID: 7, Rating: 4}, {ID: 1, VendorID: 7, Rating: 5}}
	f.vendors.On("GetByID", ctx, int64(7)).Return(&domain.Vendor{ID: 7}, nil)
	f.reviews.On("ListByVendorID", ctx, int64(7)).Return(reviews, nil)

	got, err := f.svc.GetReviews(ctx, 7)

	require.NoError(t, err)
	assert.Equal(t, reviews, got)
}

func TestGetReviews_UnknownVendor(t *testing.T) {
	f := newReviewFixture()
	ctx := context.Background()

	f.vendors.On("GetByID", ctx, int64(404)).Return(nil, apperrors.NotFound("vendor", int64(404)))

	got, err := f.svc.GetReviews(ctx, 404)

	assert.Nil(t, got)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	f.reviews.AssertNotCalled(t, "ListByVendorID", mock.Anything, mock.Anything)
}
