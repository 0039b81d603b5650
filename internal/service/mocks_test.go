package service

import (
	"context"
	"log/slog"
	"os"

	"github.com/stretchr/testify/mock"

	"github.com/TubaAnsari/vendor-management-portal/internal/domain"
	"github.com/TubaAnsari/vendor-management-portal/internal/event"
	"github.com/TubaAnsari/vendor-management-portal/internal/repository"
	pkgkafka "github.com/TubaAnsari/vendor-management-portal/pkg/kafka"
)

// --- Mock Vendor Repository ---

type mockVendorRepository struct {
	mock.Mock
}

func (m *mockVendorRepository) Create(ctx context.Context, vendor *domain.Vendor) error {
	args := m.Called(ctx, vendor)
	return args.Error(0)
}

func (m *mockVendorRepository) GetByID(ctx context.Context, id int64) (*domain.Vendor, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vendor), args.Error(1)
}

func (m *mockVendorRepository) GetByEmail(ctx context.Context, email string) (*domain.Vendor, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vendor), args.Error(1)
}

func (m *mockVendorRepository) List(ctx context.Context, q domain.VendorQuery) ([]domain.Vendor, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Vendor), args.Error(1)
}

func (m *mockVendorRepository) Update(ctx context.Context, vendor *domain.Vendor) error {
	args := m.Called(ctx, vendor)
	return args.Error(0)
}

func (m *mockVendorRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockVendorRepository) UpdateAggregate(ctx context.Context, vendorID int64, agg domain.Aggregate) error {
	args := m.Called(ctx, vendorID, agg)
	return args.Error(0)
}

// --- Mock Review Repository ---

type mockReviewRepository struct {
	mock.Mock
}

func (m *mockReviewRepository) Create(ctx context.Context, review *domain.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *mockReviewRepository) ListByVendorID(ctx context.Context, vendorID int64) ([]domain.Review, error) {
	args := m.Called(ctx, vendorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Review), args.Error(1)
}

func (m *mockReviewRepository) Stats(ctx context.Context, vendorID int64) (domain.ReviewStats, error) {
	args := m.Called(ctx, vendorID)
	return args.Get(0).(domain.ReviewStats), args.Error(1)
}

// --- Mock Product Repository ---

type mockProductRepository struct {
	mock.Mock
}

func (m *mockProductRepository) Create(ctx context.Context, product *domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *mockProductRepository) GetByID(ctx context.Context, id, vendorID int64) (*domain.Product, error) {
	args := m.Called(ctx, id, vendorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *mockProductRepository) Update(ctx context.Context, product *domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *mockProductRepository) Delete(ctx context.Context, id, vendorID int64) error {
	args := m.Called(ctx, id, vendorID)
	return args.Error(0)
}

func (m *mockProductRepository) ListByVendorID(ctx context.Context, vendorID int64) ([]domain.Product, error) {
	args := m.Called(ctx, vendorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Product), args.Error(1)
}

// --- Mock Stats Repository ---

type mockStatsRepository struct {
	mock.Mock
}

func (m *mockStatsRepository) ListVendorSummaries(ctx context.Context) ([]domain.VendorSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.VendorSummary), args.Error(1)
}

func (m *mockStatsRepository) Totals(ctx context.Context) (domain.PortalTotals, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.PortalTotals), args.Error(1)
}

// --- Mock Listing Cache ---

type mockListingCache struct {
	mock.Mock
}

func (m *mockListingCache) Get(ctx context.Context, q domain.VendorQuery) (repository.ListingLookup, error) {
	args := m.Called(ctx, q)
	return args.Get(0).(repository.ListingLookup), args.Error(1)
}

func (m *mockListingCache) Set(ctx context.Context, q domain.VendorQuery, generation int64, vendors []domain.Vendor) error {
	args := m.Called(ctx, q, generation, vendors)
	return args.Error(0)
}

func (m *mockListingCache) Invalidate(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// --- Mock Publisher ---

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(ctx context.Context, topic string, evt *pkgkafka.Event) error {
	args := m.Called(ctx, topic, evt)
	return args.Error(0)
}

// --- Test Helpers ---

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newTestEventProducer() *event.Producer {
	return event.NewProducer(pkgkafka.Discard, newTestLogger())
}

func strPtr(s string) *string {
	return &s
}
