package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/TubaAnsari/vendor-management-portal/internal/domain"
	"github.com/TubaAnsari/vendor-management-portal/internal/repository"
)

// AdminService provides the read-only admin dashboard.
type AdminService struct {
	stats    repository.StatsRepository
	vendors  repository.VendorRepository
	products repository.ProductRepository
	reviews  repository.ReviewRepository
	logger   *slog.Logger
}

// NewAdminService creates a new admin service.
func NewAdminService(
	stats repository.StatsRepository,
	vendors repository.VendorRepository,
	products repository.ProductRepository,
	reviews repository.ReviewRepository,
	logger *slog.Logger,
) *AdminService {
	return &AdminService{
		stats:    stats,
		vendors:  vendors,
		products: products,
		reviews:  reviews,
		logger:   logger,
	}
}

// ListVendors returns every vendor with its product count, newest first.
func (s *AdminService) ListVendors(ctx context.Context) ([]domain.VendorSummary, error) {
	summaries, err := s.stats.ListVendorSummaries(ctx)
	if err != nil {
		return nil, fmt.Errorf("list vendor summaries: %w", err)
	}
	if summaries == nil {
		summaries = []domain.VendorSummary{}
	}
	return summaries, nil
}

// GetVendor returns a vendor with its products and reviews.
func (s *AdminService) GetVendor(ctx context.Context, id int64) (*domain.VendorDetail, error) {
	vendor, err := s.vendors.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get vendor: %w", err)
	}

	products, err := s.products.ListByVendorID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	if products == nil {
		products = []domain.Product{}
	}

	reviews, err := s.reviews.ListByVendorID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	if reviews == nil {
		reviews = []domain.Review{}
	}

	return &domain.VendorDetail{Vendor: vendor, Products: products, Reviews: reviews}, nil
}

// Stats returns portal-wide totals.
func (s *AdminService) Stats(ctx context.Context) (domain.PortalTotals, error) {
	totals, err := s.stats.Totals(ctx)
	if err != nil {
		return domain.PortalTotals{}, fmt.Errorf("portal totals: %w", err)
	}
	return totals, nil
}
