package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/TubaAnsari/vendor-management-portal/internal/domain"
	"github.com/TubaAnsari/vendor-management-portal/internal/repository"
	apperrors "github.com/TubaAnsari/vendor-management-portal/pkg/errors"
)

// Listing cache lookup outcomes recorded in metrics.
const (
	cacheHit    = "hit"
	cacheMiss   = "miss"
	cacheError  = "error"
	cacheBypass = "bypass"
)

// VendorService serves the public vendor directory: filtered listings and
// vendor detail pages.
type VendorService struct {
	vendors  repository.VendorRepository
	products repository.ProductRepository
	cache    repository.ListingCache
	metrics  *Metrics
	logger   *slog.Logger
}

// NewVendorService creates a new vendor service. cache and metrics may be nil;
// without a cache every listing reads storage.
func NewVendorService(
	vendors repository.VendorRepository,
	products repository.ProductRepository,
	cache repository.ListingCache,
	metrics *Metrics,
	logger *slog.Logger,
) *VendorService {
	return &VendorService{
		vendors:  vendors,
		products: products,
		cache:    cache,
		metrics:  metrics,
		logger:   logger,
	}
}

// ListVendors returns the vendors selected by opts in the requested order.
// Ratings come from the stored aggregate and are never recomputed here.
func (s *VendorService) ListVendors(ctx context.Context, opts ...domain.ListOption) ([]domain.Vendor, error) {
	q, err := domain.NewVendorQuery(opts...)
	if err != nil {
		if errors.Is(err, domain.ErrUnknownSort) {
			return nil, apperrors.Validation("invalid listing query", map[string]string{
				"sort": fmt.Sprintf("must be one of %v", domain.ValidSortKeys()),
			})
		}
		return nil, apperrors.InvalidInput(err.Error())
	}

	if s.cache == nil {
		s.metrics.cacheLookup(cacheBypass)
		return s.list(ctx, q)
	}

	lookup, err := s.cache.Get(ctx, q)
	if err != nil {
		s.metrics.cacheLookup(cacheError)
		s.logger.WarnContext(ctx, "vendor listing cache read failed",
			slog.String("error", err.Error()),
		)
		return s.list(ctx, q)
	}
	if lookup.Hit {
		s.metrics.cacheLookup(cacheHit)
		return lookup.Vendors, nil
	}
	s.metrics.cacheLookup(cacheMiss)

	vendors, err := s.list(ctx, q)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, q, lookup.Generation, vendors); err != nil {
		s.logger.WarnContext(ctx, "vendor listing cache write failed",
			slog.String("error", err.Error()),
		)
	}

	return vendors, nil
}

func (s *VendorService) list(ctx context.Context, q domain.VendorQuery) ([]domain.Vendor, error) {
	vendors, err := s.vendors.List(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list vendors: %w", err)
	}
	if vendors == nil {
		vendors = []domain.Vendor{}
	}
	return vendors, nil
}

// GetVendor returns a vendor's public profile with its products.
func (s *VendorService) GetVendor(ctx context.Context, id int64) (*domain.VendorDetail, error) {
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

	return &domain.VendorDetail{Vendor: vendor, Products: products}, nil
}

// ListProducts returns the products of an existing vendor, newest first.
func (s *VendorService) ListProducts(ctx context.Context, vendorID int64) ([]domain.Product, error) {
	if _, err := s.vendors.GetByID(ctx, vendorID); err != nil {
		return nil, fmt.Errorf("get vendor: %w", err)
	}

	products, err := s.products.ListByVendorID(ctx, vendorID)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	if products == nil {
		products = []domain.Product{}
	}
	return products, nil
}
