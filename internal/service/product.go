package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/TubaAnsari/vendor-management-portal/internal/domain"
	"github.com/TubaAnsari/vendor-management-portal/internal/repository"
	apperrors "github.com/TubaAnsari/vendor-management-portal/pkg/errors"
)

// CreateProductInput holds the parameters for adding a product.
type CreateProductInput struct {
	ProductName      string
	ImageURL         *string
	ShortDescription string
	PriceRange       string
}

// ProductService manages the products of the authenticated vendor. Every
// operation is scoped to the owning vendor.
type ProductService struct {
	products repository.ProductRepository
	logger   *slog.Logger
	now      func() time.Time
}

// NewProductService creates a new product service.
func NewProductService(products repository.ProductRepository, logger *slog.Logger) *ProductService {
	return &ProductService{
		products: products,
		logger:   logger,
		now:      time.Now,
	}
}

// CreateProduct adds a product to the vendor's catalogue.
func (s *ProductService) CreateProduct(ctx context.Context, vendorID int64, input CreateProductInput) (*domain.Product, error) {
	if strings.TrimSpace(input.ProductName) == "" {
		return nil, apperrors.InvalidInput("product name is required")
	}

	now := s.now().UTC()
	product := &domain.Product{
		VendorID:         vendorID,
		ProductName:      strings.TrimSpace(input.ProductName),
		ImageURL:         input.ImageURL,
		ShortDescription: strings.TrimSpace(input.ShortDescription),
		PriceRange:       strings.TrimSpace(input.PriceRange),
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.products.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}

	s.logger.InfoContext(ctx, "product created",
		slog.Int64("product_id", product.ID),
		slog.Int64("vendor_id", vendorID),
	)

	return product, nil
}

// UpdateProduct applies a partial update to one of the vendor's products.
func (s *ProductService) UpdateProduct(ctx context.Context, vendorID, productID int64, update domain.ProductUpdate) (*domain.Product, error) {
	if update.IsEmpty() {
		return nil, apperrors.Validation("at least one field must be provided", nil)
	}

	product, err := s.products.GetByID(ctx, productID, vendorID)
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}

	update.Apply(product)
	product.UpdatedAt = s.now().UTC()

	if err := s.products.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}

	s.logger.InfoContext(ctx, "product updated",
		slog.Int64("product_id", product.ID),
		slog.Int64("vendor_id", vendorID),
	)

	return product, nil
}

// DeleteProduct removes one of the vendor's products.
func (s *ProductService) DeleteProduct(ctx context.Context, vendorID, productID int64) error {
	if err := s.products.Delete(ctx, productID, vendorID); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}

	s.logger.InfoContext(ctx, "product deleted",
		slog.Int64("product_id", productID),
		slog.Int64("vendor_id", vendorID),
	)

	return nil
}
