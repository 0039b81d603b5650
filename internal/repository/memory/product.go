package memory

import (
	"context"
	"slices"

	"github.com/TubaAnsari/vendor-management-portal/internal/domain"
	apperrors "github.com/TubaAnsari/vendor-management-portal/pkg/errors"
)

type productRow struct {
	domain.Product
}

// ProductRepository implements repository.ProductRepository in memory.
type ProductRepository struct {
	store *Store
}

// Create inserts a product for an existing vendor.
func (r *ProductRepository) Create(_ context.Context, p *domain.Product) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.vendors[p.VendorID]; !ok {
		return apperrors.NotFound("vendor", p.VendorID)
	}

	s.nextProductID++
	p.ID = s.nextProductID
	s.products[p.ID] = &productRow{Product: cloneProduct(*p)}
	return nil
}

// GetByID returns a product owned by vendorID.
func (r *ProductRepository) GetByID(_ context.Context, id, vendorID int64) (*domain.Product, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	row, ok := s.products[id]
	if !ok || row.VendorID != vendorID {
		return nil, apperrors.NotFound("product", id)
	}
	p := cloneProduct(row.Product)
	return &p, nil
}

// Update overwrites a product owned by p.VendorID.
func (r *ProductRepository) Update(_ context.Context, p *domain.Product) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.products[p.ID]
	if !ok || row.VendorID != p.VendorID {
		return apperrors.NotFound("product", p.ID)
	}
	createdAt := row.CreatedAt
	row.Product = cloneProduct(*p)
	row.CreatedAt = createdAt
	return nil
}

// Delete removes a product owned by vendorID.
func (r *ProductRepository) Delete(_ context.Context, id, vendorID int64) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.products[id]
	if !ok || row.VendorID != vendorID {
		return apperrors.NotFound("product", id)
	}
	delete(s.products, id)
	return nil
}

// ListByVendorID returns the vendor's products, newest first.
func (r *ProductRepository) ListByVendorID(_ context.Context, vendorID int64) ([]domain.Product, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.productsOf(vendorID), nil
}

// productsOf must be called with s.mu held.
func (s *Store) productsOf(vendorID int64) []domain.Product {
	products := []domain.Product{}
	for _, row := range s.products {
		if row.VendorID == vendorID {
			products = append(products, cloneProduct(row.Product))
		}
	}
	slices.SortFunc(products, func(a, b domain.Product) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		switch {
		case a.ID > b.ID:
			return -1
		case a.ID < b.ID:
			return 1
		}
		return 0
	})
	return products
}

func cloneProduct(p domain.Product) domain.Product {
	p.ImageURL = cloneString(p.ImageURL)
	return p
}
