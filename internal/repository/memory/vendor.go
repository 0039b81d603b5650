package memory

import (
	"context"
	"slices"

	"github.com/TubaAnsari/vendor-management-portal/internal/domain"
	apperrors "github.com/TubaAnsari/vendor-management-portal/pkg/errors"
)

type vendorRow struct {
	domain.Vendor
}

// VendorRepository implements repository.VendorRepository in memory.
type VendorRepository struct {
	store *Store
}

// Create inserts a vendor with a fresh id and a 0.00 aggregate.
func (r *VendorRepository) Create(_ context.Context, v *domain.Vendor) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, row := range s.vendors {
		if row.Email == v.Email {
			return apperrors.AlreadyExists("vendor", "email", v.Email)
		}
	}

	s.nextVendorID++
	v.ID = s.nextVendorID
	initial := domain.ComputeAggregate(0, 0)
	v.AverageRating = initial.Rating()
	v.ReviewCount = initial.ReviewCount

	s.vendors[v.ID] = &vendorRow{Vendor: cloneVendor(*v)}
	return nil
}

// GetByID returns a copy of the vendor.
func (r *VendorRepository) GetByID(_ context.Context, id int64) (*domain.Vendor, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	row, ok := s.vendors[id]
	if !ok {
		return nil, apperrors.NotFound("vendor", id)
	}
	v := cloneVendor(row.Vendor)
	return &v, nil
}

// GetByEmail returns a copy of the vendor registered with email.
func (r *VendorRepository) GetByEmail(_ context.Context, email string) (*domain.Vendor, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, row := range s.vendors {
		if row.Email == email {
			v := cloneVendor(row.Vendor)
			return &v, nil
		}
	}
	return nil, apperrors.NotFound("vendor", email)
}

// List filters and orders vendors with the query's in-memory interpreter.
func (r *VendorRepository) List(_ context.Context, q domain.VendorQuery) ([]domain.Vendor, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]*domain.Vendor, 0, len(s.vendors))
	for _, row := range s.vendors {
		if q.Matches(&row.Vendor) {
			matched = append(matched, &row.Vendor)
		}
	}
	slices.SortFunc(matched, q.Compare)

	vendors := make([]domain.Vendor, len(matched))
	for i, v := range matched {
		vendors[i] = cloneVendor(*v)
	}
	return vendors, nil
}

// Update overwrites the profile fields of an existing vendor.
func (r *VendorRepository) Update(_ context.Context, v *domain.Vendor) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.vendors[v.ID]
	if !ok {
		return apperrors.NotFound("vendor", v.ID)
	}

	row.VendorName = v.VendorName
	row.OwnerName = v.OwnerName
	row.ContactNumber = v.ContactNumber
	row.BusinessCategory = v.BusinessCategory
	row.City = v.City
	row.Description = v.Description
	row.LogoURL = cloneString(v.LogoURL)
	row.UpdatedAt = v.UpdatedAt
	return nil
}

// Delete removes a vendor and cascades to its products and reviews.
func (r *VendorRepository) Delete(_ context.Context, id int64) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.vendors[id]; !ok {
		return apperrors.NotFound("vendor", id)
	}
	delete(s.vendors, id)

	for rid, rv := range s.reviews {
		if rv.VendorID == id {
			delete(s.reviews, rid)
		}
	}
	for pid, p := range s.products {
		if p.VendorID == id {
			delete(s.products, pid)
		}
	}
	return nil
}

// UpdateAggregate overwrites both aggregate fields under the store lock.
func (r *VendorRepository) UpdateAggregate(_ context.Context, vendorID int64, agg domain.Aggregate) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.vendors[vendorID]
	if !ok {
		return apperrors.NotFound("vendor", vendorID)
	}
	row.AverageRating = agg.Rating()
	row.ReviewCount = agg.ReviewCount
	return nil
}

func cloneVendor(v domain.Vendor) domain.Vendor {
	v.LogoURL = cloneString(v.LogoURL)
	return v
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	c := *s
	return &c
}
