package repository

import (
	"context"

	"github.com/TubaAnsari/vendor-management-portal/internal/domain"
)

// VendorRepository defines the interface for vendor persistence operations.
type VendorRepository interface {
	// Create inserts a new vendor and sets its generated id and timestamps.
	Create(ctx context.Context, vendor *domain.Vendor) error

	// GetByID retrieves a vendor by its identifier.
	GetByID(ctx context.Context, id int64) (*domain.Vendor, error)

	// GetByEmail retrieves a vendor by its login email.
	GetByEmail(ctx context.Context, email string) (*domain.Vendor, error)

	// List returns the vendors selected and ordered by the query.
	List(ctx context.Context, q domain.VendorQuery) ([]domain.Vendor, error)

	// Update writes the editable profile fields of an existing vendor.
	Update(ctx context.Context, vendor *domain.Vendor) error

	// Delete removes a vendor together with its products and reviews.
	Delete(ctx context.Context, id int64) error

	// UpdateAggregate overwrites the cached rating fields in a single write.
	UpdateAggregate(ctx context.Context, vendorID int64, agg domain.Aggregate) error
}

// ReviewRepository defines the interface for review persistence operations.
// Implementations never touch the vendor aggregate columns.
type ReviewRepository interface {
	// Create inserts a review for an existing vendor and sets its id and timestamp.
	Create(ctx context.Context, review *domain.Review) error

	// ListByVendorID returns a vendor's reviews, newest first.
	ListByVendorID(ctx context.Context, vendorID int64) ([]domain.Review, error)

	// Stats returns the count and rating sum over all reviews of a vendor.
	Stats(ctx context.Context, vendorID int64) (domain.ReviewStats, error)
}

// ProductRepository defines the interface for product persistence operations.
type ProductRepository interface {
	// Create inserts a product owned by product.VendorID.
	Create(ctx context.Context, product *domain.Product) error

	// GetByID retrieves a product scoped to its owning vendor.
	GetByID(ctx context.Context, id, vendorID int64) (*domain.Product, error)

	// Update writes the editable fields of a product owned by product.VendorID.
	Update(ctx context.Context, product *domain.Product) error

	// Delete removes a product owned by vendorID.
	Delete(ctx context.Context, id, vendorID int64) error

	// ListByVendorID returns a vendor's products, newest first.
	ListByVendorID(ctx context.Context, vendorID int64) ([]domain.Product, error)
}

// StatsRepository provides the read models of the admin dashboard.
type StatsRepository interface {
	// ListVendorSummaries returns every vendor with its product count, newest first.
	ListVendorSummaries(ctx context.Context) ([]domain.VendorSummary, error)

	// Totals returns portal-wide counters.
	Totals(ctx context.Context) (domain.PortalTotals, error)
}

// ListingLookup is the result of a listing cache lookup. Generation is the
// cache generation the lookup observed and must be passed back to Set, so a
// listing read before an invalidation is never stored under the new generation.
type ListingLookup struct {
	Vendors    []domain.Vendor
	Hit        bool
	Generation int64
}

// ListingCache caches vendor listing results. Invalidate must make every
// previously stored listing unreachable before it returns.
type ListingCache interface {
	Get(ctx context.Context, q domain.VendorQuery) (ListingLookup, error)
	Set(ctx context.Context, q domain.VendorQuery, generation int64, vendors []domain.Vendor) error
	Invalidate(ctx context.Context) error
}
