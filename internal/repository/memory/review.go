package memory

import (
	"context"
	"slices"

	"github.com/TubaAnsari/vendor-management-portal/internal/domain"
	apperrors "github.com/TubaAnsari/vendor-management-portal/pkg/errors"
)

type reviewRow struct {
	domain.Review
}

// ReviewRepository implements repository.ReviewRepository in memory.
type ReviewRepository struct {
	store *Store
}

// Create inserts a review. The vendor must exist.
func (r *ReviewRepository) Create(_ context.Context, review *domain.Review) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.vendors[review.VendorID]; !ok {
		return apperrors.NotFound("vendor", review.VendorID)
	}

	s.nextReviewID++
	review.ID = s.nextReviewID
	row := &reviewRow{Review: *review}
	row.ProjectName = cloneString(review.ProjectName)
	s.reviews[review.ID] = row
	return nil
}

// ListByVendorID returns the vendor's reviews, newest first.
func (r *ReviewRepository) ListByVendorID(_ context.Context, vendorID int64) ([]domain.Review, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	reviews := []domain.Review{}
	for _, row := range s.reviews {
		if row.VendorID == vendorID {
			rv := row.Review
			rv.ProjectName = cloneString(row.ProjectName)
			reviews = append(reviews, rv)
		}
	}
	slices.SortFunc(reviews, newestReviewFirst)
	return reviews, nil
}

// Stats scans every review of the vendor.
func (r *ReviewRepository) Stats(_ context.Context, vendorID int64) (domain.ReviewStats, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	var stats domain.ReviewStats
	for _, row := range s.reviews {
		if row.VendorID == vendorID {
			stats.Count++
			stats.Sum += int64(row.Rating)
		}
	}
	return stats, nil
}

func newestReviewFirst(a, b domain.Review) int {
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
}
