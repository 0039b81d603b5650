package memory

import (
	"context"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/TubaAnsari/vendor-management-portal/internal/domain"
)

// StatsRepository implements repository.StatsRepository in memory.
type StatsRepository struct {
	store *Store
}

// ListVendorSummaries returns every vendor with its product count, newest first.
func (r *StatsRepository) ListVendorSummaries(_ context.Context) ([]domain.VendorSummary, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[int64]int, len(s.vendors))
	for _, p := range s.products {
		counts[p.VendorID]++
	}

	newest := domain.VendorQuery{Sort: domain.SortNewest}
	vendors := make([]*domain.Vendor, 0, len(s.vendors))
	for _, row := range s.vendors {
		vendors = append(vendors, &row.Vendor)
	}
	slices.SortFunc(vendors, newest.Compare)

	summaries := make([]domain.VendorSummary, len(vendors))
	for i, v := range vendors {
		summaries[i] = domain.VendorSummary{Vendor: cloneVendor(*v), ProductCount: counts[v.ID]}
	}
	return summaries, nil
}

// Totals returns portal-wide counters.
func (r *StatsRepository) Totals(_ context.Context) (domain.PortalTotals, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	totals := domain.PortalTotals{
		Vendors:  len(s.vendors),
		Reviews:  len(s.reviews),
		Products: len(s.products),
	}

	if len(s.reviews) > 0 {
		var sum int64
		for _, rv := range s.reviews {
			sum += int64(rv.Rating)
		}
		avg := decimal.NewFromInt(sum).Div(decimal.NewFromInt(int64(len(s.reviews))))
		totals.AverageRating = domain.NewRating(avg)
	}

	return totals, nil
}
