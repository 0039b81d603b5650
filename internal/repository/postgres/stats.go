package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/TubaAnsari/vendor-management-portal/internal/domain"
	"github.com/TubaAnsari/vendor-management-portal/pkg/database"
	apperrors "github.com/TubaAnsari/vendor-management-portal/pkg/errors"
)

// StatsRepository serves the admin read models.
type StatsRepository struct {
	pool database.DBTX
}

// NewStatsRepository creates a new PostgreSQL-backed stats repository.
func NewStatsRepository(pool database.DBTX) *StatsRepository {
	return &StatsRepository{pool: pool}
}

// ListVendorSummaries returns every vendor with its product count, newest first.
func (r *StatsRepository) ListVendorSummaries(ctx context.Context) (summaries []domain.VendorSummary, err error) {
	query := `
		SELECT v.id, v.vendor_name, v.owner_name, v.contact_number, v.email, v.business_category, v.city,
		       v.description, v.logo_url, v.password_hash, v.average_rating::float8, v.review_count,
		       v.created_at, v.updated_at, COUNT(p.id) AS product_count
		FROM vendors v
		LEFT JOIN products p ON p.vendor_id = v.id
		GROUP BY v.id
		ORDER BY v.created_at DESC, v.id DESC`

	ctx, end := database.TraceQuery(ctx, "admin.vendor_summaries", query)
	defer func() { end(err) }()

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.Storage("list vendor summaries", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			s      domain.VendorSummary
			rating pgtype.Float8
		)

		if err = rows.Scan(
			&s.ID,
			&s.VendorName,
			&s.OwnerName,
			&s.ContactNumber,
			&s.Email,
			&s.BusinessCategory,
			&s.City,
			&s.Description,
			&s.LogoURL,
			&s.PasswordHash,
			&rating,
			&s.ReviewCount,
			&s.CreatedAt,
			&s.UpdatedAt,
			&s.ProductCount,
		); err != nil {
			return nil, apperrors.Storage("scan vendor summary row", err)
		}

		s.AverageRating = ratingFromFloat(rating)
		summaries = append(summaries, s)
	}

	if err = rows.Err(); err != nil {
		return nil, apperrors.Storage("iterate vendor summary rows", err)
	}

	if summaries == nil {
		summaries = []domain.VendorSummary{}
	}

	return summaries, nil
}

// Totals returns portal-wide counters. The average is taken over all reviews
// and is null when there are none.
func (r *StatsRepository) Totals(ctx context.Context) (totals domain.PortalTotals, err error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM vendors),
			(SELECT COUNT(*) FROM reviews),
			(SELECT COUNT(*) FROM products),
			(SELECT AVG(rating)::float8 FROM reviews)`

	ctx, end := database.TraceQuery(ctx, "admin.totals", query)
	defer func() { end(err) }()

	var avg pgtype.Float8
	if err = r.pool.QueryRow(ctx, query).Scan(
		&totals.Vendors,
		&totals.Reviews,
		&totals.Products,
		&avg,
	); err != nil {
		return domain.PortalTotals{}, apperrors.Storage("get portal totals", err)
	}

	totals.AverageRating = ratingFromFloat(avg)

	return totals, nil
}
