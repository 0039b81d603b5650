package postgres

import (
	"context"

	"github.com/TubaAnsari/vendor-management-portal/internal/domain"
	"github.com/TubaAnsari/vendor-management-portal/pkg/database"
	apperrors "github.com/TubaAnsari/vendor-management-portal/pkg/errors"
)

// ReviewRepository implements review persistence operations using PostgreSQL.
type ReviewRepository struct {
	pool database.DBTX
}

// NewReviewRepository creates a new PostgreSQL-backed review repository.
func NewReviewRepository(pool database.DBTX) *ReviewRepository {
	return &ReviewRepository{pool: pool}
}

// Create inserts a vendor review. A missing vendor fails the foreign key and
// is reported as not found.
func (r *ReviewRepository) Create(ctx context.Context, review *domain.Review) (err error) {
	query := `
		INSERT INTO reviews (vendor_id, client_name, project_name, rating, comments, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`

	ctx, end := database.TraceQuery(ctx, "reviews.insert", query)
	defer func() { end(err) }()

	err = r.pool.QueryRow(ctx, query,
		review.VendorID,
		review.ClientName,
		review.ProjectName,
		review.Rating,
		review.Comments,
		review.CreatedAt,
	).Scan(&review.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return apperrors.NotFound("vendor", review.VendorID)
		}
		return apperrors.Storage("insert review", err)
	}

	return nil
}

// ListByVendorID returns all reviews for a vendor, newest first.
func (r *ReviewRepository) ListByVendorID(ctx context.Context, vendorID int64) (reviews []domain.Review, err error) {
	query := `
		SELECT id, vendor_id, client_name, project_name, rating, comments, created_at
		FROM reviews
		WHERE vendor_id = $1
		ORDER BY created_at DESC, id DESC`

	ctx, end := database.TraceQuery(ctx, "reviews.list", query)
	defer func() { end(err) }()

	rows, err := r.pool.Query(ctx, query, vendorID)
	if err != nil {
		return nil, apperrors.Storage("list reviews", err)
	}
	defer rows.Close()

	for rows.Next() {
		var rv domain.Review

		if err = rows.Scan(
			&rv.ID,
			&rv.VendorID,
			&rv.ClientName,
			&rv.ProjectName,
			&rv.Rating,
			&rv.Comments,
			&rv.CreatedAt,
		); err != nil {
			return nil, apperrors.Storage("scan review row", err)
		}

		reviews = append(reviews, rv)
	}

	if err = rows.Err(); err != nil {
		return nil, apperrors.Storage("iterate review rows", err)
	}

	if reviews == nil {
		reviews = []domain.Review{}
	}

	return reviews, nil
}

// Stats returns the number of reviews and the sum of their ratings.
func (r *ReviewRepository) Stats(ctx context.Context, vendorID int64) (stats domain.ReviewStats, err error) {
	query := `
		SELECT COUNT(*), COALESCE(SUM(rating), 0)
		FROM reviews
		WHERE vendor_id = $1`

	ctx, end := database.TraceQuery(ctx, "reviews.stats", query)
	defer func() { end(err) }()

	if err = r.pool.QueryRow(ctx, query, vendorID).Scan(&stats.Count, &stats.Sum); err != nil {
		return domain.ReviewStats{}, apperrors.Storage("get review stats", err)
	}

	return stats, nil
}
