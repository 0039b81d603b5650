package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/TubaAnsari/vendor-management-portal/internal/domain"
	"github.com/TubaAnsari/vendor-management-portal/pkg/database"
	apperrors "github.com/TubaAnsari/vendor-management-portal/pkg/errors"
)

const vendorColumns = `id, vendor_name, owner_name, contact_number, email, business_category, city,
		       description, logo_url, password_hash, average_rating::float8, review_count, created_at, updated_at`

// VendorRepository implements repository.VendorRepository using PostgreSQL.
type VendorRepository struct {
	pool database.DBTX
}

// NewVendorRepository creates a new PostgreSQL-backed vendor repository.
func NewVendorRepository(pool database.DBTX) *VendorRepository {
	return &VendorRepository{pool: pool}
}

// Create inserts a new vendor. Aggregate columns start at their defaults.
func (r *VendorRepository) Create(ctx context.Context, v *domain.Vendor) (err error) {
	query := `
		INSERT INTO vendors (vendor_name, owner_name, contact_number, email, business_category, city,
		                     description, logo_url, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id`

	ctx, end := database.TraceQuery(ctx, "vendors.insert", query)
	defer func() { end(err) }()

	err = r.pool.QueryRow(ctx, query,
		v.VendorName,
		v.OwnerName,
		v.ContactNumber,
		v.Email,
		v.BusinessCategory,
		v.City,
		v.Description,
		v.LogoURL,
		v.PasswordHash,
		v.CreatedAt,
		v.UpdatedAt,
	).Scan(&v.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.AlreadyExists("vendor", "email", v.Email)
		}
		return apperrors.Storage("insert vendor", err)
	}

	initial := domain.ComputeAggregate(0, 0)
	v.AverageRating = initial.Rating()
	v.ReviewCount = initial.ReviewCount

	return nil
}

// GetByID retrieves a vendor by its ID.
func (r *VendorRepository) GetByID(ctx context.Context, id int64) (*domain.Vendor, error) {
	query := `SELECT ` + vendorColumns + ` FROM vendors WHERE id = $1`

	return r.getOne(ctx, "vendors.get", query, id)
}

// GetByEmail retrieves a vendor by its email.
func (r *VendorRepository) GetByEmail(ctx context.Context, email string) (*domain.Vendor, error) {
	query := `SELECT ` + vendorColumns + ` FROM vendors WHERE email = $1`

	return r.getOne(ctx, "vendors.get_by_email", query, email)
}

// List returns vendors selected and ordered by q.
func (r *VendorRepository) List(ctx context.Context, q domain.VendorQuery) (vendors []domain.Vendor, err error) {
	query, args := buildVendorListQuery(q)

	ctx, end := database.TraceQuery(ctx, "vendors.list", query)
	defer func() { end(err) }()

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.Storage("list vendors", err)
	}
	defer rows.Close()

	for rows.Next() {
		var v *domain.Vendor
		if v, err = scanVendor(rows); err != nil {
			return nil, apperrors.Storage("scan vendor row", err)
		}
		vendors = append(vendors, *v)
	}

	if err = rows.Err(); err != nil {
		return nil, apperrors.Storage("iterate vendor rows", err)
	}

	if vendors == nil {
		vendors = []domain.Vendor{}
	}

	return vendors, nil
}

// Update writes the profile fields of an existing vendor.
func (r *VendorRepository) Update(ctx context.Context, v *domain.Vendor) (err error) {
	query := `
		UPDATE vendors
		SET vendor_name = $1, owner_name = $2, contact_number = $3, business_category = $4,
		    city = $5, description = $6, logo_url = $7, updated_at = $8
		WHERE id = $9`

	ctx, end := database.TraceQuery(ctx, "vendors.update", query)
	defer func() { end(err) }()

	ct, err := r.pool.Exec(ctx, query,
		v.VendorName,
		v.OwnerName,
		v.ContactNumber,
		v.BusinessCategory,
		v.City,
		v.Description,
		v.LogoURL,
		v.UpdatedAt,
		v.ID,
	)
	if err != nil {
		return apperrors.Storage("update vendor", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("vendor", v.ID)
	}

	return nil
}

// Delete removes a vendor. Products and reviews go with it through
// ON DELETE CASCADE.
func (r *VendorRepository) Delete(ctx context.Context, id int64) (err error) {
	query := `DELETE FROM vendors WHERE id = $1`

	ctx, end := database.TraceQuery(ctx, "vendors.delete", query)
	defer func() { end(err) }()

	ct, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return apperrors.Storage("delete vendor", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("vendor", id)
	}

	return nil
}

// UpdateAggregate overwrites average_rating and review_count in one statement.
func (r *VendorRepository) UpdateAggregate(ctx context.Context, vendorID int64, agg domain.Aggregate) (err error) {
	query := `
		UPDATE vendors
		SET average_rating = $1::numeric, review_count = $2
		WHERE id = $3`

	ctx, end := database.TraceQuery(ctx, "vendors.update_aggregate", query)
	defer func() { end(err) }()

	ct, err := r.pool.Exec(ctx, query, agg.AverageRating.StringFixed(2), agg.ReviewCount, vendorID)
	if err != nil {
		return apperrors.Storage("update vendor aggregate", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("vendor", vendorID)
	}

	return nil
}

// getOne runs a single-row vendor lookup. A missing row is not recorded as a
// span error.
func (r *VendorRepository) getOne(ctx context.Context, op, query string, key any) (v *domain.Vendor, err error) {
	ctx, end := database.TraceQuery(ctx, op, query)
	defer func() {
		if errors.Is(err, apperrors.ErrNotFound) {
			end(nil)
			return
		}
		end(err)
	}()

	v, err = scanVendor(r.pool.QueryRow(ctx, query, key))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("vendor", key)
		}
		return nil, apperrors.Storage("get vendor", err)
	}

	return v, nil
}

// scanVendor reads one row selected with vendorColumns.
func scanVendor(row pgx.Row) (*domain.Vendor, error) {
	var (
		v      domain.Vendor
		rating pgtype.Float8
	)

	if err := row.Scan(
		&v.ID,
		&v.VendorName,
		&v.OwnerName,
		&v.ContactNumber,
		&v.Email,
		&v.BusinessCategory,
		&v.City,
		&v.Description,
		&v.LogoURL,
		&v.PasswordHash,
		&rating,
		&v.ReviewCount,
		&v.CreatedAt,
		&v.UpdatedAt,
	); err != nil {
		return nil, err
	}

	v.AverageRating = ratingFromFloat(rating)

	return &v, nil
}

func ratingFromFloat(f pgtype.Float8) domain.Rating {
	if !f.Valid {
		return domain.Rating{}
	}
	return domain.NewRating(decimal.NewFromFloat(f.Float64))
}
