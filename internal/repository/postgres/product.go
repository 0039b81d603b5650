package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/TubaAnsari/vendor-management-portal/internal/domain"
	"github.com/TubaAnsari/vendor-management-portal/pkg/database"
	apperrors "github.com/TubaAnsari/vendor-management-portal/pkg/errors"
)

const productColumns = `id, vendor_id, product_name, product_image, short_description, price_range, created_at, updated_at`

// ProductRepository implements repository.ProductRepository using PostgreSQL.
// Every mutation is scoped to the owning vendor.
type ProductRepository struct {
	pool database.DBTX
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(pool database.DBTX) *ProductRepository {
	return &ProductRepository{pool: pool}
}

// Create inserts a new product into the database.
func (r *ProductRepository) Create(ctx context.Context, p *domain.Product) (err error) {
	query := `
		INSERT INTO products (vendor_id, product_name, product_image, short_description, price_range, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`

	ctx, end := database.TraceQuery(ctx, "products.insert", query)
	defer func() { end(err) }()

	err = r.pool.QueryRow(ctx, query,
		p.VendorID,
		p.ProductName,
		p.ImageURL,
		p.ShortDescription,
		p.PriceRange,
		p.CreatedAt,
		p.UpdatedAt,
	).Scan(&p.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return apperrors.NotFound("vendor", p.VendorID)
		}
		return apperrors.Storage("insert product", err)
	}

	return nil
}

// GetByID retrieves a product owned by vendorID.
func (r *ProductRepository) GetByID(ctx context.Context, id, vendorID int64) (p *domain.Product, err error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1 AND vendor_id = $2`

	ctx, end := database.TraceQuery(ctx, "products.get", query)
	defer func() { end(err) }()

	var row domain.Product
	err = r.pool.QueryRow(ctx, query, id, vendorID).Scan(
		&row.ID,
		&row.VendorID,
		&row.ProductName,
		&row.ImageURL,
		&row.ShortDescription,
		&row.PriceRange,
		&row.CreatedAt,
		&row.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("product", id)
		}
		return nil, apperrors.Storage("get product", err)
	}

	return &row, nil
}

// Update modifies a product owned by p.VendorID.
func (r *ProductRepository) Update(ctx context.Context, p *domain.Product) (err error) {
	query := `
		UPDATE products
		SET product_name = $1, product_image = $2, short_description = $3, price_range = $4, updated_at = $5
		WHERE id = $6 AND vendor_id = $7`

	ctx, end := database.TraceQuery(ctx, "products.update", query)
	defer func() { end(err) }()

	ct, err := r.pool.Exec(ctx, query,
		p.ProductName,
		p.ImageURL,
		p.ShortDescription,
		p.PriceRange,
		p.UpdatedAt,
		p.ID,
		p.VendorID,
	)
	if err != nil {
		return apperrors.Storage("update product", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("product", p.ID)
	}

	return nil
}

// Delete removes a product owned by vendorID.
func (r *ProductRepository) Delete(ctx context.Context, id, vendorID int64) (err error) {
	query := `DELETE FROM products WHERE id = $1 AND vendor_id = $2`

	ctx, end := database.TraceQuery(ctx, "products.delete", query)
	defer func() { end(err) }()

	ct, err := r.pool.Exec(ctx, query, id, vendorID)
	if err != nil {
		return apperrors.Storage("delete product", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("product", id)
	}

	return nil
}

// ListByVendorID returns a vendor's products, newest first.
func (r *ProductRepository) ListByVendorID(ctx context.Context, vendorID int64) (products []domain.Product, err error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE vendor_id = $1 ORDER BY created_at DESC, id DESC`

	ctx, end := database.TraceQuery(ctx, "products.list", query)
	defer func() { end(err) }()

	rows, err := r.pool.Query(ctx, query, vendorID)
	if err != nil {
		return nil, apperrors.Storage("list products", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p domain.Product

		if err = rows.Scan(
			&p.ID,
			&p.VendorID,
			&p.ProductName,
			&p.ImageURL,
			&p.ShortDescription,
			&p.PriceRange,
			&p.CreatedAt,
			&p.UpdatedAt,
		); err != nil {
			return nil, apperrors.Storage("scan product row", err)
		}

		products = append(products, p)
	}

	if err = rows.Err(); err != nil {
		return nil, apperrors.Storage("iterate product rows", err)
	}

	if products == nil {
		products = []domain.Product{}
	}

	return products, nil
}
