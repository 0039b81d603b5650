package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TubaAnsari/vendor-management-portal/internal/domain"
	apperrors "github.com/TubaAnsari/vendor-management-portal/pkg/errors"
)

var reviewColumnNames = []string{"id", "vendor_id", "client_name", "project_name", "rating", "comments", "created_at"}

func sampleReview() domain.Review {
	return domain.Review{
		VendorID:    7,
		ClientName:  "Ravi Kumar",
		ProjectName: strPtr("Office launch"),
		Rating:      4,
		Comments:    "Great service and on time.",
		CreatedAt:   now,
	}
}

func TestReviewRepository_Create_Success(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewReviewRepository(mock)

	rv := sampleReview()

	mock.ExpectQuery("INSERT INTO reviews").
		WithArgs(rv.VendorID, rv.ClientName, rv.ProjectName, rv.Rating, rv.Comments, rv.CreatedAt).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(31)))

	require.NoError(t, repo.Create(context.Background(), &rv))
	assert.Equal(t, int64(31), rv.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewRepository_Create_UnknownVendor(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewReviewRepository(mock)

	rv := sampleReview()

	mock.ExpectQuery("INSERT INTO reviews").
		WithArgs(rv.VendorID, rv.ClientName, rv.ProjectName, rv.Rating, rv.Comments, rv.CreatedAt).
		WillReturnError(&pgconn.PgError{Code: "23503"})

	err := repo.Create(context.Background(), &rv)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Zero(t, rv.ID)
}

func TestReviewRepository_Create_StorageError(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewReviewRepository(mock)

	rv := sampleReview()

	mock.ExpectQuery("INSERT INTO reviews").
		WithArgs(rv.VendorID, rv.ClientName, rv.ProjectName, rv.Rating, rv.Comments, rv.CreatedAt).
		WillReturnError(errors.New("disk full"))

	err := repo.Create(context.Background(), &rv)
	assert.ErrorIs(t, err, apperrors.ErrStorage)
}

func TestReviewRepository_ListByVendorID(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewReviewRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY created_at DESC, id DESC")).
		WithArgs(int64(7)).
		WillReturnRows(pgxmock.NewRows(reviewColumnNames).
			AddRow(int64(2), int64(7), "Meera", nil, 5, "Loved the decorations.", now).
			AddRow(int64(1), int64(7), "Ravi", strPtr("Launch"), 3, "Good but a bit late.", now.Add(-1)))

	reviews, err := repo.ListByVendorID(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, reviews, 2)
	assert.Equal(t, int64(2), reviews[0].ID)
	assert.Nil(t, reviews[0].ProjectName)
	require.NotNil(t, reviews[1].ProjectName)
	assert.Equal(t, "Launch", *reviews[1].ProjectName)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewRepository_ListByVendorID_Empty(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewReviewRepository(mock)

	mock.ExpectQuery("FROM reviews").
		WithArgs(int64(7)).
		WillReturnRows(pgxmock.NewRows(reviewColumnNames))

	reviews, err := repo.ListByVendorID(context.Background(), 7)
	require.NoError(t, err)
	assert.NotNil(t, reviews)
	assert.Empty(t, reviews)
}

func TestReviewRepository_Stats(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewReviewRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*), COALESCE(SUM(rating), 0)")).
		WithArgs(int64(7)).
		WillReturnRows(pgxmock.NewRows([]string{"count", "sum"}).AddRow(3, int64(13)))

	stats, err := repo.Stats(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, domain.ReviewStats{Count: 3, Sum: 13}, stats)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewRepository_Stats_Error(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewReviewRepository(mock)

	mock.ExpectQuery("FROM reviews").
		WithArgs(int64(7)).
		WillReturnError(errors.New("connection refused"))

	_, err := repo.Stats(context.Background(), 7)
	assert.ErrorIs(t, err, apperrors.ErrStorage)
}
