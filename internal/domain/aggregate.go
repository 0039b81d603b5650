package domain

import (
	"github.com/shopspring/decimal"
)

// Aggregate holds the denormalized rating fields cached on a vendor row.
type Aggregate struct {
	AverageRating decimal.Decimal `json:"average_rating"`
	ReviewCount   int             `json:"review_count"`
}

// ReviewStats is the raw input of an aggregate: how many reviews a vendor has
// and the sum of their ratings.
type ReviewStats struct {
	Count int
	Sum   int64
}

// ComputeAggregate derives the aggregate from fresh review statistics. The
// average is rounded half away from zero to two decimals and is 0.00 when
// there are no reviews.
func ComputeAggregate(count int, sum int64) Aggregate {
	if count <= 0 {
		return Aggregate{AverageRating: decimal.Zero, ReviewCount: 0}
	}
	avg := decimal.NewFromInt(sum).Div(decimal.NewFromInt(int64(count))).Round(2)
	return Aggregate{AverageRating: avg, ReviewCount: count}
}

// Rating returns the average as a non-null vendor rating.
func (a Aggregate) Rating() Rating {
	return NewRating(a.AverageRating)
}
