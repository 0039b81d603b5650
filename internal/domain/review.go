package domain

import (
	"time"
)

// Rating bounds accepted for a review.
const (
	MinReviewRating = 1
	MaxReviewRating = 5
)

// Review represents a client review of a vendor.
type Review struct {
	ID          int64     `json:"id"`
	VendorID    int64     `json:"vendor_id"`
	ClientName  string    `json:"client_name"`
	ProjectName *string   `json:"project_name,omitempty"`
	Rating      int       `json:"rating"`
	Comments    string    `json:"comments"`
	CreatedAt   time.Time `json:"created_at"`
}

// IsValidRating reports whether r is an accepted review rating.
func IsValidRating(r int) bool {
	return r >= MinReviewRating && r <= MaxReviewRating
}
