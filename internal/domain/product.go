package domain

import (
	"time"
)

// Product is an offering listed on a vendor's profile.
type Product struct {
	ID               int64     `json:"id"`
	VendorID         int64     `json:"vendor_id"`
	ProductName      string    `json:"product_name"`
	ImageURL         *string   `json:"product_image,omitempty"`
	ShortDescription string    `json:"short_description"`
	PriceRange       string    `json:"price_range"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// ProductUpdate carries a partial product update. Nil fields are left unchanged.
type ProductUpdate struct {
	ProductName      *string
	ImageURL         *string
	ShortDescription *string
	PriceRange       *string
}

// IsEmpty reports whether the update changes nothing.
func (u ProductUpdate) IsEmpty() bool {
	return u.ProductName == nil && u.ImageURL == nil && u.ShortDescription == nil && u.PriceRange == nil
}

// Apply copies the set fields onto p.
func (u ProductUpdate) Apply(p *Product) {
	if u.ProductName != nil {
		p.ProductName = *u.ProductName
	}
	if u.ImageURL != nil {
		img := *u.ImageURL
		p.ImageURL = &img
	}
	if u.ShortDescription != nil {
		p.ShortDescription = *u.ShortDescription
	}
	if u.PriceRange != nil {
		p.PriceRange = *u.PriceRange
	}
}
