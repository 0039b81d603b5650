package domain

import (
	"time"
)

// Vendor represents a registered business with its cached rating aggregate.
type Vendor struct {
	ID               int64     `json:"id"`
	VendorName       string    `json:"vendor_name"`
	OwnerName        string    `json:"owner_name"`
	ContactNumber    string    `json:"contact_number"`
	Email            string    `json:"email"`
	BusinessCategory string    `json:"business_category"`
	City             string    `json:"city"`
	Description      string    `json:"description"`
	LogoURL          *string   `json:"logo_url,omitempty"`
	PasswordHash     string    `json:"-"`
	AverageRating    Rating    `json:"average_rating"`
	ReviewCount      int       `json:"review_count"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// VendorUpdate carries a partial profile update. Nil fields are left unchanged.
type VendorUpdate struct {
	VendorName       *string
	OwnerName        *string
	ContactNumber    *string
	BusinessCategory *string
	City             *string
	Description      *string
	LogoURL          *string
}

// IsEmpty reports whether the update changes nothing.
func (u VendorUpdate) IsEmpty() bool {
	return u.VendorName == nil && u.OwnerName == nil && u.ContactNumber == nil &&
		u.BusinessCategory == nil && u.City == nil && u.Description == nil && u.LogoURL == nil
}

// Apply copies the set fields onto v.
func (u VendorUpdate) Apply(v *Vendor) {
	if u.VendorName != nil {
		v.VendorName = *u.VendorName
	}
	if u.OwnerName != nil {
		v.OwnerName = *u.OwnerName
	}
	if u.ContactNumber != nil {
		v.ContactNumber = *u.ContactNumber
	}
	if u.BusinessCategory != nil {
		v.BusinessCategory = *u.BusinessCategory
	}
	if u.City != nil {
		v.City = *u.City
	}
	if u.Description != nil {
		v.Description = *u.Description
	}
	if u.LogoURL != nil {
		logo := *u.LogoURL
		v.LogoURL = &logo
	}
}

// VendorSummary is a vendor row as shown in the admin listing.
type VendorSummary struct {
	Vendor
	ProductCount int `json:"product_count"`
}

// VendorDetail is a vendor together with its products, and for admins its reviews.
type VendorDetail struct {
	Vendor   *Vendor   `json:"vendor"`
	Products []Product `json:"products"`
	Reviews  []Review  `json:"reviews,omitempty"`
}

// PortalTotals holds portal-wide counters for the admin dashboard.
type PortalTotals struct {
	Vendors       int    `json:"vendors"`
	Reviews       int    `json:"reviews"`
	Products      int    `json:"products"`
	AverageRating Rating `json:"average_rating"`
}
