// Package memory implements the repository contracts in process memory. It
// backs STORAGE_DRIVER=memory and end-to-end service tests.
package memory

import (
	"sync"
)

// Store holds every table behind one lock so that vendor deletion can
// cascade to products and reviews atomically.
type Store struct {
	mu sync.RWMutex

	vendors  map[int64]*vendorRow
	reviews  map[int64]*reviewRow
	products map[int64]*productRow

	nextVendorID  int64
	nextReviewID  int64
	nextProductID int64
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		vendors:  make(map[int64]*vendorRow),
		reviews:  make(map[int64]*reviewRow),
		products: make(map[int64]*productRow),
	}
}

// Vendors returns the vendor repository view of the store.
func (s *Store) Vendors() *VendorRepository { return &VendorRepository{store: s} }

// Reviews returns the review repository view of the store.
func (s *Store) Reviews() *ReviewRepository { return &ReviewRepository{store: s} }

// Products returns the product repository view of the store.
func (s *Store) Products() *ProductRepository { return &ProductRepository{store: s} }

// Stats returns the admin read model view of the store.
func (s *Store) Stats() *StatsRepository { return &StatsRepository{store: s} }
