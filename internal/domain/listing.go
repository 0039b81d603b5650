package domain

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// SortKey selects the ordering of a vendor listing.
type SortKey string

// Supported listing orders.
const (
	SortRating SortKey = "rating"
	SortNewest SortKey = "newest"
	SortName   SortKey = "name"

	DefaultSort = SortNewest
)

// ErrUnknownSort is returned for a sort key outside ValidSortKeys.
var ErrUnknownSort = errors.New("unknown sort key")

// ValidSortKeys returns the accepted listing orders.
func ValidSortKeys() []SortKey {
	return []SortKey{SortRating, SortNewest, SortName}
}

// VendorQuery is the normalized form of a listing request. Build it with
// NewVendorQuery so that blank filters are dropped and the sort is checked.
type VendorQuery struct {
	Category string
	Search   string
	Sort     SortKey
}

// ListOption is one filter or ordering of a listing request.
type ListOption interface {
	apply(q *VendorQuery) error
}

// CategoryFilter restricts the listing to an exact business category.
// An empty category is ignored.
type CategoryFilter string

func (f CategoryFilter) apply(q *VendorQuery) error {
	q.Category = string(f)
	return nil
}

// SearchFilter keeps vendors whose name or description contains the term,
// ignoring case. A blank term is ignored.
type SearchFilter string

func (f SearchFilter) apply(q *VendorQuery) error {
	q.Search = strings.TrimSpace(string(f))
	return nil
}

// SortBy selects the listing order. An empty value keeps DefaultSort.
type SortBy string

func (s SortBy) apply(q *VendorQuery) error {
	key := SortKey(strings.TrimSpace(string(s)))
	switch key {
	case "":
		q.Sort = DefaultSort
	case SortRating, SortNewest, SortName:
		q.Sort = key
	default:
		return fmt.Errorf("%w: %q", ErrUnknownSort, string(s))
	}
	return nil
}

// NewVendorQuery folds the options into a query. Later options override
// earlier ones of the same kind.
func NewVendorQuery(opts ...ListOption) (VendorQuery, error) {
	q := VendorQuery{Sort: DefaultSort}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt.apply(&q); err != nil {
			return VendorQuery{}, err
		}
	}
	return q, nil
}

// Matches reports whether v passes the category and search filters.
func (q VendorQuery) Matches(v *Vendor) bool {
	if q.Category != "" && v.BusinessCategory != q.Category {
		return false
	}
	if q.Search == "" {
		return true
	}
	term := lower(q.Search)
	return strings.Contains(lower(v.VendorName), term) || strings.Contains(lower(v.Description), term)
}

// Compare orders two vendors the way the listing returns them. Names compare
// by bytes, as under the C collation. Every order ends with the id so results
// are deterministic.
func (q VendorQuery) Compare(a, b *Vendor) int {
	switch q.Sort {
	case SortRating:
		if c := b.AverageRating.Compare(a.AverageRating); c != 0 {
			return c
		}
		return cmpInt64(a.ID, b.ID)
	case SortName:
		if c := strings.Compare(a.VendorName, b.VendorName); c != 0 {
			return c
		}
		return cmpInt64(a.ID, b.ID)
	default:
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmpInt64(b.ID, a.ID)
	}
}

// Less reports whether a is listed before b.
func (q VendorQuery) Less(a, b *Vendor) bool {
	return q.Compare(a, b) < 0
}

// CacheKey returns a stable key for caching the listing result. Search terms
// that differ only in letter case share a key.
func (q VendorQuery) CacheKey() string {
	sort := q.Sort
	if sort == "" {
		sort = DefaultSort
	}
	v := url.Values{}
	v.Set("category", q.Category)
	v.Set("search", lower(q.Search))
	v.Set("sort", string(sort))
	return v.Encode()
}

// lower maps s to lower case rune by rune, the comparison ILIKE performs.
// Special foldings such as ß to ss are not applied.
func lower(s string) string {
	return cases.Lower(language.Und).String(s)
}

func cmpInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
