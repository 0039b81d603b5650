package domain

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Rating is a vendor's average rating. It is null for rows that never had an
// aggregate written, which the listing engine orders after every rated vendor.
type Rating struct {
	Value decimal.Decimal
	Valid bool
}

// NewRating returns a valid rating rounded to two fractional digits.
func NewRating(d decimal.Decimal) Rating {
	return Rating{Value: d.Round(2), Valid: true}
}

// String renders the rating with two fractional digits, or "null".
func (r Rating) String() string {
	if !r.Valid {
		return "null"
	}
	return r.Value.StringFixed(2)
}

// Compare orders ratings with null below every value.
func (r Rating) Compare(o Rating) int {
	switch {
	case !r.Valid && !o.Valid:
		return 0
	case !r.Valid:
		return -1
	case !o.Valid:
		return 1
	}
	return r.Value.Cmp(o.Value)
}

// MarshalJSON renders a bare number such as 4.50, or null.
func (r Rating) MarshalJSON() ([]byte, error) {
	if !r.Valid {
		return []byte("null"), nil
	}
	return []byte(r.Value.StringFixed(2)), nil
}

// UnmarshalJSON accepts a number, a quoted number or null.
func (r *Rating) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*r = Rating{}
		return nil
	}
	d, err := decimal.NewFromString(strings.Trim(string(data), `"`))
	if err != nil {
		return fmt.Errorf("decode rating %s: %w", data, err)
	}
	*r = Rating{Value: d, Valid: true}
	return nil
}
