package postgres

import (
	"fmt"
	"strings"

	"github.com/TubaAnsari/vendor-management-portal/internal/domain"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike escapes LIKE metacharacters so the term matches literally.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// orderClause returns the ORDER BY clause for a sort key. The id tie-break
// keeps results deterministic and matches domain.VendorQuery.Compare.
func orderClause(sort domain.SortKey) string {
	switch sort {
	case domain.SortRating:
		return "ORDER BY average_rating DESC NULLS LAST, id ASC"
	case domain.SortName:
		return `ORDER BY vendor_name COLLATE "C" ASC, id ASC`
	default:
		return "ORDER BY created_at DESC, id DESC"
	}
}

// buildVendorListQuery translates a listing query into SQL and its arguments.
func buildVendorListQuery(q domain.VendorQuery) (string, []any) {
	var (
		conditions []string
		args       []any
		argIndex   = 1
	)

	if q.Category != "" {
		conditions = append(conditions, fmt.Sprintf("business_category = $%d", argIndex))
		args = append(args, q.Category)
		argIndex++
	}

	if q.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(vendor_name ILIKE $%d OR description ILIKE $%d)", argIndex, argIndex))
		args = append(args, "%"+escapeLike(q.Search)+"%")
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM vendors
		%s
		%s`,
		vendorColumns, whereClause, orderClause(q.Sort),
	)

	return query, args
}
