package persistence

import (
	"strings"

	"gorm.io/gorm"

	"github.com/crm/backend/internal/domain/shared"
)

// orderableColumns whitelists columns accepted in Filter.OrderBy. Dynamic
// column names otherwise reach the SQL string unescaped.
var orderableColumns = map[string]bool{
	"created_at":  true,
	"updated_at":  true,
	"name":        true,
	"status":      true,
	"number":      true,
	"total":       true,
	"due_date":    true,
	"sku":         true,
	"category":    true,
	"quantity":    true,
	"total_value": true,
}

// applyOrder applies validated ordering, defaulting to newest first
func applyOrder(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.OrderBy != "" && orderableColumns[filter.OrderBy] {
		dir := "ASC"
		if strings.EqualFold(filter.OrderDir, "desc") {
			dir = "DESC"
		}
		return query.Order(filter.OrderBy + " " + dir)
	}
	return query.Order("created_at DESC")
}

// applyPagination applies offset and limit from the filter
func applyPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	return query.Offset(filter.Offset()).Limit(filter.Limit())
}

// applySearch adds a case-insensitive substring match over the given columns
func applySearch(query *gorm.DB, search string, columns ...string) *gorm.DB {
	if search == "" || len(columns) == 0 {
		return query
	}
	pattern := "%" + search + "%"
	clauses := make([]string, len(columns))
	args := make([]any, len(columns))
	for i, col := range columns {
		clauses[i] = col + " ILIKE ?"
		args[i] = pattern
	}
	return query.Where(strings.Join(clauses, " OR "), args...)
}
