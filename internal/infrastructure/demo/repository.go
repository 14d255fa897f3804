package demo

import (
	"sort"
	"time"

	"github.com/crm/backend/internal/domain/shared"
)

func sortNewestFirst[T any](rows []T, createdAt func(T) time.Time) {
	sort.SliceStable(rows, func(i, j int) bool {
		return createdAt(rows[i]).After(createdAt(rows[j]))
	})
}

func paginate[T any](rows []T, filter shared.Filter) shared.Paginated[T] {
	total := int64(len(rows))
	start := filter.Offset()
	if start > len(rows) {
		start = len(rows)
	}
	end := start + filter.Limit()
	if end > len(rows) {
		end = len(rows)
	}
	page := make([]T, end-start)
	copy(page, rows[start:end])
	return shared.NewPaginated(page, total, filter.Page, filter.PageSize)
}

func capped[T any](rows []T, limit int) []T {
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	out := make([]T, len(rows))
	copy(out, rows)
	return out
}
