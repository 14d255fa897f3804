package analytics

import (
	"time"

	"github.com/crm/backend/internal/domain/billing"
	"github.com/shopspring/decimal"
)

// MonthRevenue is one calendar-month bucket of the revenue trend
type MonthRevenue struct {
	Month          string          `json:"month"` // "Jan 2026"
	QuoteRevenue   decimal.Decimal `json:"quote_revenue"`
	InvoiceRevenue decimal.Decimal `json:"invoice_revenue"`
	TotalRevenue   decimal.Decimal `json:"total_revenue"`
}

// monthLabel formats a bucket key for display
func monthLabel(t time.Time) string {
	return t.Format("Jan 2006")
}

// MonthlyRevenue folds quotes and invoices into an ordered sequence of
// exactly months calendar-month buckets ending at now's month, oldest
// first, zero-filled where no rows match.
//
// Only accepted quotes and paid invoices contribute. Accepted-quote totals
// feed both QuoteRevenue and TotalRevenue; paid-invoice totals feed
// InvoiceRevenue only. Quotes are the authoritative revenue figure, the
// invoice series is informational. Rows outside the window are ignored.
func MonthlyRevenue(now time.Time, months int, quotes []billing.Quote, invoices []billing.Invoice) []MonthRevenue {
	if months < 1 {
		months = 1
	}

	windowStart := MonthsBack(now, months-1)
	index := make(map[string]int, months)
	trend := make([]MonthRevenue, months)
	for i := 0; i < months; i++ {
		bucket := windowStart.AddDate(0, i, 0)
		label := monthLabel(bucket)
		index[label] = i
		trend[i] = MonthRevenue{
			Month:          label,
			QuoteRevenue:   decimal.Zero,
			InvoiceRevenue: decimal.Zero,
			TotalRevenue:   decimal.Zero,
		}
	}

	for _, q := range quotes {
		if !q.IsAccepted() || q.CreatedAt.Before(windowStart) {
			continue
		}
		if i, ok := index[monthLabel(q.CreatedAt)]; ok {
			trend[i].QuoteRevenue = trend[i].QuoteRevenue.Add(q.Total)
			trend[i].TotalRevenue = trend[i].TotalRevenue.Add(q.Total)
		}
	}

	for _, inv := range invoices {
		if !inv.IsPaid() || inv.CreatedAt.Before(windowStart) {
			continue
		}
		if i, ok := index[monthLabel(inv.CreatedAt)]; ok {
			trend[i].InvoiceRevenue = trend[i].InvoiceRevenue.Add(inv.Total)
		}
	}

	return trend
}
