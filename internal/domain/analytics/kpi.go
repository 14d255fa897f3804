package analytics

import (
	"time"

	"github.com/crm/backend/internal/domain/billing"
	"github.com/shopspring/decimal"
)

// KPIs holds the month-over-month dashboard indicators. Change fields for
// revenue and deal size are relative percentage changes; the acceptance
// rate change is a percentage-point difference. The asymmetry is
// deliberate: a rate already is a percentage.
type KPIs struct {
	TotalRevenue         decimal.Decimal `json:"total_revenue"`
	RevenueChange        int             `json:"revenue_change"`
	AverageDealSize      decimal.Decimal `json:"average_deal_size"`
	DealSizeChange       int             `json:"deal_size_change"`
	QuoteAcceptanceRate  int             `json:"quote_acceptance_rate"`
	AcceptanceRateChange int             `json:"acceptance_rate_change"`
}

// monthStats aggregates the quotes of one calendar month
type monthStats struct {
	accepted        int
	all             int
	acceptedRevenue decimal.Decimal
}

func (m monthStats) averageDealSize() decimal.Decimal {
	if m.accepted == 0 {
		return decimal.Zero
	}
	return m.acceptedRevenue.Div(decimal.NewFromInt(int64(m.accepted)))
}

func (m monthStats) acceptanceRate() int {
	if m.all == 0 {
		return 0
	}
	return roundPercent(float64(m.accepted) / float64(m.all))
}

// percentChange returns the rounded relative change from prev to cur.
// A zero previous value yields 0 rather than infinity; true
// infinite-growth months read as "no change". Known approximation,
// kept on purpose.
func percentChange(cur, prev decimal.Decimal) int {
	if prev.IsZero() {
		return 0
	}
	ratio, _ := cur.Sub(prev).Div(prev).Float64()
	return roundPercent(ratio)
}

// EnhancedKPIs partitions quotes into the current and previous calendar
// month relative to now and computes revenue, deal size and acceptance-rate
// indicators with their month-over-month deltas. Quotes created before the
// previous month are ignored.
func EnhancedKPIs(now time.Time, quotes []billing.Quote) KPIs {
	thisStart := StartOfMonth(now)
	lastStart := MonthsBack(now, 1)

	this := monthStats{acceptedRevenue: decimal.Zero}
	last := monthStats{acceptedRevenue: decimal.Zero}

	for _, q := range quotes {
		switch {
		case !q.CreatedAt.Before(thisStart):
			this.all++
			if q.IsAccepted() {
				this.accepted++
				this.acceptedRevenue = this.acceptedRevenue.Add(q.Total)
			}
		case !q.CreatedAt.Before(lastStart):
			last.all++
			if q.IsAccepted() {
				last.accepted++
				last.acceptedRevenue = last.acceptedRevenue.Add(q.Total)
			}
		}
	}

	thisRate := this.acceptanceRate()
	lastRate := last.acceptanceRate()

	return KPIs{
		TotalRevenue:         this.acceptedRevenue,
		RevenueChange:        percentChange(this.acceptedRevenue, last.acceptedRevenue),
		AverageDealSize:      this.averageDealSize(),
		DealSizeChange:       percentChange(this.averageDealSize(), last.averageDealSize()),
		QuoteAcceptanceRate:  thisRate,
		AcceptanceRateChange: thisRate - lastRate,
	}
}
