package analytics

import (
	"github.com/crm/backend/internal/domain/crm"
)

// Funnel stage names, reported in fixed order
const (
	StageNew       = "New"
	StageContacted = "Contacted"
	StageOffer     = "Offer sent"
	StageWon       = "Won"
)

// FunnelStage is one cumulative stage of the sales funnel
type FunnelStage struct {
	Name       string `json:"name"`
	Count      int    `json:"count"`
	Percentage int    `json:"percentage"`
}

// Funnel is the sales funnel computed over a trailing lead window
type Funnel struct {
	TotalLeads     int           `json:"total_leads"`
	Stages         []FunnelStage `json:"stages"`
	ConversionRate int           `json:"conversion_rate"`
}

// SalesFunnel classifies leads into four cumulative stage counts. Stages
// are non-exclusive: a won lead counts in every stage. Percentages are
// whole numbers and defined as 0 when there are no leads. ConversionRate
// duplicates the won-stage percentage as a top-level convenience field.
func SalesFunnel(leads []crm.Lead) Funnel {
	total := len(leads)

	var contacted, offer, won int
	for _, l := range leads {
		if l.IsContactedOrLater() {
			contacted++
		}
		if l.IsOfferOrLater() {
			offer++
		}
		if l.IsWon() {
			won++
		}
	}

	pct := func(count int) int {
		if total == 0 {
			return 0
		}
		return roundPercent(float64(count) / float64(total))
	}

	return Funnel{
		TotalLeads: total,
		Stages: []FunnelStage{
			{Name: StageNew, Count: total, Percentage: pct(total)},
			{Name: StageContacted, Count: contacted, Percentage: pct(contacted)},
			{Name: StageOffer, Count: offer, Percentage: pct(offer)},
			{Name: StageWon, Count: won, Percentage: pct(won)},
		},
		ConversionRate: pct(won),
	}
}
