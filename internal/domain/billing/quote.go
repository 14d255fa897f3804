package billing

import (
	"strings"

	"github.com/crm/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// QuoteStatus represents the acceptance lifecycle of a quote
type QuoteStatus string

const (
	QuoteStatusDraft    QuoteStatus = "draft"
	QuoteStatusSent     QuoteStatus = "sent"
	QuoteStatusAccepted QuoteStatus = "accepted"
	QuoteStatusRejected QuoteStatus = "rejected"
)

// Quote represents a priced proposal sent to a client. Accepted quotes are
// the authoritative revenue source for dashboard aggregation.
type Quote struct {
	shared.BaseEntity
	Number    string          `gorm:"type:varchar(50);not null;uniqueIndex" json:"number"`
	ClientID  uuid.UUID       `gorm:"type:uuid;not null;index" json:"client_id"`
	Status    QuoteStatus     `gorm:"type:varchar(20);not null;default:'draft';index" json:"status"`
	Subtotal  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"subtotal"`
	TaxAmount decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"tax_amount"`
	Total     decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"total"`
	RegionID  *uuid.UUID      `gorm:"type:uuid;index" json:"region_id"`
}

// TableName returns the table name for GORM
func (Quote) TableName() string {
	return "quotes"
}

// NewQuote creates a quote with required fields
func NewQuote(number string, clientID uuid.UUID) (*Quote, error) {
	number = strings.TrimSpace(number)
	if number == "" {
		return nil, shared.NewDomainError("INVALID_QUOTE_NUMBER", "Quote number cannot be empty")
	}
	if clientID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CLIENT", "Quote must reference a client")
	}
	return &Quote{
		BaseEntity: shared.NewBaseEntity(),
		Number:     strings.ToUpper(number),
		ClientID:   clientID,
		Status:     QuoteStatusDraft,
		Subtotal:   decimal.Zero,
		TaxAmount:  decimal.Zero,
		Total:      decimal.Zero,
	}, nil
}

// IsAccepted reports whether the quote was accepted by the client
func (q *Quote) IsAccepted() bool {
	return q.Status == QuoteStatusAccepted
}
