package billing

import (
	"strings"
	"time"

	"github.com/crm/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceStatus represents the billing lifecycle of an invoice
type InvoiceStatus string

const (
	InvoiceStatusDraft     InvoiceStatus = "draft"
	InvoiceStatusSent      InvoiceStatus = "sent"
	InvoiceStatusPaid      InvoiceStatus = "paid"
	InvoiceStatusOverdue   InvoiceStatus = "overdue"
	InvoiceStatusCancelled InvoiceStatus = "cancelled"
)

// Invoice represents a billing document with a lifecycle independent from
// quotes. Paid invoices feed an informational revenue series that is kept
// out of the authoritative total.
type Invoice struct {
	shared.BaseEntity
	Number   string          `gorm:"type:varchar(50);not null;uniqueIndex" json:"number"`
	ClientID uuid.UUID       `gorm:"type:uuid;not null;index" json:"client_id"`
	Status   InvoiceStatus   `gorm:"type:varchar(20);not null;default:'draft';index" json:"status"`
	Total    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"total"`
	DueDate  *time.Time      `json:"due_date"`
	RegionID *uuid.UUID      `gorm:"type:uuid;index" json:"region_id"`
}

// TableName returns the table name for GORM
func (Invoice) TableName() string {
	return "invoices"
}

// NewInvoice creates an invoice with required fields
func NewInvoice(number string, clientID uuid.UUID) (*Invoice, error) {
	number = strings.TrimSpace(number)
	if number == "" {
		return nil, shared.NewDomainError("INVALID_INVOICE_NUMBER", "Invoice number cannot be empty")
	}
	if clientID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CLIENT", "Invoice must reference a client")
	}
	return &Invoice{
		BaseEntity: shared.NewBaseEntity(),
		Number:     strings.ToUpper(number),
		ClientID:   clientID,
		Status:     InvoiceStatusDraft,
		Total:      decimal.Zero,
	}, nil
}

// IsPaid reports whether the invoice has been paid
func (i *Invoice) IsPaid() bool {
	return i.Status == InvoiceStatusPaid
}
