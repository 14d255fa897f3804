package crm

import (
	"strings"

	"github.com/crm/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ClientStatus represents the status of a client account
type ClientStatus string

const (
	ClientStatusActive    ClientStatus = "active"
	ClientStatusInactive  ClientStatus = "inactive"
	ClientStatusProspect  ClientStatus = "prospect"
	ClientStatusCompleted ClientStatus = "completed"
)

// Client represents a converted or directly-onboarded account
type Client struct {
	shared.BaseEntity
	Name           string          `gorm:"type:varchar(200);not null" json:"name"`
	Email          string          `gorm:"type:varchar(200);index" json:"email"`
	Phone          string          `gorm:"type:varchar(50);index" json:"phone"`
	Company        string          `gorm:"type:varchar(200)" json:"company"`
	Status         ClientStatus    `gorm:"type:varchar(20);not null;default:'prospect';index" json:"status"`
	Address        string          `gorm:"type:text" json:"address"`
	TotalValue     decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"total_value"`
	RegionID       *uuid.UUID      `gorm:"type:uuid;index" json:"region_id"`
	AssignedUserID *uuid.UUID      `gorm:"type:uuid;index" json:"assigned_user_id"`
	LeadID         *uuid.UUID      `gorm:"type:uuid" json:"lead_id"` // originating lead, when converted
}

// TableName returns the table name for GORM
func (Client) TableName() string {
	return "clients"
}

// NewClient creates a client with required fields
func NewClient(name string) (*Client, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_CLIENT_NAME", "Client name cannot be empty")
	}
	return &Client{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Status:     ClientStatusProspect,
		TotalValue: decimal.Zero,
	}, nil
}

// IsActive reports whether the client account is active
func (c *Client) IsActive() bool {
	return c.Status == ClientStatusActive
}
