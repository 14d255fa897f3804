package crm

import (
	"strings"

	"github.com/crm/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// LeadStatus represents the lifecycle stage of a lead
type LeadStatus string

const (
	LeadStatusNew       LeadStatus = "new"
	LeadStatusContacted LeadStatus = "contacted"
	LeadStatusOffer     LeadStatus = "offer"
	LeadStatusWon       LeadStatus = "won"
	LeadStatusLost      LeadStatus = "lost"
	LeadStatusWaiting   LeadStatus = "waiting"
)

// LeadSource describes where a lead came from
type LeadSource string

const (
	LeadSourceWeb       LeadSource = "web"
	LeadSourceReferral  LeadSource = "referral"
	LeadSourcePhone     LeadSource = "phone"
	LeadSourceExhibit   LeadSource = "exhibition"
	LeadSourceShowroom  LeadSource = "showroom"
	LeadSourceOtherType LeadSource = "other"
)

// Lead represents a prospective, not-yet-converted contact
type Lead struct {
	shared.BaseEntity
	Name           string     `gorm:"type:varchar(200);not null" json:"name"`
	Email          string     `gorm:"type:varchar(200);index" json:"email"`
	Phone          string     `gorm:"type:varchar(50);index" json:"phone"`
	Company        string     `gorm:"type:varchar(200)" json:"company"`
	Status         LeadStatus `gorm:"type:varchar(20);not null;default:'new';index" json:"status"`
	SourceType     LeadSource `gorm:"type:varchar(30)" json:"source_type"`
	Notes          string     `gorm:"type:text" json:"notes"`
	RegionID       *uuid.UUID `gorm:"type:uuid;index" json:"region_id"`
	AssignedUserID *uuid.UUID `gorm:"type:uuid;index" json:"assigned_user_id"`
}

// TableName returns the table name for GORM
func (Lead) TableName() string {
	return "leads"
}

// NewLead creates a lead with required fields. Status transitions along the
// funnel are enforced by the backing store, not here.
func NewLead(name string) (*Lead, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_LEAD_NAME", "Lead name cannot be empty")
	}
	return &Lead{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Status:     LeadStatusNew,
	}, nil
}

// IsContactedOrLater reports whether the lead has reached the contacted
// funnel stage. Stages are cumulative: a won lead counts as contacted.
func (l *Lead) IsContactedOrLater() bool {
	switch l.Status {
	case LeadStatusContacted, LeadStatusOffer, LeadStatusWon:
		return true
	}
	return false
}

// IsOfferOrLater reports whether an offer has been sent to the lead
func (l *Lead) IsOfferOrLater() bool {
	return l.Status == LeadStatusOffer || l.Status == LeadStatusWon
}

// IsWon reports whether the lead converted
func (l *Lead) IsWon() bool {
	return l.Status == LeadStatusWon
}
