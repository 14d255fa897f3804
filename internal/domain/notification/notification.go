package notification

import (
	"context"

	"github.com/crm/backend/internal/domain/identity"
	"github.com/crm/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Notification is a per-user message with a weak back-reference to the
// entity it concerns. The reference is used for navigation only.
type Notification struct {
	shared.BaseEntity
	UserID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	Title      string     `gorm:"type:varchar(200);not null" json:"title"`
	Message    string     `gorm:"type:text" json:"message"`
	IsRead     bool       `gorm:"not null;default:false;index" json:"is_read"`
	EntityType string     `gorm:"type:varchar(30)" json:"entity_type"`
	EntityID   *uuid.UUID `gorm:"type:uuid" json:"entity_id"`
}

// TableName returns the table name for GORM
func (Notification) TableName() string {
	return "notifications"
}

// NotificationRepository is the gateway for notifications. MarkRead is the
// single mutation this module owns.
type NotificationRepository interface {
	ListForUser(ctx context.Context, caller identity.Identity, onlyUnread bool, limit int) ([]Notification, error)
	CountUnread(ctx context.Context, caller identity.Identity) (int64, error)
	MarkRead(ctx context.Context, caller identity.Identity, id uuid.UUID) error
	MarkAllRead(ctx context.Context, caller identity.Identity) error
}
