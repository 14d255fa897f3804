package persistence

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/crm/backend/internal/domain/identity"
	"github.com/crm/backend/internal/domain/notification"
	"github.com/crm/backend/internal/domain/shared"
)

// GormNotificationRepository implements notification.NotificationRepository
// using GORM. Notifications are always scoped to the caller's own user ID,
// independent of role.
type GormNotificationRepository struct {
	db  *gorm.DB
	log *zap.Logger
}

// NewGormNotificationRepository creates a new GormNotificationRepository
func NewGormNotificationRepository(db *gorm.DB, log *zap.Logger) *GormNotificationRepository {
	return &GormNotificationRepository{db: db, log: log}
}

// ListForUser returns the caller's notifications, newest first
func (r *GormNotificationRepository) ListForUser(ctx context.Context, caller identity.Identity, onlyUnread bool, limit int) ([]notification.Notification, error) {
	query := r.db.WithContext(ctx).Where("user_id = ?", caller.UserID)
	if onlyUnread {
		query = query.Where("is_read = ?", false)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	var notifications []notification.Notification
	if err := query.Order("created_at DESC").Find(&notifications).Error; err != nil {
		return nil, classify(err)
	}
	return notifications, nil
}

// CountUnread counts the caller's unread notifications
func (r *GormNotificationRepository) CountUnread(ctx context.Context, caller identity.Identity) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&notification.Notification{}).
		Where("user_id = ? AND is_read = ?", caller.UserID, false).
		Count(&count).Error; err != nil {
		return 0, classify(err)
	}
	return count, nil
}

// MarkRead marks a single notification as read. The user_id restriction
// keeps one user from acknowledging another user's notifications.
func (r *GormNotificationRepository) MarkRead(ctx context.Context, caller identity.Identity, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Model(&notification.Notification{}).
		Where("id = ? AND user_id = ?", id, caller.UserID).
		Update("is_read", true)
	if result.Error != nil {
		return classify(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// MarkAllRead marks all of the caller's notifications as read
func (r *GormNotificationRepository) MarkAllRead(ctx context.Context, caller identity.Identity) error {
	err := r.db.WithContext(ctx).
		Model(&notification.Notification{}).
		Where("user_id = ? AND is_read = ?", caller.UserID, false).
		Update("is_read", true).Error
	return classify(err)
}

var _ notification.NotificationRepository = (*GormNotificationRepository)(nil)
