package demo

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/crm/backend/internal/domain/identity"
	"github.com/crm/backend/internal/domain/notification"
	"github.com/crm/backend/internal/domain/shared"
)

// NotificationRepository serves per-user fixture notifications. Read state
// is kept in memory per user so marking notifications read behaves like
// live mode for the lifetime of the process.
type NotificationRepository struct {
	data *Dataset
	now  func() time.Time

	mu   sync.Mutex
	read map[uuid.UUID]map[uuid.UUID]bool // userID -> notificationID -> read
}

// NewNotificationRepository creates a fixture-backed notification repository
func NewNotificationRepository(data *Dataset, now func() time.Time) *NotificationRepository {
	if now == nil {
		now = time.Now
	}
	return &NotificationRepository{
		data: data,
		now:  now,
		read: make(map[uuid.UUID]map[uuid.UUID]bool),
	}
}

func (r *NotificationRepository) forUser(caller identity.Identity) []notification.Notification {
	notes := r.data.NotificationsFor(caller.UserID, r.now())
	r.mu.Lock()
	defer r.mu.Unlock()
	overrides := r.read[caller.UserID]
	for i := range notes {
		if overrides[notes[i].ID] {
			notes[i].IsRead = true
		}
	}
	return notes
}

// ListForUser returns the caller's notifications, newest first
func (r *NotificationRepository) ListForUser(ctx context.Context, caller identity.Identity, onlyUnread bool, limit int) ([]notification.Notification, error) {
	var notes []notification.Notification
	for _, n := range r.forUser(caller) {
		if onlyUnread && n.IsRead {
			continue
		}
		notes = append(notes, n)
	}
	sortNewestFirst(notes, func(n notification.Notification) time.Time { return n.CreatedAt })
	return capped(notes, limit), nil
}

// CountUnread counts the caller's unread notifications
func (r *NotificationRepository) CountUnread(ctx context.Context, caller identity.Identity) (int64, error) {
	var count int64
	for _, n := range r.forUser(caller) {
		if !n.IsRead {
			count++
		}
	}
	return count, nil
}

// MarkRead marks a single notification as read
func (r *NotificationRepository) MarkRead(ctx context.Context, caller identity.Identity, id uuid.UUID) error {
	for _, n := range r.forUser(caller) {
		if n.ID == id {
			r.markRead(caller.UserID, id)
			return nil
		}
	}
	return shared.ErrNotFound
}

// MarkAllRead marks all of the caller's notifications as read
func (r *NotificationRepository) MarkAllRead(ctx context.Context, caller identity.Identity) error {
	for _, n := range r.forUser(caller) {
		r.markRead(caller.UserID, n.ID)
	}
	return nil
}

func (r *NotificationRepository) markRead(userID, id uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.read[userID] == nil {
		r.read[userID] = make(map[uuid.UUID]bool)
	}
	r.read[userID][id] = true
}

var _ notification.NotificationRepository = (*NotificationRepository)(nil)
