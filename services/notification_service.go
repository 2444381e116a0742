package services

import (
	"context"
	"time"

	"talkalot_server/models"
	"talkalot_server/repositories"

	"github.com/google/uuid"
)

// NotificationService exposes the read side of the notification log for the
// polling client. The engine itself only appends.
type NotificationService struct {
	Notifications repositories.NotificationRepository
}

// List returns the newest notifications for a user, most recent first.
func (ns *NotificationService) List(ctx context.Context, userID string) ([]models.Notification, error) {
	return ns.Notifications.ListByUser(ctx, userID, 50)
}

// MarkAllSeen flips every unseen notification for the user to seen.
func (ns *NotificationService) MarkAllSeen(ctx context.Context, userID string) error {
	return ns.Notifications.MarkAllSeen(ctx, userID)
}

// newNotification builds a notification record with a fresh id and a sort key
// that keeps the per-user log in creation order.
func newNotification(userID, kind, message string) *models.Notification {
	id := uuid.NewString()
	createdAt := time.Now().UTC().Format(time.RFC3339Nano)
	return &models.Notification{
		UserID:    userID,
		SortKey:   createdAt + "#" + id,
		NotifID:   id,
		Kind:      kind,
		Message:   message,
		CreatedAt: createdAt,
	}
}
