package repository

import (
	"context"

	"github.com/scoreline/score-sync/internal/domain"
)

// NotificationRepository defines the persistence operations on notifications.
// Notifications are never deleted here; only the read flag changes.
type NotificationRepository interface {
	// CreateMany inserts all rows in one round trip and returns the count written.
	CreateMany(ctx context.Context, notifications []*domain.Notification) (int, error)
	GetByID(ctx context.Context, id string) (*domain.Notification, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Notification, error)
	MarkRead(ctx context.Context, id string) error
}
