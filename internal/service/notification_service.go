package service

import (
	"context"

	"github.com/scoreline/score-sync/internal/domain"
	"github.com/scoreline/score-sync/internal/repository"
)

// NotificationService exposes a user's notification inbox.
type NotificationService struct {
	repo repository.NotificationRepository
}

func NewNotificationService(repo repository.NotificationRepository) *NotificationService {
	return &NotificationService{repo: repo}
}

// List returns the user's notifications, newest first.
func (s *NotificationService) List(ctx context.Context, userID string) ([]*domain.Notification, error) {
	return s.repo.ListByUser(ctx, userID)
}

// MarkRead flips the read flag. Another user's notification and a malformed
// id are reported as not found.
func (s *NotificationService) MarkRead(ctx context.Context, userID, id string) error {
	if !isUUID(id) {
		return domain.ErrNotFound
	}
	n, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if n.UserID != userID {
		return domain.ErrNotFound
	}
	if n.Read {
		return nil
	}
	return s.repo.MarkRead(ctx, id)
}
