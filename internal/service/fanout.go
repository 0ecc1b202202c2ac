package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/scoreline/score-sync/internal/domain"
	"github.com/scoreline/score-sync/internal/repository"
)

// NotificationFanout writes one goal notification per favorite row naming
// either team. Duplicate favorites each get their own notification and no
// check is made against existing unread notifications.
type NotificationFanout struct {
	favorites     repository.FavoriteRepository
	notifications repository.NotificationRepository
	now           func() time.Time
}

func NewNotificationFanout(
	favorites repository.FavoriteRepository,
	notifications repository.NotificationRepository,
) *NotificationFanout {
	return &NotificationFanout{
		favorites:     favorites,
		notifications: notifications,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// NotifyInterested returns the number of notifications created.
func (f *NotificationFanout) NotifyInterested(ctx context.Context, matchID, homeTeam, awayTeam string) (int, error) {
	interested, err := f.favorites.ListByTeams(ctx, homeTeam, awayTeam)
	if err != nil {
		return 0, fmt.Errorf("list interested favorites: %w", err)
	}
	if len(interested) == 0 {
		return 0, nil
	}

	now := f.now()
	batch := make([]*domain.Notification, len(interested))
	for i, fav := range interested {
		batch[i] = &domain.Notification{
			ID:        uuid.New().String(),
			UserID:    fav.UserID,
			MatchID:   matchID,
			Kind:      domain.NotificationGoal,
			Read:      false,
			CreatedAt: now,
		}
	}

	created, err := f.notifications.CreateMany(ctx, batch)
	if err != nil {
		return 0, fmt.Errorf("insert goal notifications: %w", err)
	}
	return created, nil
}
