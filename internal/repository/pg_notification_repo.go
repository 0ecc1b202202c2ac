package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/scoreline/score-sync/internal/domain"
)

var notificationCopyColumns = []string{"id", "user_id", "match_id", "type", "read", "created_at"}

type pgNotificationRepository struct {
	pool *pgxpool.Pool
}

// NewPgNotificationRepository returns a NotificationRepository backed by PostgreSQL.
func NewPgNotificationRepository(pool *pgxpool.Pool) NotificationRepository {
	return &pgNotificationRepository{pool: pool}
}

// CreateMany writes all rows with the COPY protocol. COPY is all-or-nothing,
// so a failure leaves no partial fan-out behind.
func (r *pgNotificationRepository) CreateMany(ctx context.Context, notifications []*domain.Notification) (int, error) {
	if len(notifications) == 0 {
		return 0, nil
	}

	src := pgx.CopyFromSlice(len(notifications), func(i int) ([]any, error) {
		n := notifications[i]
		id, err := uuid.Parse(n.ID)
		if err != nil {
			return nil, fmt.Errorf("notification id %q: %w", n.ID, err)
		}
		matchID, err := uuid.Parse(n.MatchID)
		if err != nil {
			return nil, fmt.Errorf("match id %q: %w", n.MatchID, err)
		}
		return []any{id, n.UserID, matchID, string(n.Kind), n.Read, n.CreatedAt}, nil
	})

	copied, err := r.pool.CopyFrom(ctx, pgx.Identifier{"notifications"}, notificationCopyColumns, src)
	if err != nil {
		return 0, fmt.Errorf("copy notifications: %w", err)
	}
	return int(copied), nil
}

func (r *pgNotificationRepository) GetByID(ctx context.Context, id string) (*domain.Notification, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, user_id, match_id, type, read, created_at
		FROM notifications WHERE id = $1`, id)

	n, err := scanNotification(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return n, err
}

func (r *pgNotificationRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Notification, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, match_id, type, read, created_at
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC, id`, userID)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()

	result := []*domain.Notification{}
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, n)
	}
	return result, rows.Err()
}

func (r *pgNotificationRepository) MarkRead(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `UPDATE notifications SET read = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// scanNotification reads a single notification row from any pgx row type.
func scanNotification(row pgx.Row) (*domain.Notification, error) {
	var n domain.Notification
	if err := row.Scan(&n.ID, &n.UserID, &n.MatchID, &n.Kind, &n.Read, &n.CreatedAt); err != nil {
		return nil, err
	}
	return &n, nil
}
