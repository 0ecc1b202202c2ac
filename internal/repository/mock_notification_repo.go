package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/scoreline/score-sync/internal/domain"
)

// MockNotificationRepository is an in-memory NotificationRepository for unit tests.
type MockNotificationRepository struct {
	mu            sync.RWMutex
	notifications []*domain.Notification

	CreateManyErr error
}

func NewMockNotificationRepository() *MockNotificationRepository {
	return &MockNotificationRepository{}
}

func (m *MockNotificationRepository) CreateMany(_ context.Context, notifications []*domain.Notification) (int, error) {
	if m.CreateManyErr != nil {
		return 0, m.CreateManyErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, n := range notifications {
		clone := *n
		m.notifications = append(m.notifications, &clone)
	}
	return len(notifications), nil
}

func (m *MockNotificationRepository) GetByID(_ context.Context, id string) (*domain.Notification, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, n := range m.notifications {
		if n.ID == id {
			clone := *n
			return &clone, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *MockNotificationRepository) ListByUser(_ context.Context, userID string) ([]*domain.Notification, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := []*domain.Notification{}
	for _, n := range m.notifications {
		if n.UserID == userID {
			clone := *n
			result = append(result, &clone)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (m *MockNotificationRepository) MarkRead(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, n := range m.notifications {
		if n.ID == id {
			n.Read = true
			return nil
		}
	}
	return domain.ErrNotFound
}

// All returns a copy of every stored notification in insertion order.
func (m *MockNotificationRepository) All() []*domain.Notification {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Notification, 0, len(m.notifications))
	for _, n := range m.notifications {
		clone := *n
		result = append(result, &clone)
	}
	return result
}
