package repository

import (
	"context"
	"sync"

	"github.com/scoreline/score-sync/internal/domain"
)

// MockFavoriteRepository is an in-memory FavoriteRepository for unit tests.
// Rows keep insertion order.
type MockFavoriteRepository struct {
	mu        sync.RWMutex
	favorites []*domain.Favorite

	ListByTeamsErr error
	CreateErr      error
}

func NewMockFavoriteRepository() *MockFavoriteRepository {
	return &MockFavoriteRepository{}
}

func (m *MockFavoriteRepository) Create(_ context.Context, f *domain.Favorite) error {
	if m.CreateErr != nil {
		return m.CreateErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	clone := *f
	m.favorites = append(m.favorites, &clone)
	return nil
}

func (m *MockFavoriteRepository) GetByID(_ context.Context, id string) (*domain.Favorite, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, f := range m.favorites {
		if f.ID == id {
			clone := *f
			return &clone, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *MockFavoriteRepository) ListByUser(_ context.Context, userID string) ([]*domain.Favorite, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := []*domain.Favorite{}
	for _, f := range m.favorites {
		if f.UserID == userID {
			clone := *f
			result = append(result, &clone)
		}
	}
	return result, nil
}

func (m *MockFavoriteRepository) ListByTeams(_ context.Context, teams ...string) ([]*domain.Favorite, error) {
	if m.ListByTeamsErr != nil {
		return nil, m.ListByTeamsErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := []*domain.Favorite{}
	for _, f := range m.favorites {
		for _, team := range teams {
			if f.TeamName == team {
				clone := *f
				result = append(result, &clone)
				break
			}
		}
	}
	return result, nil
}

func (m *MockFavoriteRepository) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, f := range m.favorites {
		if f.ID == id {
			m.favorites = append(m.favorites[:i], m.favorites[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}
