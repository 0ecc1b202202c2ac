package repository

import (
	"context"

	"github.com/scoreline/score-sync/internal/domain"
)

// FavoriteRepository defines the persistence operations on favorites.
type FavoriteRepository interface {
	Create(ctx context.Context, f *domain.Favorite) error
	GetByID(ctx context.Context, id string) (*domain.Favorite, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Favorite, error)
	// ListByTeams returns every favorite whose team name equals one of teams.
	// Duplicate (user, team) rows are all returned.
	ListByTeams(ctx context.Context, teams ...string) ([]*domain.Favorite, error)
	Delete(ctx context.Context, id string) error
}
