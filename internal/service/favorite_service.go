package service

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/scoreline/score-sync/internal/domain"
	"github.com/scoreline/score-sync/internal/repository"
)

const maxTeamNameLen = 100

// FavoriteService manages a user's starred teams.
type FavoriteService struct {
	repo   repository.FavoriteRepository
	logger *zap.Logger
}

func NewFavoriteService(repo repository.FavoriteRepository, logger *zap.Logger) *FavoriteService {
	return &FavoriteService{repo: repo, logger: logger}
}

func (s *FavoriteService) List(ctx context.Context, userID string) ([]*domain.Favorite, error) {
	return s.repo.ListByUser(ctx, userID)
}

// Add stars a team for the user. Starring the same team twice creates a
// second row.
func (s *FavoriteService) Add(ctx context.Context, userID string, req domain.AddFavoriteRequest) (*domain.Favorite, error) {
	req.Normalize()
	if n := utf8.RuneCountInString(req.TeamName); n == 0 || n > maxTeamNameLen {
		return nil, domain.ErrInvalidTeamName
	}

	f := &domain.Favorite{
		ID:        uuid.New().String(),
		UserID:    userID,
		TeamName:  req.TeamName,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, f); err != nil {
		return nil, fmt.Errorf("persist favorite: %w", err)
	}
	s.logger.Debug("favorite added", zap.String("user_id", userID), zap.String("team_name", f.TeamName))
	return f, nil
}

// Remove deletes one of the user's favorites. Another user's favorite and a
// malformed id are reported as not found.
func (s *FavoriteService) Remove(ctx context.Context, userID, id string) error {
	if !isUUID(id) {
		return domain.ErrNotFound
	}
	f, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if f.UserID != userID {
		return domain.ErrNotFound
	}
	return s.repo.Delete(ctx, id)
}
