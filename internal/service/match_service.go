package service

import (
	"context"
	"strings"

	"github.com/scoreline/score-sync/internal/domain"
	"github.com/scoreline/score-sync/internal/repository"
)

// MatchService serves the read-only match listings.
type MatchService struct {
	repo repository.MatchRepository
}

func NewMatchService(repo repository.MatchRepository) *MatchService {
	return &MatchService{repo: repo}
}

// List returns every match, optionally restricted to one league.
func (s *MatchService) List(ctx context.Context, league string) ([]*domain.Match, error) {
	var f domain.MatchFilter
	if league = strings.TrimSpace(league); league != "" {
		f.League = &league
	}
	return s.repo.List(ctx, f)
}

func (s *MatchService) Live(ctx context.Context) ([]*domain.Match, error) {
	status := domain.MatchLive
	return s.repo.List(ctx, domain.MatchFilter{Status: &status})
}

// Upcoming returns scheduled matches, soonest first.
func (s *MatchService) Upcoming(ctx context.Context) ([]*domain.Match, error) {
	status := domain.MatchUpcoming
	return s.repo.List(ctx, domain.MatchFilter{Status: &status, OrderByStart: true})
}

// Search matches the query case-insensitively against either team name.
func (s *MatchService) Search(ctx context.Context, query string) ([]*domain.Match, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, domain.ErrInvalidQuery
	}
	return s.repo.Search(ctx, query)
}
