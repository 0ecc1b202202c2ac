package service

import (
	"context"
	"fmt"

	"github.com/scoreline/score-sync/internal/domain"
	"github.com/scoreline/score-sync/internal/repository"
)

// Resolution is the stored match a feed record maps to.
type Resolution struct {
	Match *domain.Match
	// Ambiguous is set when more than one live match carries the same team
	// pair. Match is then the first by (start_time, id) and must not be written.
	Ambiguous bool
}

// MatchResolver maps feed records to stored live matches by exact,
// case-sensitive team names.
type MatchResolver struct {
	matches repository.MatchRepository
}

func NewMatchResolver(matches repository.MatchRepository) *MatchResolver {
	return &MatchResolver{matches: matches}
}

// Resolve returns domain.ErrNotFound when no live match has these names.
func (r *MatchResolver) Resolve(ctx context.Context, rec domain.FeedRecord) (Resolution, error) {
	// Two rows are enough to detect ambiguity.
	found, err := r.matches.FindLiveByTeams(ctx, rec.HomeTeam, rec.AwayTeam, 2)
	if err != nil {
		return Resolution{}, fmt.Errorf("resolve %s v %s: %w", rec.HomeTeam, rec.AwayTeam, err)
	}
	if len(found) == 0 {
		return Resolution{}, domain.ErrNotFound
	}
	return Resolution{Match: found[0], Ambiguous: len(found) > 1}, nil
}
