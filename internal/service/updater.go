package service

import (
	"context"

	"github.com/scoreline/score-sync/internal/repository"
)

// ScoreUpdater overwrites a match's score. There is no version check: when
// two runs overlap the last write wins, and previous scores are not kept.
type ScoreUpdater struct {
	matches repository.MatchRepository
}

func NewScoreUpdater(matches repository.MatchRepository) *ScoreUpdater {
	return &ScoreUpdater{matches: matches}
}

func (u *ScoreUpdater) ApplyScore(ctx context.Context, matchID string, home, away int) error {
	return u.matches.UpdateScore(ctx, matchID, home, away)
}
