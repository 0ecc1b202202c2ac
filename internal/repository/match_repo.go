package repository

import (
	"context"

	"github.com/scoreline/score-sync/internal/domain"
)

// MatchRepository defines the persistence operations on matches.
// Rows are created by an external ingestion process; this service only reads
// them and overwrites live scores.
type MatchRepository interface {
	List(ctx context.Context, filter domain.MatchFilter) ([]*domain.Match, error)
	Search(ctx context.Context, query string) ([]*domain.Match, error)
	// FindLiveByTeams returns live matches with exactly these team names,
	// ordered by (start_time, id). At most limit rows are returned.
	FindLiveByTeams(ctx context.Context, homeTeam, awayTeam string, limit int) ([]*domain.Match, error)
	// UpdateScore overwrites both score columns. It returns domain.ErrNotFound
	// when no row was affected.
	UpdateScore(ctx context.Context, id string, home, away int) error
}
