package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/scoreline/score-sync/internal/domain"
)

const matchColumns = `
		id, league, home_team, away_team, score_home, score_away,
		start_time, status, odds_home, odds_draw, odds_away,
		created_at, updated_at`

type pgMatchRepository struct {
	pool *pgxpool.Pool
}

// NewPgMatchRepository returns a MatchRepository backed by PostgreSQL.
func NewPgMatchRepository(pool *pgxpool.Pool) MatchRepository {
	return &pgMatchRepository{pool: pool}
}

func (r *pgMatchRepository) List(ctx context.Context, f domain.MatchFilter) ([]*domain.Match, error) {
	where, args := buildMatchWhere(f)

	order := " ORDER BY start_time DESC, id"
	if f.OrderByStart {
		order = " ORDER BY start_time ASC, id"
	}

	rows, err := r.pool.Query(ctx, "SELECT"+matchColumns+" FROM matches"+where+order, args...)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	defer rows.Close()
	return scanMatches(rows)
}

func (r *pgMatchRepository) Search(ctx context.Context, query string) ([]*domain.Match, error) {
	pattern := "%" + escapeLike(query) + "%"
	rows, err := r.pool.Query(ctx, `
		SELECT`+matchColumns+`
		FROM matches
		WHERE home_team ILIKE $1 OR away_team ILIKE $1
		ORDER BY start_time DESC, id`, pattern)
	if err != nil {
		return nil, fmt.Errorf("search matches: %w", err)
	}
	defer rows.Close()
	return scanMatches(rows)
}

func (r *pgMatchRepository) FindLiveByTeams(ctx context.Context, homeTeam, awayTeam string, limit int) ([]*domain.Match, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT`+matchColumns+`
		FROM matches
		WHERE home_team = $1 AND away_team = $2 AND status = 'live'
		ORDER BY start_time ASC, id ASC
		LIMIT $3`, homeTeam, awayTeam, limit)
	if err != nil {
		return nil, fmt.Errorf("find live match: %w", err)
	}
	defer rows.Close()
	return scanMatches(rows)
}

func (r *pgMatchRepository) UpdateScore(ctx context.Context, id string, home, away int) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE matches
		SET score_home = $1, score_away = $2, updated_at = NOW()
		WHERE id = $3`, home, away, id)
	if err != nil {
		return fmt.Errorf("update match score: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ---- helpers ----

func scanMatch(row pgx.Row) (*domain.Match, error) {
	var m domain.Match
	err := row.Scan(
		&m.ID, &m.League, &m.HomeTeam, &m.AwayTeam, &m.ScoreHome, &m.ScoreAway,
		&m.StartTime, &m.Status, &m.Odds.Home, &m.Odds.Draw, &m.Odds.Away,
		&m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func scanMatches(rows pgx.Rows) ([]*domain.Match, error) {
	result := []*domain.Match{}
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, m)
	}
	return result, rows.Err()
}

// buildMatchWhere builds a parameterised WHERE clause from a MatchFilter.
func buildMatchWhere(f domain.MatchFilter) (string, []any) {
	var conditions []string
	var args []any

	add := func(condition string, val any) {
		args = append(args, val)
		conditions = append(conditions, fmt.Sprintf(condition, len(args)))
	}

	if f.League != nil {
		add("league = $%d", *f.League)
	}
	if f.Status != nil {
		add("status = $%d", *f.Status)
	}

	if len(conditions) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
