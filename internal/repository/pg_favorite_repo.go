package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/scoreline/score-sync/internal/domain"
)

type pgFavoriteRepository struct {
	pool *pgxpool.Pool
}

// NewPgFavoriteRepository returns a FavoriteRepository backed by PostgreSQL.
func NewPgFavoriteRepository(pool *pgxpool.Pool) FavoriteRepository {
	return &pgFavoriteRepository{pool: pool}
}

func (r *pgFavoriteRepository) Create(ctx context.Context, f *domain.Favorite) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO favorites (id, user_id, team_name, created_at)
		VALUES ($1,$2,$3,$4)`,
		f.ID, f.UserID, f.TeamName, f.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert favorite: %w", err)
	}
	return nil
}

func (r *pgFavoriteRepository) GetByID(ctx context.Context, id string) (*domain.Favorite, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, user_id, team_name, created_at
		FROM favorites WHERE id = $1`, id)

	f, err := scanFavorite(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return f, err
}

func (r *pgFavoriteRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Favorite, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, team_name, created_at
		FROM favorites
		WHERE user_id = $1
		ORDER BY created_at ASC, id`, userID)
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	defer rows.Close()
	return scanFavorites(rows)
}

func (r *pgFavoriteRepository) ListByTeams(ctx context.Context, teams ...string) ([]*domain.Favorite, error) {
	if len(teams) == 0 {
		return []*domain.Favorite{}, nil
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, team_name, created_at
		FROM favorites
		WHERE team_name = ANY($1)
		ORDER BY created_at ASC, id`, teams)
	if err != nil {
		return nil, fmt.Errorf("list favorites by team: %w", err)
	}
	defer rows.Close()
	return scanFavorites(rows)
}

func (r *pgFavoriteRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM favorites WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete favorite: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanFavorite(row pgx.Row) (*domain.Favorite, error) {
	var f domain.Favorite
	if err := row.Scan(&f.ID, &f.UserID, &f.TeamName, &f.CreatedAt); err != nil {
		return nil, err
	}
	return &f, nil
}

func scanFavorites(rows pgx.Rows) ([]*domain.Favorite, error) {
	result := []*domain.Favorite{}
	for rows.Next() {
		f, err := scanFavorite(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, f)
	}
	return result, rows.Err()
}
