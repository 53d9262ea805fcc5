package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"filmorate/internal/catalog/domain/entities"
	"filmorate/internal/catalog/ports/repositories"
	"filmorate/pkg/logger"
)

const (
	querySelectGenre  = `SELECT id, name FROM genres WHERE id = $1`
	querySelectGenres = `SELECT id, name FROM genres ORDER BY id`
	queryGenreExists  = `SELECT EXISTS (SELECT 1 FROM genres WHERE id = $1)`
	querySelectMpa    = `SELECT id, name FROM mpa WHERE id = $1`
	querySelectMpaAll = `SELECT id, name FROM mpa ORDER BY id`
	queryMpaExists    = `SELECT EXISTS (SELECT 1 FROM mpa WHERE id = $1)`
)

// ReferenceRepository реализует интерфейс repositories.ReferenceData для работы с Postgres.
type ReferenceRepository struct {
	pool PgxPoolInterface
}

// NewReferenceRepository создает новый экземпляр репозитория справочников.
func NewReferenceRepository(pool PgxPoolInterface) repositories.ReferenceData {
	return &ReferenceRepository{pool: pool}
}

// GetGenreByID находит жанр по ID.
func (r *ReferenceRepository) GetGenreByID(ctx context.Context, id int64) (*entities.Genre, error) {
	var g entities.Genre
	if err := r.pool.QueryRow(ctx, querySelectGenre, id).Scan(&g.ID, &g.Name); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.NotFoundError("genre with id %d not found", id)
		}
		logger.Log(ctx).Error(ctx, "error querying genre", zap.Int64("genre_id", id), zap.Error(err))
		return nil, fmt.Errorf("error querying genre: %w", err)
	}
	return &g, nil
}

// ListGenres возвращает все жанры по возрастанию ID.
func (r *ReferenceRepository) ListGenres(ctx context.Context) ([]entities.Genre, error) {
	rows, err := r.pool.Query(ctx, querySelectGenres)
	if err != nil {
		logger.Log(ctx).Error(ctx, "error querying genres", zap.Error(err))
		return nil, fmt.Errorf("error querying genres: %w", err)
	}
	genres, err := collectGenres(rows)
	if err != nil {
		return nil, fmt.Errorf("error scanning genres: %w", err)
	}
	return genres, nil
}

// GenreExists проверяет наличие жанра.
func (r *ReferenceRepository) GenreExists(ctx context.Context, id int64) (bool, error) {
	return r.exists(ctx, queryGenreExists, id)
}

// GetMpaByID находит рейтинг по ID.
func (r *ReferenceRepository) GetMpaByID(ctx context.Context, id int64) (*entities.Mpa, error) {
	var m entities.Mpa
	if err := r.pool.QueryRow(ctx, querySelectMpa, id).Scan(&m.ID, &m.Name); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.NotFoundError("mpa with id %d not found", id)
		}
		logger.Log(ctx).Error(ctx, "error querying mpa", zap.Int64("mpa_id", id), zap.Error(err))
		return nil, fmt.Errorf("error querying mpa: %w", err)
	}
	return &m, nil
}

// ListMpa возвращает все рейтинги по возрастанию ID.
func (r *ReferenceRepository) ListMpa(ctx context.Context) ([]entities.Mpa, error) {
	rows, err := r.pool.Query(ctx, querySelectMpaAll)
	if err != nil {
		logger.Log(ctx).Error(ctx, "error querying mpa", zap.Error(err))
		return nil, fmt.Errorf("error querying mpa: %w", err)
	}
	defer rows.Close()

	list := make([]entities.Mpa, 0)
	for rows.Next() {
		var m entities.Mpa
		if err := rows.Scan(&m.ID, &m.Name); err != nil {
			return nil, fmt.Errorf("error scanning mpa: %w", err)
		}
		list = append(list, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating mpa: %w", err)
	}
	return list, nil
}

// MpaExists проверяет наличие рейтинга.
func (r *ReferenceRepository) MpaExists(ctx context.Context, id int64) (bool, error) {
	return r.exists(ctx, queryMpaExists, id)
}

func (r *ReferenceRepository) exists(ctx context.Context, query string, id int64) (bool, error) {
	var ok bool
	if err := r.pool.QueryRow(ctx, query, id).Scan(&ok); err != nil {
		logger.Log(ctx).Error(ctx, "error checking reference", zap.Int64("id", id), zap.Error(err))
		return false, fmt.Errorf("error checking reference: %w", err)
	}
	return ok, nil
}
