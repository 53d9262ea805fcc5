package postgres

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"filmorate/internal/catalog/domain/entities"
	"filmorate/internal/catalog/ports/repositories"
	"filmorate/pkg/logger"
)

const (
	queryInsertLike = `
        INSERT INTO film_likes (film_id, user_id)
        VALUES ($1, $2)
        ON CONFLICT (film_id, user_id) DO NOTHING
    `
	queryDeleteLike = `DELETE FROM film_likes WHERE film_id = $1 AND user_id = $2`
)

// LikeRepository реализует интерфейс repositories.LikeRepository для работы с Postgres.
type LikeRepository struct {
	pool PgxPoolInterface
}

// NewLikeRepository создает новый экземпляр репозитория лайков.
func NewLikeRepository(pool PgxPoolInterface) repositories.LikeRepository {
	return &LikeRepository{pool: pool}
}

// AddLike добавляет лайк. Возвращает false, если лайк уже был.
func (r *LikeRepository) AddLike(ctx context.Context, filmID, userID int64) (bool, error) {
	log := logger.Log(ctx).With(zap.String("repository", "like"), zap.String("method", "AddLike"),
		zap.Int64("film_id", filmID), zap.Int64("user_id", userID))

	tag, err := r.pool.Exec(ctx, queryInsertLike, filmID, userID)
	if err != nil {
		err = translateError(err, "film %d or user %d not found", filmID, userID)
		if errors.Is(err, entities.ErrNotFound) {
			log.Debug(ctx, "like parties not found", zap.Error(err))
			return false, err
		}
		log.Error(ctx, "error adding like", zap.Error(err))
		return false, fmt.Errorf("error adding like: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// RemoveLike удаляет лайк. Возвращает false, если лайка не было.
func (r *LikeRepository) RemoveLike(ctx context.Context, filmID, userID int64) (bool, error) {
	log := logger.Log(ctx).With(zap.String("repository", "like"), zap.String("method", "RemoveLike"),
		zap.Int64("film_id", filmID), zap.Int64("user_id", userID))

	tag, err := r.pool.Exec(ctx, queryDeleteLike, filmID, userID)
	if err != nil {
		log.Error(ctx, "error removing like", zap.Error(err))
		return false, fmt.Errorf("error removing like: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}
