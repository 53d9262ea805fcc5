package repositories

import (
	"context"

	"filmorate/internal/catalog/domain/entities"
)

// FilmRepository определяет интерфейс для работы с хранилищем фильмов.
// Лайки в Update не перезаписываются, ими управляет LikeRepository.
type FilmRepository interface {
	Create(ctx context.Context, film *entities.Film) (*entities.Film, error)
	Update(ctx context.Context, film *entities.Film) (*entities.Film, error)
	GetByID(ctx context.Context, id int64) (*entities.Film, error)
	FindAll(ctx context.Context) ([]*entities.Film, error)
	DeleteByID(ctx context.Context, id int64) error
}

// LikeRepository управляет отношением лайков (film_id, user_id).
// Методы возвращают true, если отношение изменилось.
type LikeRepository interface {
	AddLike(ctx context.Context, filmID, userID int64) (bool, error)
	RemoveLike(ctx context.Context, filmID, userID int64) (bool, error)
}
