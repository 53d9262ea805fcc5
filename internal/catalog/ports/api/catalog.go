// Package api defines the use case interfaces exposed to the transport layer.
package api

import (
	"context"

	"filmorate/internal/catalog/domain/entities"
)

// FilmUseCase - операции над фильмами, лайками и справочниками.
type FilmUseCase interface {
	Create(ctx context.Context, in entities.FilmInput) (*entities.Film, error)
	Update(ctx context.Context, in entities.FilmInput) (*entities.Film, error)
	GetByID(ctx context.Context, id int64) (*entities.Film, error)
	FindAll(ctx context.Context) ([]*entities.Film, error)
	Delete(ctx context.Context, id int64) error
	AddLike(ctx context.Context, filmID, userID int64) error
	RemoveLike(ctx context.Context, filmID, userID int64) error
	TopFilms(ctx context.Context, count int) ([]*entities.Film, error)
	GetGenre(ctx context.Context, id int64) (*entities.Genre, error)
	ListGenres(ctx context.Context) ([]entities.Genre, error)
	GetMpa(ctx context.Context, id int64) (*entities.Mpa, error)
	ListMpa(ctx context.Context) ([]entities.Mpa, error)
}

// UserUseCase - операции над пользователями и дружбой.
type UserUseCase interface {
	Create(ctx context.Context, in entities.UserInput) (*entities.User, error)
	Update(ctx context.Context, in entities.UserInput) (*entities.User, error)
	GetByID(ctx context.Context, id int64) (*entities.User, error)
	FindAll(ctx context.Context) ([]*entities.User, error)
	Delete(ctx context.Context, id int64) error
	AddFriend(ctx context.Context, userID, friendID int64) error
	RemoveFriend(ctx context.Context, userID, friendID int64) error
	Friends(ctx context.Context, userID int64) ([]*entities.User, error)
	CommonFriends(ctx context.Context, userID, otherID int64) ([]*entities.User, error)
}
