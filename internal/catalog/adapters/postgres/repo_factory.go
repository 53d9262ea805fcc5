package postgres

import (
	"filmorate/internal/catalog/ports/repositories"
)

// RepositoryFactory создает все необходимые репозитории для работы с PostgreSQL.
type RepositoryFactory struct {
	filmRepo repositories.FilmRepository
	likeRepo repositories.LikeRepository
	userRepo repositories.UserRepository
	refs     repositories.ReferenceData
}

var _ repositories.Factory = (*RepositoryFactory)(nil)

// NewRepositoryFactory создает новую фабрику репозиториев.
func NewRepositoryFactory(pool PgxPoolInterface) *RepositoryFactory {
	return &RepositoryFactory{
		filmRepo: NewFilmRepository(pool),
		likeRepo: NewLikeRepository(pool),
		userRepo: NewUserRepository(pool),
		refs:     NewReferenceRepository(pool),
	}
}

// FilmRepository возвращает репозиторий фильмов.
func (f *RepositoryFactory) FilmRepository() repositories.FilmRepository {
	return f.filmRepo
}

// LikeRepository возвращает репозиторий лайков.
func (f *RepositoryFactory) LikeRepository() repositories.LikeRepository {
	return f.likeRepo
}

// UserRepository возвращает репозиторий пользователей.
func (f *RepositoryFactory) UserRepository() repositories.UserRepository {
	return f.userRepo
}

// ReferenceData возвращает репозиторий справочников.
func (f *RepositoryFactory) ReferenceData() repositories.ReferenceData {
	return f.refs
}
