// Package memory содержит хранилище каталога в памяти процесса.
package memory

import (
	"sync"
	"sync/atomic"

	"filmorate/internal/catalog/domain/entities"
	"filmorate/internal/catalog/ports/repositories"
)

// DefaultGenres - справочник жанров, которым заполняется хранилище.
var DefaultGenres = []entities.Genre{
	{ID: 1, Name: "Комедия"},
	{ID: 2, Name: "Драма"},
	{ID: 3, Name: "Мультфильм"},
	{ID: 4, Name: "Триллер"},
	{ID: 5, Name: "Документальный"},
	{ID: 6, Name: "Боевик"},
}

// DefaultMpa - справочник рейтингов MPA, которым заполняется хранилище.
var DefaultMpa = []entities.Mpa{
	{ID: 1, Name: "G"},
	{ID: 2, Name: "PG"},
	{ID: 3, Name: "PG-13"},
	{ID: 4, Name: "R"},
	{ID: 5, Name: "NC-17"},
}

type filmRecord struct {
	film     entities.Film
	genreIDs []int64
	mpaID    int64
}

type friendEdge struct {
	to     int64
	status entities.FriendshipStatus
}

// Store хранит все сущности под одной блокировкой.
// Фильмы и пользователи хранятся без связей, связи собираются при чтении.
type Store struct {
	mu sync.RWMutex

	films map[int64]*filmRecord
	users map[int64]*entities.User

	filmLikes map[int64]*entities.IDSet
	userLikes map[int64]*entities.IDSet
	friends   map[int64][]friendEdge

	genres map[int64]entities.Genre
	mpa    map[int64]entities.Mpa

	nextFilmID atomic.Int64
	nextUserID atomic.Int64

	filmRepo *FilmRepository
	likeRepo *LikeRepository
	userRepo *UserRepository
	refs     *ReferenceRepository
}

var _ repositories.Factory = (*Store)(nil)

// NewStore создает пустое хранилище с заполненными справочниками.
func NewStore() *Store {
	s := &Store{
		films:     make(map[int64]*filmRecord),
		users:     make(map[int64]*entities.User),
		filmLikes: make(map[int64]*entities.IDSet),
		userLikes: make(map[int64]*entities.IDSet),
		friends:   make(map[int64][]friendEdge),
		genres:    make(map[int64]entities.Genre, len(DefaultGenres)),
		mpa:       make(map[int64]entities.Mpa, len(DefaultMpa)),
	}
	for _, g := range DefaultGenres {
		s.genres[g.ID] = g
	}
	for _, m := range DefaultMpa {
		s.mpa[m.ID] = m
	}

	s.filmRepo = &FilmRepository{store: s}
	s.likeRepo = &LikeRepository{store: s}
	s.userRepo = &UserRepository{store: s}
	s.refs = &ReferenceRepository{store: s}
	return s
}

// FilmRepository возвращает репозиторий фильмов.
func (s *Store) FilmRepository() repositories.FilmRepository {
	return s.filmRepo
}

// LikeRepository возвращает репозиторий лайков.
func (s *Store) LikeRepository() repositories.LikeRepository {
	return s.likeRepo
}

// UserRepository возвращает репозиторий пользователей.
func (s *Store) UserRepository() repositories.UserRepository {
	return s.userRepo
}

// ReferenceData возвращает справочники.
func (s *Store) ReferenceData() repositories.ReferenceData {
	return s.refs
}

// hydrateFilm собирает фильм со связями. Вызывается под блокировкой.
func (s *Store) hydrateFilm(rec *filmRecord) *entities.Film {
	film := rec.film
	film.Mpa = s.mpa[rec.mpaID]
	film.Genres = make([]entities.Genre, 0, len(rec.genreIDs))
	for _, id := range rec.genreIDs {
		film.Genres = append(film.Genres, s.genres[id])
	}
	film.Likes = []int64{}
	if likes, ok := s.filmLikes[rec.film.ID]; ok {
		film.Likes = likes.Values()
	}
	return &film
}

// hydrateUser собирает пользователя со связями. Вызывается под блокировкой.
func (s *Store) hydrateUser(u *entities.User) *entities.User {
	user := *u
	user.Friends = make([]int64, 0, len(s.friends[u.ID]))
	for _, edge := range s.friends[u.ID] {
		user.Friends = append(user.Friends, edge.to)
	}
	user.Likes = []int64{}
	if likes, ok := s.userLikes[u.ID]; ok {
		user.Likes = likes.Values()
	}
	return &user
}
