package memory

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"filmorate/internal/catalog/domain/entities"
	"filmorate/pkg/logger"
)

// Константы для имен методов.
const (
	methodCreateFilm  = "FilmRepository.Create"
	methodUpdateFilm  = "FilmRepository.Update"
	methodGetFilm     = "FilmRepository.GetByID"
	methodFindFilms   = "FilmRepository.FindAll"
	methodDeleteFilm  = "FilmRepository.DeleteByID"
	methodAddLike     = "LikeRepository.AddLike"
	methodRemoveLike  = "LikeRepository.RemoveLike"
	logFilmCreated    = "film created"
	logFilmUpdated    = "film updated"
	logFilmDeleted    = "film deleted"
	logLikeAdded      = "like added"
	logLikeRemoved    = "like removed"
	logFilmNotFound   = "film not found"
	errFilmNotFoundFm = "film with id %d not found"
)

// FilmRepository реализует repositories.FilmRepository поверх Store.
type FilmRepository struct {
	store *Store
}

// Create присваивает фильму новый идентификатор и сохраняет его.
func (r *FilmRepository) Create(ctx context.Context, film *entities.Film) (*entities.Film, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.newFilmRecord(film)
	if err != nil {
		return nil, err
	}
	rec.film.ID = s.nextFilmID.Add(1)
	s.films[rec.film.ID] = rec

	logger.Log(ctx).With(zap.String("method", methodCreateFilm)).
		Debug(ctx, logFilmCreated, zap.Int64("film_id", rec.film.ID))
	return s.hydrateFilm(rec), nil
}

// Update заменяет скалярные поля и жанры существующего фильма. Лайки сохраняются.
func (r *FilmRepository) Update(ctx context.Context, film *entities.Film) (*entities.Film, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	log := logger.Log(ctx).With(zap.String("method", methodUpdateFilm), zap.Int64("film_id", film.ID))

	if _, ok := s.films[film.ID]; !ok {
		log.Debug(ctx, logFilmNotFound)
		return nil, entities.NotFoundError(errFilmNotFoundFm, film.ID)
	}

	rec, err := s.newFilmRecord(film)
	if err != nil {
		return nil, err
	}
	rec.film.ID = film.ID
	s.films[film.ID] = rec

	log.Debug(ctx, logFilmUpdated)
	return s.hydrateFilm(rec), nil
}

// GetByID возвращает фильм со связями.
func (r *FilmRepository) GetByID(ctx context.Context, id int64) (*entities.Film, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.films[id]
	if !ok {
		logger.Log(ctx).With(zap.String("method", methodGetFilm)).
			Debug(ctx, logFilmNotFound, zap.Int64("film_id", id))
		return nil, entities.NotFoundError(errFilmNotFoundFm, id)
	}
	return s.hydrateFilm(rec), nil
}

// FindAll возвращает все фильмы по возрастанию id.
func (r *FilmRepository) FindAll(ctx context.Context) ([]*entities.Film, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	films := make([]*entities.Film, 0, len(s.films))
	for _, rec := range s.films {
		films = append(films, s.hydrateFilm(rec))
	}
	sort.Slice(films, func(i, j int) bool { return films[i].ID < films[j].ID })

	logger.Log(ctx).With(zap.String("method", methodFindFilms)).
		Debug(ctx, "films loaded", zap.Int("count", len(films)))
	return films, nil
}

// DeleteByID удаляет фильм вместе с его лайками.
func (r *FilmRepository) DeleteByID(ctx context.Context, id int64) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	log := logger.Log(ctx).With(zap.String("method", methodDeleteFilm), zap.Int64("film_id", id))

	if _, ok := s.films[id]; !ok {
		log.Debug(ctx, logFilmNotFound)
		return entities.NotFoundError(errFilmNotFoundFm, id)
	}
	delete(s.films, id)
	if likes, ok := s.filmLikes[id]; ok {
		for _, userID := range likes.Values() {
			if set, ok := s.userLikes[userID]; ok {
				set.Remove(id)
			}
		}
		delete(s.filmLikes, id)
	}

	log.Debug(ctx, logFilmDeleted)
	return nil
}

// newFilmRecord проверяет ссылки на справочники. Вызывается под блокировкой.
func (s *Store) newFilmRecord(film *entities.Film) (*filmRecord, error) {
	if _, ok := s.mpa[film.Mpa.ID]; !ok {
		return nil, entities.NotFoundError("mpa with id %d not found", film.Mpa.ID)
	}
	genreIDs := make([]int64, 0, len(film.Genres))
	for _, g := range film.Genres {
		if _, ok := s.genres[g.ID]; !ok {
			return nil, entities.NotFoundError("genre with id %d not found", g.ID)
		}
		genreIDs = append(genreIDs, g.ID)
	}

	rec := &filmRecord{film: *film, genreIDs: genreIDs, mpaID: film.Mpa.ID}
	rec.film.Genres = nil
	rec.film.Likes = nil
	return rec, nil
}

// LikeRepository реализует repositories.LikeRepository поверх Store.
type LikeRepository struct {
	store *Store
}

// AddLike добавляет лайк. Повторный лайк ничего не меняет.
func (r *LikeRepository) AddLike(ctx context.Context, filmID, userID int64) (bool, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkLikeParties(filmID, userID); err != nil {
		return false, err
	}

	if _, ok := s.filmLikes[filmID]; !ok {
		s.filmLikes[filmID] = entities.NewIDSet()
	}
	if _, ok := s.userLikes[userID]; !ok {
		s.userLikes[userID] = entities.NewIDSet()
	}
	changed := s.filmLikes[filmID].Add(userID)
	s.userLikes[userID].Add(filmID)

	if changed {
		logger.Log(ctx).With(zap.String("method", methodAddLike)).
			Debug(ctx, logLikeAdded, zap.Int64("film_id", filmID), zap.Int64("user_id", userID))
	}
	return changed, nil
}

// RemoveLike удаляет лайк. Отсутствующий лайк ничего не меняет.
func (r *LikeRepository) RemoveLike(ctx context.Context, filmID, userID int64) (bool, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkLikeParties(filmID, userID); err != nil {
		return false, err
	}

	changed := false
	if set, ok := s.filmLikes[filmID]; ok {
		changed = set.Remove(userID)
	}
	if set, ok := s.userLikes[userID]; ok {
		set.Remove(filmID)
	}

	if changed {
		logger.Log(ctx).With(zap.String("method", methodRemoveLike)).
			Debug(ctx, logLikeRemoved, zap.Int64("film_id", filmID), zap.Int64("user_id", userID))
	}
	return changed, nil
}

func (s *Store) checkLikeParties(filmID, userID int64) error {
	if _, ok := s.films[filmID]; !ok {
		return entities.NotFoundError(errFilmNotFoundFm, filmID)
	}
	if _, ok := s.users[userID]; !ok {
		return entities.NotFoundError(errUserNotFoundFm, userID)
	}
	return nil
}
