package app

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"filmorate/internal/catalog/app/validation"
	"filmorate/internal/catalog/domain/entities"
	"filmorate/internal/catalog/ports/api"
	"filmorate/internal/catalog/ports/repositories"
	"filmorate/pkg/logger"
)

const (
	methodCreateFilm = "CreateFilm"
	methodUpdateFilm = "UpdateFilm"
	methodGetFilm    = "GetFilm"
	methodListFilms  = "ListFilms"
	methodDeleteFilm = "DeleteFilm"
	methodAddLike    = "AddLike"
	methodRemoveLike = "RemoveLike"
	methodTopFilms   = "TopFilms"

	msgFilmCreated     = "film successfully created"
	msgFilmUpdated     = "film successfully updated"
	msgFilmDeleted     = "film successfully deleted"
	msgLikeAdded       = "like successfully added"
	msgLikeRemoved     = "like successfully removed"
	msgLikeUnchanged   = "like relation unchanged"
	msgTopFilmsRanked  = "top films ranked"
	msgErrFilmFailed   = "film operation failed"
	msgErrLikeFailed   = "like operation failed"
	msgErrRankingFilms = "failed to rank films"

	errCtxValidatingFilm = "validating film"
	errCtxCreatingFilm   = "creating film"
	errCtxUpdatingFilm   = "updating film"
	errCtxFetchingFilm   = "fetching film"
	errCtxListingFilms   = "listing films"
	errCtxDeletingFilm   = "deleting film"
	errCtxChangingLike   = "changing like"
	errCtxFetchingRefs   = "fetching reference data"
)

// FilmUseCaseImpl реализует интерфейс FilmUseCase.
type FilmUseCaseImpl struct {
	films     repositories.FilmRepository
	likes     repositories.LikeRepository
	refs      repositories.ReferenceData
	users     api.UserUseCase
	validator *validation.FilmValidator
}

// NewFilmUseCase создает новый экземпляр сервиса фильмов.
func NewFilmUseCase(
	films repositories.FilmRepository,
	likes repositories.LikeRepository,
	refs repositories.ReferenceData,
	users api.UserUseCase,
) api.FilmUseCase {
	return &FilmUseCaseImpl{
		films:     films,
		likes:     likes,
		refs:      refs,
		users:     users,
		validator: validation.NewFilmValidator(refs),
	}
}

// Create проверяет входные данные и сохраняет новый фильм.
func (u *FilmUseCaseImpl) Create(ctx context.Context, in entities.FilmInput) (*entities.Film, error) {
	log := logger.Log(ctx).With(zap.String("method", methodCreateFilm))

	refs, err := u.validator.ValidateCreate(ctx, in)
	if err != nil {
		logFailure(ctx, log, msgErrFilmFailed, err)
		return nil, fmt.Errorf("%s: %w", errCtxValidatingFilm, err)
	}

	film := &entities.Film{Mpa: *refs.Mpa, Genres: refs.Genres}
	if film.Genres == nil {
		film.Genres = []entities.Genre{}
	}
	film.Apply(in)

	created, err := u.films.Create(ctx, film)
	if err != nil {
		logFailure(ctx, log, msgErrFilmFailed, err)
		return nil, fmt.Errorf("%s: %w", errCtxCreatingFilm, err)
	}

	log.Info(ctx, msgFilmCreated, zap.Int64("film_id", created.ID))
	return created, nil
}

// Update применяет к существующему фильму только переданные поля.
// Переданный список жанров полностью заменяет текущий.
func (u *FilmUseCaseImpl) Update(ctx context.Context, in entities.FilmInput) (*entities.Film, error) {
	log := logger.Log(ctx).With(zap.String("method", methodUpdateFilm))

	refs, err := u.validator.ValidateUpdate(ctx, in)
	if err != nil {
		logFailure(ctx, log, msgErrFilmFailed, err)
		return nil, fmt.Errorf("%s: %w", errCtxValidatingFilm, err)
	}
	log = log.With(zap.Int64("film_id", *in.ID))

	film, err := u.films.GetByID(ctx, *in.ID)
	if err != nil {
		logFailure(ctx, log, msgErrFilmFailed, err)
		return nil, fmt.Errorf("%s: %w", errCtxFetchingFilm, err)
	}

	film.Apply(in)
	if refs.Mpa != nil {
		film.Mpa = *refs.Mpa
	}
	if refs.Genres != nil {
		film.Genres = refs.Genres
	}

	updated, err := u.films.Update(ctx, film)
	if err != nil {
		logFailure(ctx, log, msgErrFilmFailed, err)
		return nil, fmt.Errorf("%s: %w", errCtxUpdatingFilm, err)
	}

	log.Info(ctx, msgFilmUpdated)
	return updated, nil
}

// GetByID возвращает фильм по идентификатору.
func (u *FilmUseCaseImpl) GetByID(ctx context.Context, id int64) (*entities.Film, error) {
	film, err := u.films.GetByID(ctx, id)
	if err != nil {
		logFailure(ctx, logger.Log(ctx).With(zap.String("method", methodGetFilm)), msgErrFilmFailed, err)
		return nil, fmt.Errorf("%s: %w", errCtxFetchingFilm, err)
	}
	return film, nil
}

// FindAll возвращает все фильмы по возрастанию id.
func (u *FilmUseCaseImpl) FindAll(ctx context.Context) ([]*entities.Film, error) {
	films, err := u.films.FindAll(ctx)
	if err != nil {
		logFailure(ctx, logger.Log(ctx).With(zap.String("method", methodListFilms)), msgErrFilmFailed, err)
		return nil, fmt.Errorf("%s: %w", errCtxListingFilms, err)
	}
	return films, nil
}

// Delete удаляет фильм по идентификатору.
func (u *FilmUseCaseImpl) Delete(ctx context.Context, id int64) error {
	log := logger.Log(ctx).With(zap.String("method", methodDeleteFilm), zap.Int64("film_id", id))

	if err := u.films.DeleteByID(ctx, id); err != nil {
		logFailure(ctx, log, msgErrFilmFailed, err)
		return fmt.Errorf("%s: %w", errCtxDeletingFilm, err)
	}

	log.Info(ctx, msgFilmDeleted)
	return nil
}

// AddLike ставит фильму лайк пользователя. Повторный лайк ничего не меняет.
func (u *FilmUseCaseImpl) AddLike(ctx context.Context, filmID, userID int64) error {
	log := logger.Log(ctx).With(zap.String("method", methodAddLike),
		zap.Int64("film_id", filmID), zap.Int64("user_id", userID))

	if err := u.resolveLikeParties(ctx, filmID, userID); err != nil {
		logFailure(ctx, log, msgErrLikeFailed, err)
		return err
	}

	changed, err := u.likes.AddLike(ctx, filmID, userID)
	if err != nil {
		logFailure(ctx, log, msgErrLikeFailed, err)
		return fmt.Errorf("%s: %w", errCtxChangingLike, err)
	}
	if !changed {
		log.Debug(ctx, msgLikeUnchanged)
		return nil
	}

	log.Info(ctx, msgLikeAdded)
	return nil
}

// RemoveLike снимает лайк пользователя. Отсутствующий лайк ничего не меняет.
func (u *FilmUseCaseImpl) RemoveLike(ctx context.Context, filmID, userID int64) error {
	log := logger.Log(ctx).With(zap.String("method", methodRemoveLike),
		zap.Int64("film_id", filmID), zap.Int64("user_id", userID))

	if err := u.resolveLikeParties(ctx, filmID, userID); err != nil {
		logFailure(ctx, log, msgErrLikeFailed, err)
		return err
	}

	changed, err := u.likes.RemoveLike(ctx, filmID, userID)
	if err != nil {
		logFailure(ctx, log, msgErrLikeFailed, err)
		return fmt.Errorf("%s: %w", errCtxChangingLike, err)
	}
	if !changed {
		log.Debug(ctx, msgLikeUnchanged)
		return nil
	}

	log.Info(ctx, msgLikeRemoved)
	return nil
}

// resolveLikeParties проверяет существование фильма и пользователя.
func (u *FilmUseCaseImpl) resolveLikeParties(ctx context.Context, filmID, userID int64) error {
	if _, err := u.films.GetByID(ctx, filmID); err != nil {
		if errors.Is(err, entities.ErrNotFound) {
			return entities.NotFoundError("film with id %d not found", filmID)
		}
		return fmt.Errorf("%s: %w", errCtxFetchingFilm, err)
	}
	if _, err := u.users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, entities.ErrNotFound) {
			return entities.NotFoundError("user with id %d not found", userID)
		}
		return fmt.Errorf("%s: %w", errCtxFetchingUser, err)
	}
	return nil
}

// TopFilms возвращает count самых популярных фильмов.
// При равном числе лайков сохраняется порядок по возрастанию id.
func (u *FilmUseCaseImpl) TopFilms(ctx context.Context, count int) ([]*entities.Film, error) {
	log := logger.Log(ctx).With(zap.String("method", methodTopFilms), zap.Int("count", count))

	if count <= 0 {
		return []*entities.Film{}, nil
	}

	films, err := u.films.FindAll(ctx)
	if err != nil {
		log.Error(ctx, msgErrRankingFilms, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxListingFilms, err)
	}

	ranked := RankByLikes(films, count)
	log.Debug(ctx, msgTopFilmsRanked, zap.Int("total", len(films)), zap.Int("returned", len(ranked)))
	return ranked, nil
}

// RankByLikes стабильно сортирует фильмы по убыванию числа лайков и оставляет первые count.
func RankByLikes(films []*entities.Film, count int) []*entities.Film {
	if count <= 0 {
		return []*entities.Film{}
	}
	ranked := append([]*entities.Film(nil), films...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return len(ranked[i].Likes) > len(ranked[j].Likes)
	})
	if count < len(ranked) {
		ranked = ranked[:count]
	}
	return ranked
}

// GetGenre возвращает жанр по идентификатору.
func (u *FilmUseCaseImpl) GetGenre(ctx context.Context, id int64) (*entities.Genre, error) {
	genre, err := u.refs.GetGenreByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxFetchingRefs, err)
	}
	return genre, nil
}

// ListGenres возвращает все жанры по возрастанию id.
func (u *FilmUseCaseImpl) ListGenres(ctx context.Context) ([]entities.Genre, error) {
	genres, err := u.refs.ListGenres(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxFetchingRefs, err)
	}
	return genres, nil
}

// GetMpa возвращает рейтинг MPA по идентификатору.
func (u *FilmUseCaseImpl) GetMpa(ctx context.Context, id int64) (*entities.Mpa, error) {
	mpa, err := u.refs.GetMpaByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxFetchingRefs, err)
	}
	return mpa, nil
}

// ListMpa возвращает все рейтинги MPA по возрастанию id.
func (u *FilmUseCaseImpl) ListMpa(ctx context.Context) ([]entities.Mpa, error) {
	list, err := u.refs.ListMpa(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxFetchingRefs, err)
	}
	return list, nil
}
