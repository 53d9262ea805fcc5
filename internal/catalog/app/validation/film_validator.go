// Package validation проверяет входные данные фильмов и пользователей.
package validation

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"filmorate/internal/catalog/domain/entities"
	"filmorate/internal/catalog/ports/repositories"
)

const (
	errMpaNotFoundFmt   = "mpa with id %d not found"
	errGenreNotFoundFmt = "genre with id %d not found"
)

// FilmValidator проверяет FilmInput и разрешает ссылки на справочники.
type FilmValidator struct {
	refs repositories.ReferenceData
}

// NewFilmValidator создает валидатор фильмов.
func NewFilmValidator(refs repositories.ReferenceData) *FilmValidator {
	return &FilmValidator{refs: refs}
}

// FilmRefs - разрешенные ссылки входных данных.
// Mpa равен nil, если рейтинг не передан; Genres равен nil, если жанры не переданы.
type FilmRefs struct {
	Mpa    *entities.Mpa
	Genres []entities.Genre
}

// ValidateCreate требует наличия всех обязательных полей.
func (v *FilmValidator) ValidateCreate(ctx context.Context, in entities.FilmInput) (*FilmRefs, error) {
	switch {
	case in.Name == nil:
		return nil, entities.ValidationError("film name must not be blank")
	case in.Description == nil:
		return nil, entities.ValidationError("film description must not be blank")
	case in.ReleaseDate == nil:
		return nil, entities.ValidationError("film release date is required")
	case in.Duration == nil:
		return nil, entities.ValidationError("film duration must be positive")
	case in.MpaID == nil:
		return nil, entities.ValidationError("film mpa is required")
	}
	return v.validate(ctx, in)
}

// ValidateUpdate проверяет только переданные поля. Идентификатор обязателен.
func (v *FilmValidator) ValidateUpdate(ctx context.Context, in entities.FilmInput) (*FilmRefs, error) {
	if in.ID == nil {
		return nil, entities.ValidationError("film id is required")
	}
	return v.validate(ctx, in)
}

func (v *FilmValidator) validate(ctx context.Context, in entities.FilmInput) (*FilmRefs, error) {
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		return nil, entities.ValidationError("film name must not be blank")
	}
	if in.Description != nil {
		if strings.TrimSpace(*in.Description) == "" {
			return nil, entities.ValidationError("film description must not be blank")
		}
		if utf8.RuneCountInString(*in.Description) > entities.MaxDescriptionLength {
			return nil, entities.ValidationError("film description must not exceed %d characters", entities.MaxDescriptionLength)
		}
	}
	if in.ReleaseDate != nil && in.ReleaseDate.Before(entities.ReleaseDateMin) {
		return nil, entities.ValidationError("film release date must not be before %s", entities.ReleaseDateMin.Format("2006-01-02"))
	}
	if in.Duration != nil && *in.Duration <= 0 {
		return nil, entities.ValidationError("film duration must be positive")
	}

	refs := &FilmRefs{}
	if in.MpaID != nil {
		mpa, err := v.resolveMpa(ctx, *in.MpaID)
		if err != nil {
			return nil, err
		}
		refs.Mpa = mpa
	}
	if in.GenreIDs != nil {
		genres, err := v.resolveGenres(ctx, in.GenreIDs)
		if err != nil {
			return nil, err
		}
		refs.Genres = genres
	}
	return refs, nil
}

func (v *FilmValidator) resolveMpa(ctx context.Context, id int64) (*entities.Mpa, error) {
	ok, err := v.refs.MpaExists(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("check mpa: %w", err)
	}
	if !ok {
		return nil, entities.NotFoundError(errMpaNotFoundFmt, id)
	}

	mpa, err := v.refs.GetMpaByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("resolve mpa: %w", err)
	}
	return mpa, nil
}

// resolveGenres убирает повторы и упорядочивает жанры по возрастанию id.
func (v *FilmValidator) resolveGenres(ctx context.Context, ids []int64) ([]entities.Genre, error) {
	unique := entities.NewIDSet(ids...).Values()
	sort.Slice(unique, func(i, j int) bool { return unique[i] < unique[j] })

	for _, id := range unique {
		ok, err := v.refs.GenreExists(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("check genre: %w", err)
		}
		if !ok {
			return nil, entities.NotFoundError(errGenreNotFoundFmt, id)
		}
	}
	if len(unique) == 0 {
		return []entities.Genre{}, nil
	}

	all, err := v.refs.ListGenres(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolve genres: %w", err)
	}
	byID := make(map[int64]entities.Genre, len(all))
	for _, g := range all {
		byID[g.ID] = g
	}

	genres := make([]entities.Genre, 0, len(unique))
	for _, id := range unique {
		genre, ok := byID[id]
		if !ok {
			return nil, entities.NotFoundError(errGenreNotFoundFmt, id)
		}
		genres = append(genres, genre)
	}
	return genres, nil
}
