// Package repositories defines repository interfaces for the catalog service.
package repositories

import (
	"context"

	"filmorate/internal/catalog/domain/entities"
)

// ReferenceData определяет доступ к справочникам жанров и рейтингов MPA.
type ReferenceData interface {
	GetGenreByID(ctx context.Context, id int64) (*entities.Genre, error)
	ListGenres(ctx context.Context) ([]entities.Genre, error)
	GenreExists(ctx context.Context, id int64) (bool, error)
	GetMpaByID(ctx context.Context, id int64) (*entities.Mpa, error)
	ListMpa(ctx context.Context) ([]entities.Mpa, error)
	MpaExists(ctx context.Context, id int64) (bool, error)
}
