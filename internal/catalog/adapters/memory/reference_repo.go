package memory

import (
	"context"
	"sort"

	"filmorate/internal/catalog/domain/entities"
)

// ReferenceRepository реализует repositories.ReferenceData поверх Store.
type ReferenceRepository struct {
	store *Store
}

// GetGenreByID возвращает жанр по идентификатору.
func (r *ReferenceRepository) GetGenreByID(_ context.Context, id int64) (*entities.Genre, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	g, ok := r.store.genres[id]
	if !ok {
		return nil, entities.NotFoundError("genre with id %d not found", id)
	}
	return &g, nil
}

// ListGenres возвращает жанры по возрастанию id.
func (r *ReferenceRepository) ListGenres(_ context.Context) ([]entities.Genre, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	genres := make([]entities.Genre, 0, len(r.store.genres))
	for _, g := range r.store.genres {
		genres = append(genres, g)
	}
	sort.Slice(genres, func(i, j int) bool { return genres[i].ID < genres[j].ID })
	return genres, nil
}

// GenreExists проверяет наличие жанра.
func (r *ReferenceRepository) GenreExists(_ context.Context, id int64) (bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	_, ok := r.store.genres[id]
	return ok, nil
}

// GetMpaByID возвращает рейтинг по идентификатору.
func (r *ReferenceRepository) GetMpaByID(_ context.Context, id int64) (*entities.Mpa, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	m, ok := r.store.mpa[id]
	if !ok {
		return nil, entities.NotFoundError("mpa with id %d not found", id)
	}
	return &m, nil
}

// ListMpa возвращает рейтинги по возрастанию id.
func (r *ReferenceRepository) ListMpa(_ context.Context) ([]entities.Mpa, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	list := make([]entities.Mpa, 0, len(r.store.mpa))
	for _, m := range r.store.mpa {
		list = append(list, m)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

// MpaExists проверяет наличие рейтинга.
func (r *ReferenceRepository) MpaExists(_ context.Context, id int64) (bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	_, ok := r.store.mpa[id]
	return ok, nil
}
