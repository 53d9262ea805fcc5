package app_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"filmorate/internal/catalog/adapters/memory"
	"filmorate/internal/catalog/app"
	"filmorate/internal/catalog/domain/entities"
	"filmorate/internal/catalog/ports/api"
)

var fixedNow = time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)

func ptr[T any](v T) *T {
	return &v
}

type services struct {
	films api.FilmUseCase
	users api.UserUseCase
}

func newServices() services {
	store := memory.NewStore()
	users := app.NewUserUseCase(store.UserRepository(), func() time.Time { return fixedNow })
	films := app.NewFilmUseCase(store.FilmRepository(), store.LikeRepository(), store.ReferenceData(), users)
	return services{films: films, users: users}
}

func filmInput(name string) entities.FilmInput {
	return entities.FilmInput{
		Name:        ptr(name),
		Description: ptr("description of " + name),
		ReleaseDate: ptr(time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)),
		Duration:    ptr(100),
		MpaID:       ptr(int64(1)),
	}
}

func userInput(login string) entities.UserInput {
	return entities.UserInput{
		Email:    ptr(login + "@mail.ru"),
		Login:    ptr(login),
		Birthday: ptr(time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC)),
	}
}

func mustCreateFilm(t *testing.T, s services, name string) *entities.Film {
	t.Helper()
	film, err := s.films.Create(context.Background(), filmInput(name))
	require.NoError(t, err)
	return film
}

func mustCreateUser(t *testing.T, s services, login string) *entities.User {
	t.Helper()
	user, err := s.users.Create(context.Background(), userInput(login))
	require.NoError(t, err)
	return user
}

func filmNames(films []*entities.Film) []string {
	names := make([]string, 0, len(films))
	for _, f := range films {
		names = append(names, f.Name)
	}
	return names
}

func userIDs(users []*entities.User) []int64 {
	ids := make([]int64, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}
	return ids
}
