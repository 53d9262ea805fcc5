package http_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpServer "filmorate/internal/catalog/adapters/http"
	"filmorate/internal/catalog/adapters/http/dto"
	"filmorate/internal/catalog/adapters/http/health"
	"filmorate/internal/catalog/adapters/http/httperr"
	"filmorate/internal/catalog/adapters/memory"
	"filmorate/internal/catalog/app"
	"filmorate/internal/catalog/config"
	"filmorate/pkg/logger"
)

const (
	filmBody = `{"name":"nisi eiusmod","description":"adipisicing","releaseDate":"1967-03-25","duration":100,"mpa":{"id":1}}`
	userBody = `{"login":"dolore","name":"Nick Name","email":"mail@mail.ru","birthday":"1946-08-20"}`
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	store := memory.NewStore()
	now := func() time.Time { return time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC) }
	users := app.NewUserUseCase(store.UserRepository(), now)
	films := app.NewFilmUseCase(store.FilmRepository(), store.LikeRepository(), store.ReferenceData(), users)

	fiberApp := httpServer.NewApp(&config.HTTPConfig{ReadTimeout: time.Second, WriteTimeout: time.Second})
	httpServer.SetupRouter(fiberApp, films, users, nil)
	return fiberApp
}

func doRequest(t *testing.T, fiberApp *fiber.App, method, target, body string) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}

	resp, err := fiberApp.Test(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func decode[T any](t *testing.T, data []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(data, &v))
	return v
}

func TestFilmEndpoints(t *testing.T) {
	fiberApp := newTestApp(t)

	resp, data := doRequest(t, fiberApp, fiber.MethodPost, "/films", filmBody)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	created := decode[dto.FilmResponse](t, data)
	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, "1967-03-25", created.ReleaseDate.Format(dto.DateLayout))
	assert.Equal(t, "G", created.Mpa.Name)
	assert.Empty(t, created.Genres)

	t.Run("Частичное обновление", func(t *testing.T) {
		resp, data := doRequest(t, fiberApp, fiber.MethodPut, "/films",
			`{"id":1,"description":"updated","genres":[{"id":2},{"id":1},{"id":2}]}`)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		updated := decode[dto.FilmResponse](t, data)
		assert.Equal(t, "nisi eiusmod", updated.Name)
		assert.Equal(t, "updated", updated.Description)
		require.Len(t, updated.Genres, 2)
		assert.Equal(t, int64(1), updated.Genres[0].ID)
		assert.Equal(t, int64(2), updated.Genres[1].ID)
	})

	t.Run("Получение и список", func(t *testing.T) {
		resp, data := doRequest(t, fiberApp, fiber.MethodGet, "/films/1", "")
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, int64(1), decode[dto.FilmResponse](t, data).ID)

		resp, data = doRequest(t, fiberApp, fiber.MethodGet, "/films", "")
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Len(t, decode[[]dto.FilmResponse](t, data), 1)
	})

	t.Run("Ошибки валидации и поиска", func(t *testing.T) {
		tests := []struct {
			name   string
			method string
			target string
			body   string
			status int
		}{
			{"Пустое название", fiber.MethodPost, "/films", `{"name":"","description":"d","releaseDate":"2000-01-01","duration":1,"mpa":{"id":1}}`, fiber.StatusBadRequest},
			{"Дата до 1895-12-28", fiber.MethodPost, "/films", `{"name":"n","description":"d","releaseDate":"1895-12-27","duration":1,"mpa":{"id":1}}`, fiber.StatusBadRequest},
			{"Неизвестный рейтинг", fiber.MethodPost, "/films", `{"name":"n","description":"d","releaseDate":"2000-01-01","duration":1,"mpa":{"id":99}}`, fiber.StatusNotFound},
			{"Рейтинг без id", fiber.MethodPost, "/films", `{"name":"n","description":"d","releaseDate":"2000-01-01","duration":1,"mpa":{}}`, fiber.StatusBadRequest},
			{"Жанр без id", fiber.MethodPost, "/films", `{"name":"n","description":"d","releaseDate":"2000-01-01","duration":1,"mpa":{"id":1},"genres":[{}]}`, fiber.StatusBadRequest},
			{"Обновление с жанром без id", fiber.MethodPut, "/films", `{"id":1,"genres":[{"name":"Комедия"}]}`, fiber.StatusBadRequest},
			{"Некорректная дата", fiber.MethodPost, "/films", `{"name":"n","description":"d","releaseDate":"01.01.2000","duration":1,"mpa":{"id":1}}`, fiber.StatusBadRequest},
			{"Некорректный JSON", fiber.MethodPost, "/films", `{"name":`, fiber.StatusBadRequest},
			{"Неизвестный фильм", fiber.MethodGet, "/films/9999", "", fiber.StatusNotFound},
			{"Нечисловой ID", fiber.MethodGet, "/films/abc", "", fiber.StatusBadRequest},
			{"Обновление неизвестного фильма", fiber.MethodPut, "/films", `{"id":9999,"name":"n"}`, fiber.StatusNotFound},
			{"Удаление неизвестного фильма", fiber.MethodDelete, "/films/9999", "", fiber.StatusNotFound},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				resp, data := doRequest(t, fiberApp, tt.method, tt.target, tt.body)
				require.Equal(t, tt.status, resp.StatusCode, string(data))

				body := decode[httperr.Response](t, data)
				assert.Equal(t, tt.status, body.Status)
				assert.NotEmpty(t, body.Error)
				assert.NotEmpty(t, body.Message)
				assert.NotEmpty(t, body.Timestamp)
			})
		}
	})
}

func TestLikesAndPopular(t *testing.T) {
	fiberApp := newTestApp(t)

	for range 3 {
		resp, _ := doRequest(t, fiberApp, fiber.MethodPost, "/films", filmBody)
		require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	}
	for _, login := range []string{"a", "b"} {
		body := `{"login":"` + login + `","email":"` + login + `@mail.ru","birthday":"1990-01-01"}`
		resp, _ := doRequest(t, fiberApp, fiber.MethodPost, "/users", body)
		require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	}

	for _, target := range []string{"/films/2/like/1", "/films/2/like/2", "/films/3/like/1", "/films/3/like/1"} {
		resp, _ := doRequest(t, fiberApp, fiber.MethodPut, target, "")
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
	}

	t.Run("Топ по умолчанию", func(t *testing.T) {
		resp, data := doRequest(t, fiberApp, fiber.MethodGet, "/films/popular", "")
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		top := decode[[]dto.FilmResponse](t, data)
		require.Len(t, top, 3)
		assert.Equal(t, []int64{2, 3, 1}, []int64{top[0].ID, top[1].ID, top[2].ID})
		assert.Len(t, top[1].Likes, 1)
	})

	t.Run("Топ с ограничением", func(t *testing.T) {
		resp, data := doRequest(t, fiberApp, fiber.MethodGet, "/films/popular?count=1", "")
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Len(t, decode[[]dto.FilmResponse](t, data), 1)
	})

	t.Run("Неположительный count", func(t *testing.T) {
		for _, target := range []string{"/films/popular?count=0", "/films/popular?count=-5", "/films/popular?count=x"} {
			resp, _ := doRequest(t, fiberApp, fiber.MethodGet, target, "")
			assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode, target)
		}
	})

	t.Run("Удаление лайка", func(t *testing.T) {
		resp, _ := doRequest(t, fiberApp, fiber.MethodDelete, "/films/2/like/2", "")
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		resp, data := doRequest(t, fiberApp, fiber.MethodGet, "/films/2", "")
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, []int64{1}, decode[dto.FilmResponse](t, data).Likes)
	})

	t.Run("Лайк неизвестного пользователя", func(t *testing.T) {
		resp, data := doRequest(t, fiberApp, fiber.MethodPut, "/films/1/like/99", "")
		require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "user with id 99 not found", decode[httperr.Response](t, data).Message)
	})
}

func TestUserEndpoints(t *testing.T) {
	fiberApp := newTestApp(t)

	resp, data := doRequest(t, fiberApp, fiber.MethodPost, "/users", userBody)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Equal(t, "1946-08-20", decode[dto.UserResponse](t, data).Birthday.Format(dto.DateLayout))

	for _, body := range []string{
		`{"login":"friend","email":"friend@mail.ru","birthday":"1976-08-20"}`,
		`{"login":"common","email":"friend@common.ru","birthday":"2000-08-20"}`,
	} {
		resp, _ := doRequest(t, fiberApp, fiber.MethodPost, "/users", body)
		require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	}

	t.Run("Пустое имя заменяется логином", func(t *testing.T) {
		resp, data := doRequest(t, fiberApp, fiber.MethodGet, "/users/2", "")
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, "friend", decode[dto.UserResponse](t, data).Name)
	})

	t.Run("Дружба и общие друзья", func(t *testing.T) {
		for _, target := range []string{"/users/1/friends/3", "/users/2/friends/3"} {
			resp, _ := doRequest(t, fiberApp, fiber.MethodPut, target, "")
			require.Equal(t, fiber.StatusOK, resp.StatusCode)
		}

		resp, data := doRequest(t, fiberApp, fiber.MethodGet, "/users/3/friends", "")
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Len(t, decode[[]dto.UserResponse](t, data), 2)

		resp, data = doRequest(t, fiberApp, fiber.MethodGet, "/users/1/friends/common/2", "")
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		common := decode[[]dto.UserResponse](t, data)
		require.Len(t, common, 1)
		assert.Equal(t, int64(3), common[0].ID)

		resp, _ = doRequest(t, fiberApp, fiber.MethodDelete, "/users/1/friends/3", "")
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		resp, _ = doRequest(t, fiberApp, fiber.MethodGet, "/users/1/friends/common/2", "")
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})

	t.Run("Ошибки", func(t *testing.T) {
		tests := []struct {
			name   string
			method string
			target string
			body   string
			status int
		}{
			{"Логин с пробелом", fiber.MethodPost, "/users", `{"login":"do lore","email":"mail@mail.ru","birthday":"1990-01-01"}`, fiber.StatusBadRequest},
			{"Email без @", fiber.MethodPost, "/users", `{"login":"x","email":"mail.ru","birthday":"1990-01-01"}`, fiber.StatusBadRequest},
			{"День рождения в будущем", fiber.MethodPost, "/users", `{"login":"x","email":"x@mail.ru","birthday":"2446-08-20"}`, fiber.StatusBadRequest},
			{"Без дня рождения", fiber.MethodPost, "/users", `{"login":"dolore","email":"mail@mail.ru"}`, fiber.StatusBadRequest},
			{"Неизвестный пользователь", fiber.MethodGet, "/users/9999", "", fiber.StatusNotFound},
			{"Дружба с неизвестным", fiber.MethodPut, "/users/1/friends/-1", "", fiber.StatusNotFound},
			{"Дружба с собой", fiber.MethodPut, "/users/1/friends/1", "", fiber.StatusBadRequest},
			{"Без Content-Type", fiber.MethodPost, "/users", "", fiber.StatusBadRequest},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				resp, data := doRequest(t, fiberApp, tt.method, tt.target, tt.body)
				assert.Equal(t, tt.status, resp.StatusCode, string(data))
			})
		}
	})

	t.Run("Удаление пользователя", func(t *testing.T) {
		resp, _ := doRequest(t, fiberApp, fiber.MethodDelete, "/users/2", "")
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		resp, data := doRequest(t, fiberApp, fiber.MethodGet, "/users", "")
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Len(t, decode[[]dto.UserResponse](t, data), 2)
	})
}

func TestReferenceEndpoints(t *testing.T) {
	fiberApp := newTestApp(t)

	resp, data := doRequest(t, fiberApp, fiber.MethodGet, "/genres", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Len(t, decode[[]map[string]any](t, data), len(memory.DefaultGenres))

	resp, data = doRequest(t, fiberApp, fiber.MethodGet, "/mpa/3", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "PG-13", decode[map[string]any](t, data)["name"])

	resp, _ = doRequest(t, fiberApp, fiber.MethodGet, "/genres/42", "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestRoutingAndMiddleware(t *testing.T) {
	fiberApp := newTestApp(t)

	t.Run("Несуществующий маршрут", func(t *testing.T) {
		resp, data := doRequest(t, fiberApp, fiber.MethodGet, "/unknown", "")
		require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
		assert.Equal(t, httpServer.ErrRouteNotFound, decode[httperr.Response](t, data).Message)
	})

	t.Run("Request ID возвращается в ответе", func(t *testing.T) {
		req := httptest.NewRequest(fiber.MethodGet, "/genres", nil)
		req.Header.Set(logger.RequestIDHeader, "req-42")

		resp, err := fiberApp.Test(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, "req-42", resp.Header.Get(logger.RequestIDHeader))
	})

	t.Run("Request ID генерируется", func(t *testing.T) {
		resp, _ := doRequest(t, fiberApp, fiber.MethodGet, "/mpa", "")
		assert.NotEmpty(t, resp.Header.Get(logger.RequestIDHeader))
	})
	t.Run("Проверка готовности без зависимостей", func(t *testing.T) {
		resp, data := doRequest(t, fiberApp, fiber.MethodGet, "/health", "")
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, health.StatusOK, decode[health.Response](t, data).Status)
	})
}

func TestReadinessRoute(t *testing.T) {
	store := memory.NewStore()
	users := app.NewUserUseCase(store.UserRepository(), time.Now)
	films := app.NewFilmUseCase(store.FilmRepository(), store.LikeRepository(), store.ReferenceData(), users)

	readiness := health.NewHandler(time.Second)
	readiness.AddCheck("postgres", func(context.Context) error { return errors.New("connection refused") })

	fiberApp := httpServer.NewApp(&config.HTTPConfig{ReadTimeout: time.Second, WriteTimeout: time.Second})
	httpServer.SetupRouter(fiberApp, films, users, readiness)

	resp, data := doRequest(t, fiberApp, fiber.MethodGet, "/health", "")
	require.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
	body := decode[health.Response](t, data)
	assert.Equal(t, health.StatusUnavailable, body.Status)
	assert.Equal(t, "connection refused", body.Checks["postgres"])
}
