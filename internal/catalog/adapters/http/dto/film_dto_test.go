package dto_test

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"filmorate/internal/catalog/adapters/http/dto"
	"filmorate/internal/catalog/domain/entities"
)

func TestFilmRequest_ToInput(t *testing.T) {
	decode := func(t *testing.T, body string) dto.FilmRequest {
		t.Helper()
		var req dto.FilmRequest
		require.NoError(t, json.Unmarshal([]byte(body), &req))
		return req
	}

	t.Run("Ссылки на справочники", func(t *testing.T) {
		req := decode(t, `{"name":"n","releaseDate":"2000-01-01","mpa":{"id":3,"name":"PG-13"},"genres":[{"id":2},{"id":1}]}`)

		in, err := req.ToInput()

		require.NoError(t, err)
		require.NotNil(t, in.MpaID)
		assert.Equal(t, int64(3), *in.MpaID)
		assert.Equal(t, []int64{2, 1}, in.GenreIDs)
		require.NotNil(t, in.ReleaseDate)
		assert.Equal(t, "2000-01-01", in.ReleaseDate.Format(dto.DateLayout))
	})

	t.Run("Отсутствующие поля остаются nil", func(t *testing.T) {
		req := decode(t, `{"id":7}`)

		in, err := req.ToInput()

		require.NoError(t, err)
		assert.Nil(t, in.MpaID)
		assert.Nil(t, in.GenreIDs)
		assert.Nil(t, in.ReleaseDate)
	})

	t.Run("Пустой список жанров", func(t *testing.T) {
		req := decode(t, `{"genres":[]}`)

		in, err := req.ToInput()

		require.NoError(t, err)
		assert.NotNil(t, in.GenreIDs)
		assert.Empty(t, in.GenreIDs)
	})

	t.Run("Ссылка без id", func(t *testing.T) {
		for _, body := range []string{`{"mpa":{}}`, `{"mpa":{"id":null}}`, `{"genres":[{"id":1},{}]}`} {
			req := decode(t, body)

			_, err := req.ToInput()

			require.ErrorIs(t, err, entities.ErrValidation, body)
		}
	})
}
