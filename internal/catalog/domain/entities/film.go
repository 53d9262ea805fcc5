package entities

import "time"

// ReleaseDateMin - дата первого публичного киносеанса. Более ранние даты релиза недопустимы.
var ReleaseDateMin = time.Date(1895, time.December, 28, 0, 0, 0, 0, time.UTC)

// MaxDescriptionLength - максимальная длина описания фильма в символах.
const MaxDescriptionLength = 200

// Film представляет фильм каталога.
type Film struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	ReleaseDate time.Time `json:"releaseDate"`
	Duration    int       `json:"duration"`
	Mpa         Mpa       `json:"mpa"`
	Genres      []Genre   `json:"genres"`
	Likes       []int64   `json:"likes"`
}

// FilmInput - входные данные для создания или частичного обновления фильма.
// nil означает отсутствие поля. Для GenreIDs пустой не-nil срез означает очистку жанров.
type FilmInput struct {
	ID          *int64
	Name        *string
	Description *string
	ReleaseDate *time.Time
	Duration    *int
	MpaID       *int64
	GenreIDs    []int64
}

// Clone возвращает глубокую копию фильма.
func (f *Film) Clone() *Film {
	c := *f
	c.Genres = append([]Genre(nil), f.Genres...)
	c.Likes = append([]int64(nil), f.Likes...)
	if c.Genres == nil {
		c.Genres = []Genre{}
	}
	if c.Likes == nil {
		c.Likes = []int64{}
	}
	return &c
}

// GenreIDs возвращает идентификаторы жанров фильма.
func (f *Film) GenreIDs() []int64 {
	ids := make([]int64, 0, len(f.Genres))
	for _, g := range f.Genres {
		ids = append(ids, g.ID)
	}
	return ids
}

// Apply переносит присутствующие поля input в фильм. Жанры и рейтинг разрешаются вызывающим.
func (f *Film) Apply(in FilmInput) {
	if in.Name != nil {
		f.Name = *in.Name
	}
	if in.Description != nil {
		f.Description = *in.Description
	}
	if in.ReleaseDate != nil {
		f.ReleaseDate = *in.ReleaseDate
	}
	if in.Duration != nil {
		f.Duration = *in.Duration
	}
}
